package server

import (
	"bytes"
	"clinic-chat/auth"
	"clinic-chat/domain/chat"
	"clinic-chat/errors"
	"clinic-chat/mocks"
	"clinic-chat/observability"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	alice = chat.NewPatient("alice")
	bob   = chat.NewProvider("bob")
)

type testServer struct {
	handler     http.Handler
	chatService *mocks.MockIChatService
	tokens      *auth.Tokens
}

func newTestServer(t *testing.T) testServer {
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	chatService := mocks.NewMockIChatService(ctrl)
	tokens := auth.NewTokens("secret", time.Hour)
	handler := NewRouter(log, tokens,
		NewChatServer(log, chatService, 10, 50),
		NewWebsocketServer(log, chatService, 8, nil),
		NewMonitoringServer(observability.NewMonitoringManager(log, 1)),
		[]string{"*"})
	return testServer{handler: handler, chatService: chatService, tokens: tokens}
}

func (s testServer) do(t *testing.T, account *chat.Account, method, target string, body any) *httptest.ResponseRecorder {
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	r := httptest.NewRequest(method, target, &payload)
	if account != nil {
		token, err := s.tokens.GenerateToken(*account)
		require.NoError(t, err)
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, r)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestChatServer_InitiateChat(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)
	room := chat.Room{ID: "room-1", Participants: []chat.Account{alice, bob}}

	s.chatService.EXPECT().
		InitiateChat(chat.InitiateChatCommand{Participants: []chat.Account{bob}, Initiator: alice}).
		Return(room, nil)

	w := s.do(t, &alice, http.MethodPost, "/api/v1/chats/initiate",
		map[string]any{"userIds": []map[string]string{{"id": "bob", "category": "provider"}}})

	req.Equal(http.StatusOK, w.Code)
	body := decodeBody(t, w)
	req.Equal(true, body["success"])
	req.Equal("room-1", body["chatRoom"].(map[string]any)["id"])
}

func TestChatServer_PostMessage(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)
	var post chat.EnrichedMessage
	post.RoomID = "room-1"
	post.Body = "my prescription please"

	s.chatService.EXPECT().
		PostMessage(gomock.Any(), chat.PostMessageCommand{Room: "room-1", Sender: alice, Content: "my prescription please"}).
		Return(post, nil)

	w := s.do(t, &alice, http.MethodPost, "/api/v1/chats/room-1/message", map[string]string{"message": "my prescription please"})

	req.Equal(http.StatusOK, w.Code)
	body := decodeBody(t, w)
	req.Equal(true, body["success"])
	req.Equal("my prescription please", body["post"].(map[string]any)["message"])
}

func TestChatServer_GetConversation_Caps_Paging(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	s.chatService.EXPECT().
		GetConversation(gomock.Any(), chat.GetConversationCommand{Room: "room-1", Viewer: bob, Page: chat.Page{Number: 2, Limit: 50}}).
		Return([]chat.EnrichedMessage{}, nil)

	w := s.do(t, &bob, http.MethodGet, "/api/v1/chats/room-1?page=2&limit=500", nil)

	req.Equal(http.StatusOK, w.Code)
	req.Empty(decodeBody(t, w)["conversation"])
}

func TestChatServer_GetRecentConversations_Defaults_Paging(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	s.chatService.EXPECT().
		GetRecentConversations(gomock.Any(), chat.GetRecentConversationsCommand{Viewer: alice, Page: chat.Page{Number: 0, Limit: 10}}).
		Return([]chat.RoomSummary{{RoomID: "room-1", Unread: true}}, nil)

	w := s.do(t, &alice, http.MethodGet, "/api/v1/chats?page=abc&limit=-3", nil)

	req.Equal(http.StatusOK, w.Code)
	conversation := decodeBody(t, w)["conversation"].([]any)
	req.Len(conversation, 1)
	req.Equal(true, conversation[0].(map[string]any)["unread"])
}

func TestChatServer_MarkRead(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	s.chatService.EXPECT().MarkRead(chat.MarkReadCommand{Room: "room-1", Reader: bob}).Return(3, nil)

	w := s.do(t, &bob, http.MethodPut, "/api/v1/chats/room-1/mark-read", nil)

	req.Equal(http.StatusOK, w.Code)
	req.Equal(float64(3), decodeBody(t, w)["data"].(map[string]any)["modified"])
}

func TestChatServer_Search(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	s.chatService.EXPECT().
		Search(gomock.Any(), chat.SearchCommand{Room: "room-1", Viewer: bob, Query: "tooth", Page: chat.Page{Limit: 10}}).
		Return(nil, nil)

	w := s.do(t, &bob, http.MethodGet, "/api/v1/chats/room-1/search?q=tooth", nil)

	req.Equal(http.StatusOK, w.Code)
}

func TestChatServer_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not a participant", errors.ErrUnauthorized, http.StatusForbidden},
		{"unknown room", errors.ErrRoomNotFound, http.StatusNotFound},
		{"invalid input", errors.ErrInvalidInput, http.StatusBadRequest},
		{"conflict", errors.ErrConflict, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			s := newTestServer(t)
			s.chatService.EXPECT().GetConversation(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			w := s.do(t, &alice, http.MethodGet, "/api/v1/chats/room-1", nil)

			req.Equal(tt.status, w.Code)
			body := decodeBody(t, w)
			req.Equal(false, body["success"])
			req.NotEmpty(body["message"])
		})
	}
}

func TestChatServer_Rejects_Malformed_Body(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)
	token, err := s.tokens.GenerateToken(alice)
	req.NoError(err)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/chats/room-1/message", bytes.NewBufferString("{not json"))
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, r)

	req.Equal(http.StatusBadRequest, w.Code)
}

func TestChatServer_Requires_Token(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	w := s.do(t, nil, http.MethodGet, "/api/v1/chats", nil)

	req.Equal(http.StatusUnauthorized, w.Code)
	req.Equal(false, decodeBody(t, w)["success"])
}

func TestMonitoringServer_Is_Public(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	health := s.do(t, nil, http.MethodGet, "/health", nil)
	req.Equal(http.StatusOK, health.Code)
	req.Equal("ok", decodeBody(t, health)["status"])

	stats := s.do(t, nil, http.MethodGet, "/debug/stats", nil)
	req.Equal(http.StatusOK, stats.Code)
	req.Contains(decodeBody(t, stats), "messages_posted")
}
