package server

import (
	"clinic-chat/auth"
	"clinic-chat/domain/chat"
	"clinic-chat/errors"
	"clinic-chat/services"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

type initiateChatRequest struct {
	UserIDs []chat.Account `json:"userIds"`
}

type postMessageRequest struct {
	Message string `json:"message"`
}

type ChatServer struct {
	log          *slog.Logger
	chatService  services.IChatService
	defaultLimit int
	maxLimit     int
}

func NewChatServer(log *slog.Logger, chatService services.IChatService, defaultLimit, maxLimit int) *ChatServer {
	return &ChatServer{log: log, chatService: chatService, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// InitiateChat returns the room of the requested participants plus the caller,
// creating it on first use.
func (s *ChatServer) InitiateChat(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		writeError(s.log, w, errors.ErrUnauthenticated)
		return
	}
	var body initiateChatRequest
	if err := decode(w, r, &body); err != nil {
		writeError(s.log, w, err)
		return
	}
	room, err := s.chatService.InitiateChat(chat.InitiateChatCommand{
		Participants: body.UserIDs,
		Initiator:    account,
	})
	if err != nil {
		writeError(s.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "chatRoom": room})
}

// PostMessage persists the message; connections subscribed to the room
// receive it asynchronously as a "new message" event.
func (s *ChatServer) PostMessage(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		writeError(s.log, w, errors.ErrUnauthenticated)
		return
	}
	var body postMessageRequest
	if err := decode(w, r, &body); err != nil {
		writeError(s.log, w, err)
		return
	}
	post, err := s.chatService.PostMessage(r.Context(), chat.PostMessageCommand{
		Room:    roomID(r),
		Sender:  account,
		Content: body.Message,
	})
	if err != nil {
		writeError(s.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "post": post})
}

func (s *ChatServer) GetRecentConversations(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		writeError(s.log, w, errors.ErrUnauthenticated)
		return
	}
	summaries, err := s.chatService.GetRecentConversations(r.Context(), chat.GetRecentConversationsCommand{
		Viewer: account,
		Page:   s.page(r),
	})
	if err != nil {
		writeError(s.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "conversation": summaries})
}

func (s *ChatServer) GetConversation(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		writeError(s.log, w, errors.ErrUnauthenticated)
		return
	}
	messages, err := s.chatService.GetConversation(r.Context(), chat.GetConversationCommand{
		Room:   roomID(r),
		Viewer: account,
		Page:   s.page(r),
	})
	if err != nil {
		writeError(s.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "conversation": messages})
}

func (s *ChatServer) MarkRead(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		writeError(s.log, w, errors.ErrUnauthenticated)
		return
	}
	modified, err := s.chatService.MarkRead(chat.MarkReadCommand{Room: roomID(r), Reader: account})
	if err != nil {
		writeError(s.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "data": envelope{"modified": modified}})
}

func (s *ChatServer) Search(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		writeError(s.log, w, errors.ErrUnauthenticated)
		return
	}
	messages, err := s.chatService.Search(r.Context(), chat.SearchCommand{
		Room:   roomID(r),
		Viewer: account,
		Query:  r.URL.Query().Get("q"),
		Page:   s.page(r),
	})
	if err != nil {
		writeError(s.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "conversation": messages})
}

func (s *ChatServer) page(r *http.Request) chat.Page {
	query := r.URL.Query()
	return chat.ParsePage(query.Get("page"), query.Get("limit"), s.defaultLimit, s.maxLimit)
}

func roomID(r *http.Request) chat.RoomID {
	return chat.RoomID(mux.Vars(r)["roomId"])
}

func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed body: %v", errors.ErrInvalidInput, err)
	}
	return nil
}
