package services

import (
	"clinic-chat/contract"
	"clinic-chat/domain/chat"
	"clinic-chat/domain/event"
	"clinic-chat/errors"
	"clinic-chat/mocks"
	"context"
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type chatMocks struct {
	rooms      *mocks.MockIRoomDirectory
	store      *mocks.MockIMessageStore
	aggregator *mocks.MockIConversationAggregator
	registry   *mocks.MockIRegistry
	dispatcher *mocks.MockIDispatcher
}

func newChatService(t *testing.T) (*ChatService, chatMocks) {
	ctrl := gomock.NewController(t)
	m := chatMocks{
		rooms:      mocks.NewMockIRoomDirectory(ctrl),
		store:      mocks.NewMockIMessageStore(ctrl),
		aggregator: mocks.NewMockIConversationAggregator(ctrl),
		registry:   mocks.NewMockIRegistry(ctrl),
		dispatcher: mocks.NewMockIDispatcher(ctrl),
	}
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	return NewChatService(log, m.rooms, m.store, m.aggregator, m.registry, m.dispatcher), m
}

var clinicRoom = chat.Room{ID: "room", Participants: []chat.Account{alice, bob}}

func TestChatService_PostMessage_Dispatches_After_Store(t *testing.T) {
	req := require.New(t)
	svc, m := newChatService(t)
	cmd := chat.PostMessageCommand{Room: clinicRoom.ID, Sender: alice, Content: "hello"}
	var stored chat.EnrichedMessage
	stored.RoomID = clinicRoom.ID
	stored.Body = "hello"

	gomock.InOrder(
		m.rooms.EXPECT().GetRoomByID(clinicRoom.ID).Return(clinicRoom, nil),
		m.store.EXPECT().PostMessage(gomock.Any(), cmd).Return(stored, nil),
		m.dispatcher.EXPECT().Dispatch(event.MessagePosted{Message: stored}),
	)

	posted, err := svc.PostMessage(context.Background(), cmd)

	req.NoError(err)
	req.Equal(stored, posted)
}

func TestChatService_PostMessage_Refuses_Non_Participant(t *testing.T) {
	req := require.New(t)
	svc, m := newChatService(t)

	m.rooms.EXPECT().GetRoomByID(clinicRoom.ID).Return(clinicRoom, nil)
	m.store.EXPECT().PostMessage(gomock.Any(), gomock.Any()).Times(0)
	m.dispatcher.EXPECT().Dispatch(gomock.Any()).Times(0)

	_, err := svc.PostMessage(context.Background(), chat.PostMessageCommand{Room: clinicRoom.ID, Sender: carol, Content: "hello"})

	req.ErrorIs(err, errors.ErrUnauthorized)
}

func TestChatService_PostMessage_Store_Failure_Is_Not_Dispatched(t *testing.T) {
	req := require.New(t)
	svc, m := newChatService(t)

	m.rooms.EXPECT().GetRoomByID(clinicRoom.ID).Return(clinicRoom, nil)
	m.store.EXPECT().PostMessage(gomock.Any(), gomock.Any()).Return(chat.EnrichedMessage{}, errors.ErrInvalidInput)
	m.dispatcher.EXPECT().Dispatch(gomock.Any()).Times(0)

	_, err := svc.PostMessage(context.Background(), chat.PostMessageCommand{Room: clinicRoom.ID, Sender: alice, Content: "hello"})

	req.ErrorIs(err, errors.ErrInvalidInput)
}

func TestChatService_Reads_Require_Participation(t *testing.T) {
	req := require.New(t)
	svc, m := newChatService(t)
	page := chat.Page{Limit: 10}

	m.rooms.EXPECT().GetRoomByID(clinicRoom.ID).Return(clinicRoom, nil).Times(3)
	m.aggregator.EXPECT().GetConversation(gomock.Any(), clinicRoom.ID, page).Return([]chat.EnrichedMessage{}, nil)

	_, err := svc.GetConversation(context.Background(), chat.GetConversationCommand{Room: clinicRoom.ID, Viewer: bob, Page: page})
	req.NoError(err)

	_, err = svc.GetConversation(context.Background(), chat.GetConversationCommand{Room: clinicRoom.ID, Viewer: carol, Page: page})
	req.ErrorIs(err, errors.ErrUnauthorized)

	_, err = svc.MarkRead(chat.MarkReadCommand{Room: clinicRoom.ID, Reader: carol})
	req.ErrorIs(err, errors.ErrUnauthorized)

	_, err = svc.Search(context.Background(), chat.SearchCommand{Room: clinicRoom.ID, Viewer: bob})
	req.ErrorIs(err, errors.ErrInvalidInput)
}

func TestChatService_Identify_Must_Match_Token(t *testing.T) {
	req := require.New(t)
	svc, m := newChatService(t)
	connID := contract.ConnectionID("conn")

	m.registry.EXPECT().Identify(connID, "alice").Return(nil).Times(1)

	req.NoError(svc.Identify(connID, alice, "alice"))
	req.ErrorIs(svc.Identify(connID, alice, "bob"), errors.ErrUnauthorized)
}

func TestChatService_Subscribe(t *testing.T) {
	connID := contract.ConnectionID("conn")

	t.Run("should refuse an anonymous connection", func(t *testing.T) {
		req := require.New(t)
		svc, m := newChatService(t)
		m.registry.EXPECT().AccountOf(connID).Return("", false)
		m.registry.EXPECT().Subscribe(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		err := svc.Subscribe(connID, clinicRoom.ID, "")

		req.ErrorIs(err, errors.ErrNotIdentified)
		req.ErrorIs(err, errors.ErrUnauthorized)
	})

	t.Run("should refuse a requester outside the room", func(t *testing.T) {
		req := require.New(t)
		svc, m := newChatService(t)
		m.registry.EXPECT().AccountOf(connID).Return("carol", true)
		m.rooms.EXPECT().GetRoomByID(clinicRoom.ID).Return(clinicRoom, nil)
		m.registry.EXPECT().Subscribe(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		req.ErrorIs(svc.Subscribe(connID, clinicRoom.ID, ""), errors.ErrUnauthorized)
	})

	t.Run("should refuse co-subscribing a peer outside the room", func(t *testing.T) {
		req := require.New(t)
		svc, m := newChatService(t)
		m.registry.EXPECT().AccountOf(connID).Return("alice", true)
		m.rooms.EXPECT().GetRoomByID(clinicRoom.ID).Return(clinicRoom, nil)
		m.registry.EXPECT().Subscribe(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		req.ErrorIs(svc.Subscribe(connID, clinicRoom.ID, "carol"), errors.ErrUnauthorized)
	})

	t.Run("should join the requester and the peer", func(t *testing.T) {
		req := require.New(t)
		svc, m := newChatService(t)
		m.registry.EXPECT().AccountOf(connID).Return("alice", true)
		m.rooms.EXPECT().GetRoomByID(clinicRoom.ID).Return(clinicRoom, nil)
		m.registry.EXPECT().Subscribe(connID, clinicRoom.ID, "bob").Return(nil)

		req.NoError(svc.Subscribe(connID, clinicRoom.ID, "bob"))
	})

	t.Run("should report an unknown room", func(t *testing.T) {
		req := require.New(t)
		svc, m := newChatService(t)
		m.registry.EXPECT().AccountOf(connID).Return("alice", true)
		m.rooms.EXPECT().GetRoomByID(chat.RoomID("missing")).Return(chat.Room{}, errors.ErrRoomNotFound)

		req.ErrorIs(svc.Subscribe(connID, "missing", ""), errors.ErrNotFound)
	})
}
