package services

import (
	"clinic-chat/contract"
	"clinic-chat/domain/chat"
	"clinic-chat/domain/event"
	"clinic-chat/errors"
	"context"
	"fmt"
	"log/slog"
)

// ChatService is the entry point of the transport layer. It authorizes the
// caller against room membership before delegating, and broadcasts new messages.
type ChatService struct {
	log        *slog.Logger
	rooms      IRoomDirectory
	store      IMessageStore
	aggregator IConversationAggregator
	registry   contract.IRegistry
	dispatcher contract.IDispatcher
}

func NewChatService(log *slog.Logger, rooms IRoomDirectory, store IMessageStore,
	aggregator IConversationAggregator, registry contract.IRegistry, dispatcher contract.IDispatcher) *ChatService {
	return &ChatService{
		log:        log,
		rooms:      rooms,
		store:      store,
		aggregator: aggregator,
		registry:   registry,
		dispatcher: dispatcher,
	}
}

func (s *ChatService) InitiateChat(cmd chat.InitiateChatCommand) (chat.Room, error) {
	return s.rooms.InitiateChat(cmd)
}

// PostMessage stores the message then hands it to the dispatcher.
// Delivery problems never fail the post.
func (s *ChatService) PostMessage(ctx context.Context, cmd chat.PostMessageCommand) (chat.EnrichedMessage, error) {
	if err := validateCommand(cmd); err != nil {
		return chat.EnrichedMessage{}, err
	}
	if _, err := s.authorize(cmd.Room, cmd.Sender.ID); err != nil {
		return chat.EnrichedMessage{}, err
	}
	message, err := s.store.PostMessage(ctx, cmd)
	if err != nil {
		return chat.EnrichedMessage{}, err
	}
	s.dispatcher.Dispatch(event.MessagePosted{Message: message})
	return message, nil
}

func (s *ChatService) GetConversation(ctx context.Context, cmd chat.GetConversationCommand) ([]chat.EnrichedMessage, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}
	if _, err := s.authorize(cmd.Room, cmd.Viewer.ID); err != nil {
		return nil, err
	}
	return s.aggregator.GetConversation(ctx, cmd.Room, cmd.Page)
}

func (s *ChatService) GetRecentConversations(ctx context.Context, cmd chat.GetRecentConversationsCommand) ([]chat.RoomSummary, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}
	return s.aggregator.GetRecentConversations(ctx, cmd.Viewer.ID, cmd.Page)
}

func (s *ChatService) MarkRead(cmd chat.MarkReadCommand) (int, error) {
	if err := validateCommand(cmd); err != nil {
		return 0, err
	}
	if _, err := s.authorize(cmd.Room, cmd.Reader.ID); err != nil {
		return 0, err
	}
	return s.store.MarkRead(cmd)
}

func (s *ChatService) Search(ctx context.Context, cmd chat.SearchCommand) ([]chat.EnrichedMessage, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}
	if _, err := s.authorize(cmd.Room, cmd.Viewer.ID); err != nil {
		return nil, err
	}
	return s.aggregator.SearchConversation(ctx, cmd.Room, cmd.Query, cmd.Page)
}

func (s *ChatService) Connect(connID contract.ConnectionID, sink contract.EventSink) {
	s.registry.Connect(connID, sink)
	s.log.Debug("Connection registered", "connection_id", connID)
}

// Identify binds the connection to the authenticated account.
// Announcing any other account is refused.
func (s *ChatService) Identify(connID contract.ConnectionID, authenticated chat.Account, claimedAccountID string) error {
	if claimedAccountID != authenticated.ID {
		return fmt.Errorf("%w: connection authenticated as %s announced %s",
			errors.ErrUnauthorized, authenticated.ID, claimedAccountID)
	}
	return s.registry.Identify(connID, authenticated.ID)
}

// Subscribe joins the connection, and the peer's connections when a peer is
// named, to the room. Both the connection's account and the peer must be
// participants; otherwise nothing is joined.
func (s *ChatService) Subscribe(connID contract.ConnectionID, roomID chat.RoomID, peerAccountID string) error {
	accountID, ok := s.registry.AccountOf(connID)
	if !ok {
		return errors.ErrNotIdentified
	}
	room, err := s.authorize(roomID, accountID)
	if err != nil {
		return err
	}
	if peerAccountID != "" && !room.HasParticipant(peerAccountID) {
		return fmt.Errorf("%w: peer %s", errors.ErrUnauthorized, peerAccountID)
	}
	return s.registry.Subscribe(connID, roomID, peerAccountID)
}

func (s *ChatService) Unsubscribe(connID contract.ConnectionID, roomID chat.RoomID) {
	s.registry.Unsubscribe(connID, roomID)
}

func (s *ChatService) Disconnect(connID contract.ConnectionID) {
	s.registry.Disconnect(connID)
	s.log.Debug("Connection closed", "connection_id", connID)
}

func (s *ChatService) authorize(roomID chat.RoomID, accountID string) (chat.Room, error) {
	room, err := s.rooms.GetRoomByID(roomID)
	if err != nil {
		return chat.Room{}, err
	}
	if !room.HasParticipant(accountID) {
		return chat.Room{}, errors.ErrUnauthorized
	}
	return room, nil
}
