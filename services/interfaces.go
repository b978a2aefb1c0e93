//go:generate go run go.uber.org/mock/mockgen -source=interfaces.go -destination=../mocks/mock_interfaces.go -package=mocks
package services

import (
	"clinic-chat/contract"
	"clinic-chat/domain/chat"
	"context"
)

type IRoomDirectory interface {
	InitiateChat(cmd chat.InitiateChatCommand) (chat.Room, error)
	GetRoomsForAccount(accountID string) ([]chat.Room, error)
	GetRoomByID(roomID chat.RoomID) (chat.Room, error)
}

type IMessageStore interface {
	PostMessage(ctx context.Context, cmd chat.PostMessageCommand) (chat.EnrichedMessage, error)
	MarkRead(cmd chat.MarkReadCommand) (int, error)
}

type IConversationAggregator interface {
	GetConversation(ctx context.Context, roomID chat.RoomID, page chat.Page) ([]chat.EnrichedMessage, error)
	GetRecentConversations(ctx context.Context, accountID string, page chat.Page) ([]chat.RoomSummary, error)
	SearchConversation(ctx context.Context, roomID chat.RoomID, query string, page chat.Page) ([]chat.EnrichedMessage, error)
}

// IChatService is what the transport layer calls.
type IChatService interface {
	InitiateChat(cmd chat.InitiateChatCommand) (chat.Room, error)
	PostMessage(ctx context.Context, cmd chat.PostMessageCommand) (chat.EnrichedMessage, error)
	GetConversation(ctx context.Context, cmd chat.GetConversationCommand) ([]chat.EnrichedMessage, error)
	GetRecentConversations(ctx context.Context, cmd chat.GetRecentConversationsCommand) ([]chat.RoomSummary, error)
	MarkRead(cmd chat.MarkReadCommand) (int, error)
	Search(ctx context.Context, cmd chat.SearchCommand) ([]chat.EnrichedMessage, error)
	Connect(connID contract.ConnectionID, sink contract.EventSink)
	Identify(connID contract.ConnectionID, authenticated chat.Account, claimedAccountID string) error
	Subscribe(connID contract.ConnectionID, roomID chat.RoomID, peerAccountID string) error
	Unsubscribe(connID contract.ConnectionID, roomID chat.RoomID)
	Disconnect(connID contract.ConnectionID)
}
