package services

import (
	"clinic-chat/domain/chat"
	"clinic-chat/infrastructure/storage"
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/samber/lo"
)

// ConversationAggregator serves the read side: room timelines, the recent
// conversations list and full text search. It never writes.
type ConversationAggregator struct {
	log      *slog.Logger
	rooms    storage.IRoomRepository
	messages storage.IMessageRepository
	index    storage.ISearchIndex
	enricher *Enricher
}

func NewConversationAggregator(log *slog.Logger, rooms storage.IRoomRepository,
	messages storage.IMessageRepository, index storage.ISearchIndex, enricher *Enricher) *ConversationAggregator {
	return &ConversationAggregator{log: log, rooms: rooms, messages: messages, index: index, enricher: enricher}
}

// GetConversation returns one page of the room, counted from the newest message
// and ordered oldest first. A page past the end is empty.
func (a *ConversationAggregator) GetConversation(ctx context.Context, roomID chat.RoomID, page chat.Page) ([]chat.EnrichedMessage, error) {
	room, err := a.rooms.GetRoom(roomID)
	if err != nil {
		return nil, err
	}
	messages, err := a.messages.GetPage(roomID, page)
	if err != nil {
		return nil, err
	}
	return a.enricher.EnrichMessages(ctx, room, messages), nil
}

// GetRecentConversations lists the account's rooms by latest message, newest first.
// Rooms without messages are left out.
func (a *ConversationAggregator) GetRecentConversations(ctx context.Context, accountID string, page chat.Page) ([]chat.RoomSummary, error) {
	rooms, err := a.rooms.GetRoomsForAccount(accountID)
	if err != nil {
		return nil, err
	}

	items := make([]roomLatest, 0, len(rooms))
	for _, room := range rooms {
		latest, ok, err := a.messages.GetLatest(room.ID)
		if err != nil {
			return nil, fmt.Errorf("latest message of room %s: %w", room.ID, err)
		}
		if ok {
			items = append(items, roomLatest{room: room, latest: latest})
		}
	}
	sort.Slice(items, func(i, j int) bool {
		left, right := items[i].latest.CreatedAt, items[j].latest.CreatedAt
		if left.Equal(right) {
			return items[i].room.ID < items[j].room.ID
		}
		return left.After(right)
	})

	return a.enricher.Summaries(ctx, accountID, paginate(items, page)), nil
}

// SearchConversation matches the query against the room's message bodies, newest first.
func (a *ConversationAggregator) SearchConversation(ctx context.Context, roomID chat.RoomID, query string, page chat.Page) ([]chat.EnrichedMessage, error) {
	room, err := a.rooms.GetRoom(roomID)
	if err != nil {
		return nil, err
	}
	keys, total, err := a.index.Search(ctx, roomID, query, page)
	if err != nil {
		return nil, err
	}
	messages, err := a.messages.GetMessagesByKeys(keys)
	if err != nil {
		return nil, err
	}
	a.log.Debug("Conversation searched", "room_id", roomID, "hits", total, "returned", len(messages))
	return a.enricher.EnrichMessages(ctx, room, messages), nil
}

func paginate[T any](items []T, page chat.Page) []T {
	if page.OutOfRange() || page.Offset() >= len(items) {
		return []T{}
	}
	return lo.Slice(items, page.Offset(), page.Offset()+page.Limit)
}
