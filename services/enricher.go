package services

import (
	"clinic-chat/domain/chat"
	"context"

	"github.com/samber/lo"
)

// Enricher joins messages with the profiles of their sender and room participants.
// Profiles are resolved in one batch per call.
type Enricher struct {
	directories *Directories
}

func NewEnricher(directories *Directories) *Enricher {
	return &Enricher{directories: directories}
}

func (e *Enricher) EnrichMessages(ctx context.Context, room chat.Room, messages []chat.Message) []chat.EnrichedMessage {
	accounts := append(lo.Map(messages, func(m chat.Message, _ int) chat.Account { return m.Sender }), room.Participants...)
	profiles := e.directories.Resolve(ctx, accounts)
	participants := lookup(profiles, room.Participants)

	return lo.Map(messages, func(m chat.Message, _ int) chat.EnrichedMessage {
		return chat.EnrichedMessage{
			Message:       m,
			SenderProfile: profiles[m.Sender],
			Participants:  participants,
		}
	})
}

// roomLatest pairs a room with its most recent message.
type roomLatest struct {
	room   chat.Room
	latest chat.Message
}

func (e *Enricher) Summaries(ctx context.Context, viewerID string, items []roomLatest) []chat.RoomSummary {
	var accounts []chat.Account
	for _, item := range items {
		accounts = append(accounts, item.latest.Sender)
		accounts = append(accounts, item.room.Participants...)
	}
	profiles := e.directories.Resolve(ctx, accounts)

	return lo.Map(items, func(item roomLatest, _ int) chat.RoomSummary {
		return chat.RoomSummary{
			RoomID:        item.room.ID,
			LastMessage:   item.latest,
			SenderProfile: profiles[item.latest.Sender],
			Participants:  lookup(profiles, item.room.Participants),
			Unread:        !item.latest.IsReadBy(viewerID),
		}
	})
}

func lookup(profiles map[chat.Account]chat.Profile, accounts []chat.Account) []chat.Profile {
	return lo.Map(accounts, func(a chat.Account, _ int) chat.Profile { return profiles[a] })
}
