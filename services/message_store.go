package services

import (
	"clinic-chat/domain/chat"
	"clinic-chat/errors"
	"clinic-chat/infrastructure/storage"
	"clinic-chat/moderation"
	"clinic-chat/observability"
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

type MessageStore struct {
	log              *slog.Logger
	rooms            storage.IRoomRepository
	messages         storage.IMessageRepository
	index            storage.ISearchIndex
	enricher         *Enricher
	moderator        *moderation.Moderator
	monitoring       *observability.MonitoringManager
	maxContentLength int
	clock            func() time.Time
}

// NewMessageStore builds the store; a nil moderator disables censoring
// and a nil index disables search indexing.
func NewMessageStore(log *slog.Logger, rooms storage.IRoomRepository, messages storage.IMessageRepository,
	index storage.ISearchIndex, enricher *Enricher, moderator *moderation.Moderator,
	monitoring *observability.MonitoringManager, maxContentLength int) *MessageStore {
	return &MessageStore{
		log:              log,
		rooms:            rooms,
		messages:         messages,
		index:            index,
		enricher:         enricher,
		moderator:        moderator,
		monitoring:       monitoring,
		maxContentLength: maxContentLength,
		clock:            time.Now,
	}
}

// PostMessage persists a message with its sender as first reader and returns it enriched.
func (s *MessageStore) PostMessage(ctx context.Context, cmd chat.PostMessageCommand) (chat.EnrichedMessage, error) {
	if err := validateCommand(cmd); err != nil {
		return chat.EnrichedMessage{}, err
	}
	if s.maxContentLength > 0 && utf8.RuneCountInString(cmd.Content) > s.maxContentLength {
		return chat.EnrichedMessage{}, fmt.Errorf("%w: message exceeds %d characters", errors.ErrInvalidInput, s.maxContentLength)
	}
	room, err := s.rooms.GetRoom(cmd.Room)
	if err != nil {
		return chat.EnrichedMessage{}, err
	}

	createdAt := cmd.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.clock()
	}
	createdAt = createdAt.UTC()

	body, censored := s.censor(cmd.Content)
	message := chat.Message{
		ID:        uuid.New(),
		RoomID:    room.ID,
		Body:      body,
		Sender:    cmd.Sender,
		Language:  moderation.DetectLanguage(cmd.Content),
		Censored:  censored,
		CreatedAt: createdAt,
		ReadBy:    []chat.ReadReceipt{{ReaderID: cmd.Sender.ID, ReadAt: createdAt}},
	}

	stored, err := s.messages.StoreMessage(message)
	if err != nil {
		return chat.EnrichedMessage{}, err
	}
	s.monitoring.IncrMessagesPosted()

	if s.index != nil {
		if err := s.index.Index(stored); err != nil {
			s.monitoring.IncrSearchIndexFailures()
			s.log.Warn("Message not indexed", "room_id", stored.RoomID, "message_id", stored.ID, "error", err)
		}
	}

	return s.enricher.EnrichMessages(ctx, room, []chat.Message{stored})[0], nil
}

// MarkRead records the reader on every message of the room it has not read yet.
func (s *MessageStore) MarkRead(cmd chat.MarkReadCommand) (int, error) {
	if err := validateCommand(cmd); err != nil {
		return 0, err
	}
	if _, err := s.rooms.GetRoom(cmd.Room); err != nil {
		return 0, err
	}
	updated, err := s.messages.MarkRead(cmd.Room, cmd.Reader.ID, s.clock().UTC())
	if err != nil {
		return 0, err
	}
	s.log.Debug("Messages marked as read", "room_id", cmd.Room, "reader", cmd.Reader.ID, "updated", updated)
	return updated, nil
}

func (s *MessageStore) censor(content string) (string, bool) {
	if s.moderator == nil {
		return content, false
	}
	censored, words := s.moderator.Censor(content)
	if len(words) == 0 {
		return content, false
	}
	s.monitoring.RecordCensored(words)
	return censored, true
}
