package event

import (
	"clinic-chat/domain/chat"
	"time"
)

const NewMessageName = "new message"

// DomainEvent is anything pushed to the connections of a room.
type DomainEvent interface {
	RoomID() chat.RoomID
	Name() string
	OccurredAt() time.Time
}

// MessagePosted carries a freshly persisted, enriched message.
type MessagePosted struct {
	Message chat.EnrichedMessage
}

func (m MessagePosted) RoomID() chat.RoomID {
	return m.Message.RoomID
}

func (m MessagePosted) Name() string {
	return NewMessageName
}

func (m MessagePosted) OccurredAt() time.Time {
	return m.Message.CreatedAt
}
