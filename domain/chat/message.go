package chat

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// ReadReceipt records when a reader first saw a message.
type ReadReceipt struct {
	ReaderID string    `json:"readerId"`
	ReadAt   time.Time `json:"readAt"`
}

// Message is immutable except for its read receipts.
type Message struct {
	ID        uuid.UUID     `json:"id"`
	RoomID    RoomID        `json:"roomId"`
	Body      string        `json:"message"`
	Sender    Account       `json:"postedBy"`
	Language  string        `json:"language,omitempty"`
	Censored  bool          `json:"censored,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	ReadBy    []ReadReceipt `json:"readBy"`
}

func (m Message) IsReadBy(readerID string) bool {
	return lo.ContainsBy(m.ReadBy, func(r ReadReceipt) bool { return r.ReaderID == readerID })
}

// MarkRead appends a receipt unless the reader is already present.
// It reports whether the message changed.
func (m *Message) MarkRead(readerID string, at time.Time) bool {
	if m.IsReadBy(readerID) {
		return false
	}
	m.ReadBy = append(m.ReadBy, ReadReceipt{ReaderID: readerID, ReadAt: at})
	return true
}
