package sink

import (
	"clinic-chat/domain/chat"
	"clinic-chat/domain/event"
	"context"
	"sync"
)

// Timeline holds a simple local timeline of the messages it received.
// With a capacity, only the most recent messages are kept.
type Timeline struct {
	mu       sync.Mutex
	Owner    string
	capacity int
	messages []chat.EnrichedMessage
}

func NewTimeline(owner string) *Timeline {
	return &Timeline{Owner: owner}
}

func NewRecentTimeline(owner string, capacity int) *Timeline {
	return &Timeline{Owner: owner, capacity: capacity}
}

func (t *Timeline) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.MessagePosted:
		t.mu.Lock()
		t.messages = append(t.messages, evt.Message)
		if t.capacity > 0 && len(t.messages) > t.capacity {
			t.messages = append([]chat.EnrichedMessage(nil), t.messages[len(t.messages)-t.capacity:]...)
		}
		t.mu.Unlock()
	}
	return nil
}

func (t *Timeline) Messages() []chat.EnrichedMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]chat.EnrichedMessage(nil), t.messages...)
}
