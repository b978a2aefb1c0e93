package sink

import (
	"clinic-chat/domain/event"
	"clinic-chat/errors"
	"context"
	"fmt"
	"sync"
)

// ConnectionSink buffers the events addressed to one realtime connection.
// The transport drains Events; once Close is called every Consume fails fast.
type ConnectionSink struct {
	events    chan event.DomainEvent
	done      chan struct{}
	closeOnce sync.Once
}

func NewConnectionSink(bufferSize int) *ConnectionSink {
	return &ConnectionSink{
		events: make(chan event.DomainEvent, bufferSize),
		done:   make(chan struct{}),
	}
}

// Consume blocks until the event is buffered, the connection closes or ctx expires.
func (s *ConnectionSink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case <-s.done:
		return fmt.Errorf("%w: sink closed", errors.ErrConnectionGone)
	default:
	}
	select {
	case s.events <- e:
		return nil
	case <-s.done:
		return fmt.Errorf("%w: sink closed", errors.ErrConnectionGone)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *ConnectionSink) Events() <-chan event.DomainEvent {
	return s.events
}

func (s *ConnectionSink) Done() <-chan struct{} {
	return s.done
}

func (s *ConnectionSink) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}
