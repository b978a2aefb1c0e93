package workers

import (
	"clinic-chat/contract"
	"clinic-chat/domain/event"
	"clinic-chat/observability"
	"context"
	"log/slog"
	"sync"
	"time"
)

// Delivery is one event and the sinks snapshotted when it was dispatched.
type Delivery struct {
	Event event.DomainEvent
	Sinks []contract.EventSink
}

// EventFanout pushes each delivery to its sinks.
//
// It provides best-effort fan-out with no guarantees regarding delivery,
// durability, or retries. EventFanout is not a message broker.
// Every sink is consumed in its own goroutine bounded by sinkTimeout, and a
// delivery completes before the next one starts, so one connection receives
// the events of a room in dispatch order.
type EventFanout struct {
	log         *slog.Logger
	deliveries  <-chan Delivery
	monitoring  *observability.MonitoringManager
	sinkTimeout time.Duration
}

func NewEventFanout(log *slog.Logger, deliveries <-chan Delivery,
	monitoring *observability.MonitoringManager, sinkTimeout time.Duration) *EventFanout {
	return &EventFanout{
		log:         log,
		deliveries:  deliveries,
		monitoring:  monitoring,
		sinkTimeout: sinkTimeout,
	}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping fanout")
			return nil
		case delivery := <-w.deliveries:
			w.Fanout(ctx, delivery)
		}
	}
}

// Fanout One goroutine for each sink
func (w *EventFanout) Fanout(ctx context.Context, delivery Delivery) {
	var wg sync.WaitGroup
	for _, sink := range delivery.Sinks {
		wg.Add(1)
		go func(s contract.EventSink) {
			defer wg.Done()
			sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
			defer cancel()

			if err := s.Consume(sinkCtx, delivery.Event); err != nil {
				w.monitoring.IncrSinkFailures()
				w.log.Debug("Sink failed to consume event",
					"room_id", delivery.Event.RoomID(),
					"event", delivery.Event.Name(),
					"error", err)
			}
		}(sink)
	}
	wg.Wait()
}
