// Package runtime handles presence, event propagation and the supervised workers.
// It orchestrates the system without containing business logic or domain rules.
package runtime

import (
	"clinic-chat/contract"
	"clinic-chat/domain/event"
	"clinic-chat/observability"
	"clinic-chat/runtime/workers"
	"context"
	"log/slog"
	"sync"
	"time"
)

type Orchestrator struct {
	mu             sync.Mutex
	log            *slog.Logger
	supervisor     contract.ISupervisor
	registry       *Registry
	monitoring     *observability.MonitoringManager
	deliveries     chan workers.Delivery
	permanentSinks []contract.EventSink
	sinkTimeout    time.Duration
	metricInterval time.Duration
}

func NewOrchestrator(log *slog.Logger, supervisor contract.ISupervisor, registry *Registry,
	monitoring *observability.MonitoringManager, bufferSize int,
	sinkTimeout, metricInterval time.Duration) *Orchestrator {
	return &Orchestrator{
		log:            log,
		supervisor:     supervisor,
		registry:       registry,
		monitoring:     monitoring,
		deliveries:     make(chan workers.Delivery, bufferSize),
		sinkTimeout:    sinkTimeout,
		metricInterval: metricInterval,
	}
}

func (o *Orchestrator) Registry() contract.IRegistry {
	return o.registry
}

// Add registers sinks receiving every dispatched event, whatever the room.
// The debug tail is one of them.
func (o *Orchestrator) Add(sinks ...contract.EventSink) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.permanentSinks = append(o.permanentSinks, sinks...)
}

// Dispatch snapshots the room's sinks now and queues one delivery.
// A connection subscribing after this call does not receive the event.
// When the queue is full the delivery is dropped and counted.
func (o *Orchestrator) Dispatch(evt event.DomainEvent) {
	sinks := o.registry.GetSinksForRoom(evt.RoomID())
	o.mu.Lock()
	sinks = append(sinks, o.permanentSinks...)
	o.mu.Unlock()
	if len(sinks) == 0 {
		return
	}

	select {
	case o.deliveries <- workers.Delivery{Event: evt, Sinks: sinks}:
		o.monitoring.IncrDeliveriesEnqueued()
	default:
		o.monitoring.IncrDeliveriesDropped()
		o.log.Warn("Delivery queue full, dropping event", "room_id", evt.RoomID(), "event", evt.Name())
	}
}

// Start registers the fanout and monitoring workers and blocks on the supervisor.
func (o *Orchestrator) Start(ctx context.Context) error {
	fanout := workers.NewEventFanout(o.log, o.deliveries, o.monitoring, o.sinkTimeout)
	health := workers.NewHealthMonitoringWorker(o.log, o.monitoring, o.registry, o.queueLevel, o.metricInterval)

	o.supervisor.Add(fanout, health)
	if o.monitoring != nil {
		o.supervisor.Add(o.monitoring)
	}

	o.log.Info("Starting orchestrator and all supervised workers")
	o.supervisor.Run(ctx)
	return nil
}

func (o *Orchestrator) queueLevel() (int, int) {
	return len(o.deliveries), cap(o.deliveries)
}

// Stop cancels the supervised context; Start returns once every worker stopped.
func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")
	o.supervisor.Stop()
}
