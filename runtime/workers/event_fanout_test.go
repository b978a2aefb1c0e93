package workers

import (
	"clinic-chat/contract"
	"clinic-chat/domain/chat"
	"clinic-chat/domain/event"
	"clinic-chat/mocks"
	"clinic-chat/observability"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func postedIn(roomID chat.RoomID) event.MessagePosted {
	var message chat.EnrichedMessage
	message.RoomID = roomID
	return event.MessagePosted{Message: message}
}

func TestEventFanoutWorker_Fanout(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockSink1 := mocks.NewMockEventSink(ctrl)
	mockSink2 := mocks.NewMockEventSink(ctrl)
	evt := postedIn("room")

	fanoutWorker := NewEventFanout(log, nil, nil, time.Second)

	// Given both sinks consume the event once
	var count int32
	for _, sink := range []*mocks.MockEventSink{mockSink1, mockSink2} {
		sink.EXPECT().Consume(gomock.Any(), evt).
			DoAndReturn(func(ctx context.Context, e event.DomainEvent) error {
				atomic.AddInt32(&count, 1)
				return nil
			}).
			Times(1)
	}

	// When the delivery is handled
	fanoutWorker.Fanout(context.Background(), Delivery{Event: evt, Sinks: []contract.EventSink{mockSink1, mockSink2}})

	// Then Fanout returned after both sinks were consumed
	req.Equal(int32(2), atomic.LoadInt32(&count))
}

func TestEventFanoutWorker_SinkTimeout(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	slowSink := mocks.NewMockEventSink(ctrl)
	fastSink := mocks.NewMockEventSink(ctrl)
	monitoring := observability.NewMonitoringManager(log, 1)

	sinkTimeout := 20 * time.Millisecond
	fanoutWorker := NewEventFanout(log, nil, monitoring, sinkTimeout)

	// Given a sink that never completes on its own
	slowSink.EXPECT().Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, evt event.DomainEvent) error {
			<-ctx.Done()
			return ctx.Err()
		}).
		Times(1)
	fastSink.EXPECT().Consume(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	// When the delivery is handled
	start := time.Now()
	fanoutWorker.Fanout(context.Background(), Delivery{Event: postedIn("room"), Sinks: []contract.EventSink{slowSink, fastSink}})

	// Then the slow sink was cut at the timeout and counted as a failure
	req.Less(time.Since(start), time.Second)
	req.Equal(uint64(1), monitoring.GetLatest().SinkFailures)
}

func TestEventFanoutWorker_Run_Consumes_Deliveries(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockSink := mocks.NewMockEventSink(ctrl)
	deliveries := make(chan Delivery, 2)
	done := make(chan struct{})

	mockSink.EXPECT().Consume(gomock.Any(), gomock.Any()).Return(errors.New("closed")).Times(1)
	mockSink.EXPECT().Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, evt event.DomainEvent) error {
			close(done)
			return nil
		}).
		Times(1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker := NewEventFanout(log, deliveries, nil, time.Second)
	go func() { _ = worker.Run(ctx) }()

	// When two deliveries are queued, the first one failing
	deliveries <- Delivery{Event: postedIn("room"), Sinks: []contract.EventSink{mockSink}}
	deliveries <- Delivery{Event: postedIn("room"), Sinks: []contract.EventSink{mockSink}}

	// Then the worker keeps going after the failure
	select {
	case <-done:
	case <-time.After(time.Second):
		req.Fail("Second delivery was not consumed")
	}
}
