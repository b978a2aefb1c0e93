package workers

import (
	"clinic-chat/observability"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type fixedPresence struct{ connections, rooms int }

func (f fixedPresence) Stats() (int, int) { return f.connections, f.rooms }

func TestHealthMonitoringWorker_Publishes_Samples(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	monitoring := observability.NewMonitoringManager(log, 8)
	worker := NewHealthMonitoringWorker(log, monitoring, fixedPresence{connections: 4, rooms: 2},
		func() (int, int) { return 1, 16 }, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = monitoring.Run(ctx) }()
	go func() { _ = worker.Run(ctx) }()

	// Then the registry and queue figures reach the stats
	req.Eventually(func() bool {
		stats := monitoring.GetLatest()
		return stats.ActiveConnections == 4 && stats.QueueCapacity == 16
	}, time.Second, 10*time.Millisecond)

	stats := monitoring.GetLatest()
	req.Equal(2, stats.ActiveRooms)
	req.Equal(1, stats.QueueSize)
	req.NotEmpty(stats.SampledAt)
}

func TestHealthMonitoringWorker_Detects_Backpressure(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	worker := NewHealthMonitoringWorker(log, nil, nil, nil, time.Second)

	req.False(worker.warnOnBackpressure(observability.SystemSample{QueueSize: 10, QueueCapacity: 100}))
	req.True(worker.warnOnBackpressure(observability.SystemSample{QueueSize: 90, QueueCapacity: 100}))
	req.True(worker.warnOnBackpressure(observability.SystemSample{QueueSize: 100, QueueCapacity: 100}))
	req.False(worker.warnOnBackpressure(observability.SystemSample{}))
}
