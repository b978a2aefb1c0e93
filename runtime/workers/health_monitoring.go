package workers

import (
	"clinic-chat/observability"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// The queue is reported as saturated when at most 1/lowCapacityDivisor of it is left.
const lowCapacityDivisor = 10

// PresenceCounter reports the size of the presence registry.
type PresenceCounter interface {
	Stats() (int, int)
}

// QueueGauge reports the fill level of the delivery queue.
type QueueGauge func() (int, int)

// HealthMonitoringWorker samples the server process and the presence registry
// every metricInterval and publishes the result to the monitoring manager.
type HealthMonitoringWorker struct {
	log            *slog.Logger
	monitoring     *observability.MonitoringManager
	presence       PresenceCounter
	queue          QueueGauge
	metricInterval time.Duration
	proc           *process.Process
}

func NewHealthMonitoringWorker(
	log *slog.Logger,
	monitoring *observability.MonitoringManager,
	presence PresenceCounter,
	queue QueueGauge,
	metricInterval time.Duration,
) *HealthMonitoringWorker {
	return &HealthMonitoringWorker{
		log:            log,
		monitoring:     monitoring,
		presence:       presence,
		queue:          queue,
		metricInterval: metricInterval,
	}
}

func (w *HealthMonitoringWorker) Run(ctx context.Context) error {
	if w.proc == nil {
		p, err := process.NewProcess(int32(os.Getpid()))
		if err != nil {
			return err
		}
		w.proc = p
	}

	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping health monitoring")
			return nil
		case <-ticker.C:
			sample := w.Sample()
			w.warnOnBackpressure(sample)
			w.monitoring.Publish(sample)
		}
	}
}

// Sample collects one snapshot; process metrics that cannot be read are left at zero.
func (w *HealthMonitoringWorker) Sample() observability.SystemSample {
	sample := observability.SystemSample{SampledAt: time.Now().UTC()}
	if w.proc != nil {
		cpu, err := w.proc.CPUPercent()
		if err != nil {
			w.log.Debug("Error while finding process cpu usage", "error", err)
		}
		ram, err := w.proc.MemoryPercent()
		if err != nil {
			w.log.Debug("Error while finding process ram usage", "error", err)
		}
		sample.ProcessCPU, sample.ProcessRAM = cpu, ram
	}
	if w.presence != nil {
		sample.ActiveConnections, sample.ActiveRooms = w.presence.Stats()
	}
	if w.queue != nil {
		sample.QueueSize, sample.QueueCapacity = w.queue()
	}
	return sample
}

// warnOnBackpressure logs when the delivery queue is nearly full; drops follow.
func (w *HealthMonitoringWorker) warnOnBackpressure(sample observability.SystemSample) bool {
	if sample.QueueCapacity <= 0 {
		return false
	}
	capacityLeft := sample.QueueCapacity - sample.QueueSize
	if capacityLeft*lowCapacityDivisor > sample.QueueCapacity {
		return false
	}
	w.log.Warn(fmt.Sprintf("Delivery queue capacity left : %d / %d", capacityLeft, sample.QueueCapacity))
	return true
}
