package observability

import (
	"context"
	"log/slog"
	"maps"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// SystemSample is pushed periodically by the health monitoring worker.
type SystemSample struct {
	ProcessCPU        float64
	ProcessRAM        float32
	ActiveConnections int
	ActiveRooms       int
	QueueSize         int
	QueueCapacity     int
	SampledAt         time.Time
}

// MonitoringStats is the JSON document served on the stats endpoint.
type MonitoringStats struct {
	MessagesPosted      uint64 `json:"messages_posted"`
	MessagesCensored    uint64 `json:"messages_censored"`
	DeliveriesEnqueued  uint64 `json:"deliveries_enqueued"`
	DeliveriesDropped   uint64 `json:"deliveries_dropped"`
	SinkFailures        uint64 `json:"sink_failures"`
	SearchIndexFailures uint64 `json:"search_index_failures"`
	ProfileFallbacks    uint64 `json:"profile_fallbacks"`
	WorkerRestarts      uint64 `json:"worker_restarts"`

	CensoredWords map[string]uint64 `json:"censored_words"`

	ActiveConnections int     `json:"active_connections"`
	ActiveRooms       int     `json:"active_rooms"`
	QueueSize         int     `json:"queue_size"`
	QueueCapacity     int     `json:"queue_capacity"`
	ProcessCPU        float64 `json:"process_cpu_percent"`
	ProcessRAM        float32 `json:"process_ram_percent"`
	SampledAt         string  `json:"sampled_at,omitempty"`

	AllocMemMb   uint64 `json:"alloc_mem_mb"`
	NumGC        uint32 `json:"num_gc"`
	NumGoroutine int    `json:"num_goroutine"`
}

// MonitoringManager aggregates counters and the latest system sample.
// A nil *MonitoringManager is valid and records nothing.
type MonitoringManager struct {
	log     *slog.Logger
	samples chan SystemSample

	mu            sync.RWMutex
	latest        SystemSample
	censoredWords map[string]uint64

	messagesPosted      uint64
	messagesCensored    uint64
	deliveriesEnqueued  uint64
	deliveriesDropped   uint64
	sinkFailures        uint64
	searchIndexFailures uint64
	profileFallbacks    uint64
	workerRestarts      uint64
}

func NewMonitoringManager(log *slog.Logger, bufferSize int) *MonitoringManager {
	return &MonitoringManager{
		log:           log,
		samples:       make(chan SystemSample, bufferSize),
		censoredWords: make(map[string]uint64),
	}
}

func (mm *MonitoringManager) IncrMessagesPosted() {
	if mm != nil {
		atomic.AddUint64(&mm.messagesPosted, 1)
	}
}

// RecordCensored counts one censored message and every dictionary word it hit.
func (mm *MonitoringManager) RecordCensored(words []string) {
	if mm == nil {
		return
	}
	atomic.AddUint64(&mm.messagesCensored, 1)
	mm.mu.Lock()
	defer mm.mu.Unlock()
	for _, word := range words {
		mm.censoredWords[word]++
	}
}

func (mm *MonitoringManager) IncrDeliveriesEnqueued() {
	if mm != nil {
		atomic.AddUint64(&mm.deliveriesEnqueued, 1)
	}
}

func (mm *MonitoringManager) IncrDeliveriesDropped() {
	if mm != nil {
		atomic.AddUint64(&mm.deliveriesDropped, 1)
	}
}

func (mm *MonitoringManager) IncrSinkFailures() {
	if mm != nil {
		atomic.AddUint64(&mm.sinkFailures, 1)
	}
}

func (mm *MonitoringManager) IncrSearchIndexFailures() {
	if mm != nil {
		atomic.AddUint64(&mm.searchIndexFailures, 1)
	}
}

func (mm *MonitoringManager) IncrProfileFallbacks() {
	if mm != nil {
		atomic.AddUint64(&mm.profileFallbacks, 1)
	}
}

func (mm *MonitoringManager) IncrWorkerRestarts() {
	if mm != nil {
		atomic.AddUint64(&mm.workerRestarts, 1)
	}
}

// Publish hands a sample to Run without blocking; a full buffer drops it.
func (mm *MonitoringManager) Publish(sample SystemSample) {
	if mm == nil {
		return
	}
	select {
	case mm.samples <- sample:
	default:
		mm.log.Debug("Monitoring sample lost")
	}
}

// Run keeps the latest system sample until the context is cancelled.
func (mm *MonitoringManager) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			mm.log.Debug("Context done, stopping monitoring manager")
			return nil
		case sample := <-mm.samples:
			mm.mu.Lock()
			mm.latest = sample
			mm.mu.Unlock()
		}
	}
}

func (mm *MonitoringManager) GetLatest() MonitoringStats {
	if mm == nil {
		return MonitoringStats{}
	}
	mm.mu.RLock()
	sample := mm.latest
	censoredWords := maps.Clone(mm.censoredWords)
	mm.mu.RUnlock()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	stats := MonitoringStats{
		MessagesPosted:      atomic.LoadUint64(&mm.messagesPosted),
		MessagesCensored:    atomic.LoadUint64(&mm.messagesCensored),
		DeliveriesEnqueued:  atomic.LoadUint64(&mm.deliveriesEnqueued),
		DeliveriesDropped:   atomic.LoadUint64(&mm.deliveriesDropped),
		SinkFailures:        atomic.LoadUint64(&mm.sinkFailures),
		SearchIndexFailures: atomic.LoadUint64(&mm.searchIndexFailures),
		ProfileFallbacks:    atomic.LoadUint64(&mm.profileFallbacks),
		WorkerRestarts:      atomic.LoadUint64(&mm.workerRestarts),
		CensoredWords:       censoredWords,
		ActiveConnections:   sample.ActiveConnections,
		ActiveRooms:         sample.ActiveRooms,
		QueueSize:           sample.QueueSize,
		QueueCapacity:       sample.QueueCapacity,
		ProcessCPU:          sample.ProcessCPU,
		ProcessRAM:          sample.ProcessRAM,
		AllocMemMb:          m.Alloc / 1024 / 1024,
		NumGC:               m.NumGC,
		NumGoroutine:        runtime.NumGoroutine(),
	}
	if !sample.SampledAt.IsZero() {
		stats.SampledAt = sample.SampledAt.Format(time.RFC3339)
	}
	return stats
}
