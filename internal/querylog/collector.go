// Package querylog publishes one event per threshold query to Kafka. Events
// are buffered and written in batches off the request path.
package querylog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/kafka"
)

type EventType string

const (
	EventThreshold   EventType = "threshold"
	EventInvalidRank EventType = "invalid_rank"
)

type Event struct {
	Type      EventType `json:"type"`
	N         int       `json:"n"`
	Threshold int       `json:"threshold,omitempty"`
	Returned  int       `json:"returned"`
	CacheHit  bool      `json:"cache_hit"`
	LatencyMs int64     `json:"latency_ms"`
	Checksum  string    `json:"checksum"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// BatchPublisher is satisfied by *kafka.Producer.
type BatchPublisher interface {
	PublishBatch(ctx context.Context, events []kafka.Event) error
}

// Collector buffers events in a channel and flushes them when batchSize is
// reached or every flushInterval, whichever comes first.
type Collector struct {
	producer      BatchPublisher
	events        chan Event
	batchSize     int
	flushInterval time.Duration
	logger        *slog.Logger

	mu      sync.RWMutex
	closed  bool
	stop    chan struct{}
	done    chan struct{}
	started bool
}

func NewCollector(producer BatchPublisher, bufferSize, batchSize int, flushInterval time.Duration) *Collector {
	if bufferSize <= 0 {
		bufferSize = 10000
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	if flushInterval <= 0 {
		flushInterval = 5 * time.Second
	}
	return &Collector{
		producer:      producer,
		events:        make(chan Event, bufferSize),
		batchSize:     batchSize,
		flushInterval: flushInterval,
		logger:        slog.Default().With("component", "query-log"),
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// Start runs the flush loop until Close is called or ctx is cancelled. The
// loop flushes what it has buffered before it exits; events tracked after
// that are flushed by Close.
func (c *Collector) Start(ctx context.Context) {
	c.mu.Lock()
	c.started = true
	c.mu.Unlock()

	go func() {
		defer close(c.done)
		ticker := time.NewTicker(c.flushInterval)
		defer ticker.Stop()

		batch := make([]kafka.Event, 0, c.batchSize)
		for {
			select {
			case ev := <-c.events:
				batch = append(batch, toKafka(ev))
				if len(batch) >= c.batchSize {
					c.publish(ctx, batch)
					batch = make([]kafka.Event, 0, c.batchSize)
				}
			case <-ticker.C:
				c.publish(ctx, batch)
				batch = make([]kafka.Event, 0, c.batchSize)
			case <-c.stop:
				c.drain(batch)
				return
			case <-ctx.Done():
				c.drain(batch)
				return
			}
		}
	}()
	c.logger.Info("query log started",
		"buffer_size", cap(c.events),
		"batch_size", c.batchSize,
		"flush_interval", c.flushInterval,
	)
}

// Track queues ev without blocking. It drops ev when the buffer is full or
// the collector is closed.
func (c *Collector) Track(ev Event) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		c.logger.Debug("query event dropped (collector closed)")
		return
	}
	select {
	case c.events <- ev:
	default:
		c.logger.Warn("query event dropped (buffer full)")
	}
}

// Close stops accepting events, waits for the flush loop and publishes any
// events still buffered. It is safe to call more than once and concurrently
// with Track.
func (c *Collector) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	started := c.started
	close(c.stop)
	c.mu.Unlock()

	if started {
		<-c.done
	}
	c.drain(nil)
}

// drain appends every queued event to batch and publishes the result in
// batchSize chunks under a short deadline.
func (c *Collector) drain(batch []kafka.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		select {
		case ev := <-c.events:
			batch = append(batch, toKafka(ev))
			if len(batch) >= c.batchSize {
				c.publish(ctx, batch)
				batch = nil
			}
		default:
			c.publish(ctx, batch)
			return
		}
	}
}

func (c *Collector) publish(ctx context.Context, batch []kafka.Event) {
	if len(batch) == 0 {
		return
	}
	if err := c.producer.PublishBatch(ctx, batch); err != nil {
		c.logger.Error("query log flush failed", "batch_size", len(batch), "error", err)
	}
}

func toKafka(ev Event) kafka.Event {
	return kafka.Event{Key: ev.Checksum, Value: ev}
}
