// Package kafka provides Kafka producer and reader clients backed by
// segmentio/kafka-go. The producer serialises events as JSON; the reader
// drains a partition up to its current end and hands each message to a
// MessageHandler.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/config"
)

// ErrReadTimeout is returned when a fetch waits longer than the configured
// read timeout.
var ErrReadTimeout = errors.New("kafka read timed out")

// MessageHandler is a callback invoked for each Kafka message.
type MessageHandler func(ctx context.Context, key []byte, value []byte) error

// Reader reads one topic partition from the first retained offset.
type Reader struct {
	reader  *kafka.Reader
	timeout time.Duration
	logger  *slog.Logger
}

// NewReader creates a Reader for cfg.Topic and cfg.Partition. It does not
// join a consumer group and commits nothing.
func NewReader(cfg config.KafkaConfig) *Reader {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		Partition:   cfg.Partition,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.FirstOffset,
	})
	timeout := cfg.ReadTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Reader{
		reader:  r,
		timeout: timeout,
		logger:  slog.Default().With("component", "kafka-reader", "topic", cfg.Topic, "partition", cfg.Partition),
	}
}

// ReadAll delivers every message between the first offset and the
// high-water mark seen when ReadAll starts. Messages produced afterwards are
// not read. A handler error is logged and the message skipped. It returns the
// number of messages fetched.
func (r *Reader) ReadAll(ctx context.Context, handler MessageHandler) (int, error) {
	lag, err := r.reader.ReadLag(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading partition lag: %w", err)
	}
	r.logger.Info("draining partition", "messages", lag)

	var fetched int
	for int64(fetched) < lag {
		fetchCtx, cancel := context.WithTimeout(ctx, r.timeout)
		msg, err := r.reader.FetchMessage(fetchCtx)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return fetched, ctx.Err()
			}
			if errors.Is(err, context.DeadlineExceeded) {
				return fetched, fmt.Errorf("%w after %d of %d messages", ErrReadTimeout, fetched, lag)
			}
			return fetched, fmt.Errorf("fetching message: %w", err)
		}
		fetched++
		r.logger.Debug("message received",
			"offset", msg.Offset,
			"key", string(msg.Key),
			"value_size", len(msg.Value),
		)
		if err := handler(ctx, msg.Key, msg.Value); err != nil {
			r.logger.Warn("skipping message",
				"offset", msg.Offset,
				"error", err,
			)
		}
		if msg.Offset+1 >= msg.HighWaterMark && int64(fetched) < lag {
			// Retention removed messages since the lag was read.
			break
		}
	}
	return fetched, nil
}

// Close closes the underlying Kafka reader.
func (r *Reader) Close() error {
	return r.reader.Close()
}

// DecodeJSON is a generic helper that unmarshals a Kafka message value into T.
func DecodeJSON[T any](value []byte) (T, error) {
	var result T
	if err := json.Unmarshal(value, &result); err != nil {
		return result, fmt.Errorf("decoding kafka message: %w", err)
	}
	return result, nil
}
