package articles

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/kafka"
)

// BatchPublisher writes events in batches. *kafka.Producer satisfies it.
type BatchPublisher interface {
	PublishBatch(ctx context.Context, events []kafka.Event) error
}

// Publisher loads CSV article titles into Kafka as TitleEvents keyed by
// article ID.
type Publisher struct {
	producer  BatchPublisher
	batchSize int
	now       func() time.Time
	logger    *slog.Logger
}

func NewPublisher(producer BatchPublisher, batchSize int) *Publisher {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Publisher{
		producer:  producer,
		batchSize: batchSize,
		now:       time.Now,
		logger:    slog.Default().With("component", "title-publisher"),
	}
}

// PublishCSV publishes one event per non-comment record of src and returns
// how many were published. Records without an ID get a random UUID key.
func (p *Publisher) PublishCSV(ctx context.Context, src *CSVSource) (int, error) {
	batch := make([]kafka.Event, 0, p.batchSize)
	published := 0
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := p.producer.PublishBatch(ctx, batch); err != nil {
			return fmt.Errorf("publishing titles after %d events: %w", published, err)
		}
		published += len(batch)
		batch = make([]kafka.Event, 0, p.batchSize)
		return nil
	}

	err := src.Records(ctx, func(rec Record) error {
		key := rec.ID
		if key == "" {
			key = uuid.NewString()
		}
		batch = append(batch, kafka.Event{
			Key: key,
			Value: TitleEvent{
				ArticleID:   key,
				Title:       rec.Title,
				PublishedAt: p.now().UTC(),
			},
		})
		if len(batch) >= p.batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return published, err
	}
	if err := flush(); err != nil {
		return published, err
	}
	p.logger.Info("titles published", "count", published, "skipped", src.Skipped())
	return published, nil
}
