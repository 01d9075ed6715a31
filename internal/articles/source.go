package articles

import (
	"context"
	"fmt"

	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/postgres"
)

// Source supplies raw titles in dataset order.
type Source interface {
	Titles(ctx context.Context) ([]string, error)
}

// Open builds the source named by cfg.Dataset.Source. The returned close
// func releases any connection the source holds and is never nil.
func Open(ctx context.Context, cfg *config.Config) (Source, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Dataset.Source {
	case config.SourceCSV:
		if cfg.Dataset.Path == "" {
			return nil, noop, fmt.Errorf("dataset.path is required for the csv source")
		}
		return NewCSVFile(cfg.Dataset.Path, cfg.Dataset), noop, nil
	case config.SourcePostgres:
		db, err := postgres.New(ctx, cfg.Postgres, cfg.Retry)
		if err != nil {
			return nil, noop, fmt.Errorf("connecting to postgres: %w", err)
		}
		return NewPostgresSource(db, cfg.Dataset.Query), db.Close, nil
	case config.SourceKafka:
		reader := kafka.NewReader(cfg.Kafka)
		return NewKafkaSource(reader), reader.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown dataset source %q", cfg.Dataset.Source)
	}
}
