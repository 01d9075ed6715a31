package articles

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/errors"
)

// StringQuerier runs a query and returns the first column of each row.
// *postgres.Client satisfies it.
type StringQuerier interface {
	QueryStrings(ctx context.Context, query string, args ...any) ([]string, error)
}

// PostgresSource reads titles with a single SQL query, for example
//
//	SELECT title FROM articles ORDER BY id
type PostgresSource struct {
	db     StringQuerier
	query  string
	logger *slog.Logger
}

func NewPostgresSource(db StringQuerier, query string) *PostgresSource {
	return &PostgresSource{
		db:     db,
		query:  query,
		logger: slog.Default().With("component", "postgres-source"),
	}
}

func (s *PostgresSource) Titles(ctx context.Context) ([]string, error) {
	titles, err := s.db.QueryStrings(ctx, s.query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrSourceUnavailable, err)
	}
	s.logger.Info("titles loaded", "count", len(titles))
	return titles, nil
}

// Ping checks the connection when the underlying querier supports it.
func (s *PostgresSource) Ping(ctx context.Context) error {
	if p, ok := s.db.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}
