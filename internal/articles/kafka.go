package articles

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/kafka"
)

// MessageReader drains a bounded range of messages. *kafka.Reader
// satisfies it.
type MessageReader interface {
	ReadAll(ctx context.Context, handler kafka.MessageHandler) (int, error)
}

// KafkaSource reads TitleEvent messages published by Publisher. Messages
// that do not decode are skipped.
type KafkaSource struct {
	reader  MessageReader
	skipped int
	logger  *slog.Logger
}

func NewKafkaSource(reader MessageReader) *KafkaSource {
	return &KafkaSource{
		reader: reader,
		logger: slog.Default().With("component", "kafka-source"),
	}
}

func (s *KafkaSource) Titles(ctx context.Context) ([]string, error) {
	var titles []string
	s.skipped = 0
	n, err := s.reader.ReadAll(ctx, func(ctx context.Context, key, value []byte) error {
		event, err := kafka.DecodeJSON[TitleEvent](value)
		if err != nil {
			s.skipped++
			return fmt.Errorf("%w: %w", apperrors.ErrMalformedRecord, err)
		}
		titles = append(titles, event.Title)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrSourceUnavailable, err)
	}
	s.logger.Info("titles loaded", "messages", n, "titles", len(titles), "skipped", s.skipped)
	return titles, nil
}

// Skipped returns how many messages the last read could not decode.
func (s *KafkaSource) Skipped() int {
	return s.skipped
}
