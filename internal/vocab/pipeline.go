package vocab

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/tracing"
)

// Source supplies raw title strings in dataset order.
type Source interface {
	Titles(ctx context.Context) ([]string, error)
}

// Tokenizer turns one raw title into normalised tokens.
type Tokenizer interface {
	Tokenize(title string) []string
}

// skipReporter is implemented by sources that drop malformed records.
type skipReporter interface {
	Skipped() int
}

// Vocabulary is the finished, read-only product of Build. It is safe for
// concurrent readers: the ranked order is unexported and every accessor
// returns a fresh slice.
type Vocabulary struct {
	ranked   Ranked
	Titles   int
	Tokens   int
	Checksum string
	BuiltAt  time.Time
}

// Len returns the number of distinct words.
func (v *Vocabulary) Len() int { return len(v.ranked) }

// Ranked returns a copy of the whole vocabulary in rank order.
func (v *Vocabulary) Ranked() Ranked {
	return v.Top(len(v.ranked))
}

// Top returns a copy of the first limit ranked entries. limit is clamped to
// [0, Len()].
func (v *Vocabulary) Top(limit int) []*WordEntry {
	limit = max(0, min(limit, len(v.ranked)))
	out := make([]*WordEntry, limit)
	copy(out, v.ranked)
	return out
}

// Select runs the threshold query against the ranked vocabulary. The result
// is a copy; writing to it does not affect v.
func (v *Vocabulary) Select(n int) ([]*WordEntry, error) {
	selected, err := Select(v.ranked, n)
	if err != nil {
		return nil, err
	}
	return append([]*WordEntry(nil), selected...), nil
}

// Threshold returns the count at rank n.
func (v *Vocabulary) Threshold(n int) (int, error) {
	return Threshold(v.ranked, n)
}

// Option configures Build.
type Option func(*buildOptions)

type buildOptions struct {
	metrics  *metrics.Metrics
	logger   *slog.Logger
	logSpans bool
}

// WithMetrics records pipeline counters on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *buildOptions) { o.metrics = m }
}

// WithLogger replaces the builder's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *buildOptions) { o.logger = logger }
}

// WithSpanLogging writes the phase span tree at debug level when the build
// finishes.
func WithSpanLogging(enabled bool) Option {
	return func(o *buildOptions) { o.logSpans = enabled }
}

// Build reads every title from src, tokenises it, aggregates the counts and
// ranks the vocabulary. The phases run strictly one after another.
func Build(ctx context.Context, src Source, tok Tokenizer, opts ...Option) (*Vocabulary, error) {
	o := buildOptions{logger: slog.Default().With("component", "vocab-builder")}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, root := tracing.Start(ctx, "vocab.build")
	defer func() {
		root.End()
		if o.logSpans {
			root.Log(o.logger)
		}
	}()

	_, readSpan := tracing.Start(ctx, "read")
	titles, err := src.Titles(ctx)
	readSpan.SetAttr("titles", len(titles))
	readSpan.End()
	if err != nil {
		return nil, fmt.Errorf("reading titles: %w", err)
	}
	if sr, ok := src.(skipReporter); ok && o.metrics != nil {
		o.metrics.RecordsSkippedTotal.Add(float64(sr.Skipped()))
	}

	_, aggSpan := tracing.Start(ctx, "aggregate")
	agg := NewAggregator()
	for _, title := range titles {
		agg.Observe(tok.Tokenize(title))
	}
	entries := agg.Finalize()
	aggSpan.SetAttr("tokens", agg.Tokens())
	aggSpan.SetAttr("distinct", agg.Len())
	aggSpan.End()

	_, rankSpan := tracing.Start(ctx, "rank")
	start := time.Now()
	ranked := Rank(entries)
	rankSpan.End()

	if o.metrics != nil {
		o.metrics.TitlesObservedTotal.Add(float64(agg.Titles()))
		o.metrics.TokensObservedTotal.Add(float64(agg.Tokens()))
		o.metrics.VocabularySize.Set(float64(len(ranked)))
		o.metrics.RankDuration.Observe(time.Since(start).Seconds())
	}

	v := &Vocabulary{
		ranked:   ranked,
		Titles:   agg.Titles(),
		Tokens:   agg.Tokens(),
		Checksum: Checksum(ranked),
		BuiltAt:  time.Now().UTC(),
	}
	o.logger.Info("vocabulary built",
		"titles", v.Titles,
		"tokens", v.Tokens,
		"distinct_words", v.Len(),
		"trace_id", root.TraceID,
	)
	return v, nil
}

// Checksum fingerprints a ranked vocabulary. Two vocabularies with the same
// words and counts in the same order share a checksum.
func Checksum(ranked Ranked) string {
	h := sha256.New()
	for _, e := range ranked {
		h.Write([]byte(e.text))
		h.Write([]byte{0})
		h.Write([]byte(strconv.Itoa(e.count)))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
