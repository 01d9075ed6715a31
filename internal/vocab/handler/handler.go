// Package handler serves threshold queries and vocabulary statistics over
// HTTP.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/Adithya-Monish-Kumar-K/headline-analytics/internal/querylog"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/internal/vocab"
	apperrors "github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/middleware"
)

const (
	defaultVocabularyLimit = 50
	maxVocabularyLimit     = 1000
)

// AnswerCache is satisfied by *cache.ThresholdCache.
type AnswerCache interface {
	GetOrCompute(ctx context.Context, checksum string, n int, compute func() (*vocab.Answer, error)) (*vocab.Answer, bool, error)
	Invalidate(ctx context.Context) (int64, error)
	Stats() (hits, misses int64)
}

// Tracker is satisfied by *querylog.Collector.
type Tracker interface {
	Track(ev querylog.Event)
}

type Handler struct {
	vocabulary atomic.Pointer[vocab.Vocabulary]
	cache      AnswerCache
	tracker    Tracker
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// New creates a Handler. cache, tracker and m may be nil. Until
// SetVocabulary is called every query answers 503.
func New(cache AnswerCache, tracker Tracker, m *metrics.Metrics) *Handler {
	return &Handler{
		cache:   cache,
		tracker: tracker,
		metrics: m,
		logger:  slog.Default().With("component", "vocab-handler"),
	}
}

// SetVocabulary publishes v to readers.
func (h *Handler) SetVocabulary(v *vocab.Vocabulary) {
	h.vocabulary.Store(v)
}

// Routes registers the API on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/threshold", h.Threshold)
	mux.HandleFunc("GET /api/v1/vocabulary", h.Vocabulary)
	mux.HandleFunc("GET /api/v1/stats", h.Stats)
	mux.HandleFunc("POST /api/v1/cache/invalidate", h.CacheInvalidate)
	mux.HandleFunc("GET /health", h.Health)
}

func (h *Handler) Threshold(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	v, err := h.current()
	if err != nil {
		h.writeErr(w, err)
		return
	}

	raw := r.URL.Query().Get("n")
	n, err := strconv.Atoi(raw)
	if err != nil {
		h.record(metrics.ResultInvalid, 0)
		h.writeError(w, http.StatusBadRequest, "query parameter 'n' must be an integer")
		return
	}

	compute := func() (*vocab.Answer, error) { return v.Answer(n) }
	var (
		answer *vocab.Answer
		cached bool
	)
	if h.cache != nil {
		answer, cached, err = h.cache.GetOrCompute(ctx, v.Checksum, n, compute)
	} else {
		answer, err = compute()
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidRank) {
			h.record(metrics.ResultInvalid, 0)
			h.track(ctx, querylog.Event{
				Type:      querylog.EventInvalidRank,
				N:         n,
				Checksum:  v.Checksum,
				LatencyMs: time.Since(start).Milliseconds(),
			})
		} else {
			h.record(metrics.ResultError, 0)
			log.Error("threshold query failed", "n", n, "error", err)
		}
		h.writeErr(w, err)
		return
	}

	h.record(metrics.ResultOK, answer.Count)
	h.track(ctx, querylog.Event{
		Type:      querylog.EventThreshold,
		N:         n,
		Threshold: answer.Threshold,
		Returned:  answer.Count,
		CacheHit:  cached,
		Checksum:  v.Checksum,
		LatencyMs: time.Since(start).Milliseconds(),
	})
	log.Info("threshold query",
		"n", n,
		"threshold", answer.Threshold,
		"returned", answer.Count,
		"cache_hit", cached,
		"latency_ms", time.Since(start).Milliseconds(),
	)
	h.writeJSON(w, http.StatusOK, answer)
}

// Vocabulary returns the first limit ranked entries.
func (h *Handler) Vocabulary(w http.ResponseWriter, r *http.Request) {
	v, err := h.current()
	if err != nil {
		h.writeErr(w, err)
		return
	}

	limit := defaultVocabularyLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil || parsed < 1 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(parsed, maxVocabularyLimit)
	}
	limit = min(limit, v.Len())

	h.writeJSON(w, http.StatusOK, map[string]any{
		"total":   v.Len(),
		"limit":   limit,
		"results": vocab.Counts(v.Top(limit)),
	})
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	v, err := h.current()
	if err != nil {
		h.writeErr(w, err)
		return
	}
	body := map[string]any{
		"titles":          v.Titles,
		"tokens":          v.Tokens,
		"vocabulary_size": v.Len(),
		"checksum":        v.Checksum,
		"built_at":        v.BuiltAt.Format(time.RFC3339),
	}
	if h.cache != nil {
		hits, misses := h.cache.Stats()
		body["cache"] = map[string]int64{"hits": hits, "misses": misses}
	}
	h.writeJSON(w, http.StatusOK, body)
}

func (h *Handler) CacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeError(w, http.StatusServiceUnavailable, "caching is disabled")
		return
	}
	deleted, err := h.cache.Invalidate(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("cache invalidation failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "cache invalidation failed")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"status": "invalidated", "deleted": deleted})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) current() (*vocab.Vocabulary, error) {
	v := h.vocabulary.Load()
	if v == nil {
		return nil, apperrors.New(apperrors.ErrNotReady, http.StatusServiceUnavailable,
			"vocabulary is still being built")
	}
	return v, nil
}

func (h *Handler) record(result string, size int) {
	if h.metrics == nil {
		return
	}
	h.metrics.ThresholdQueriesTotal.WithLabelValues(result).Inc()
	if result == metrics.ResultOK {
		h.metrics.ThresholdResultSize.Observe(float64(size))
	}
}

func (h *Handler) track(ctx context.Context, ev querylog.Event) {
	if h.tracker == nil {
		return
	}
	ev.Timestamp = time.Now().UTC()
	ev.RequestID = middleware.GetRequestID(ctx)
	h.tracker.Track(ev)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeErr(w http.ResponseWriter, err error) {
	h.writeError(w, apperrors.HTTPStatusCode(err), apperrors.Message(err))
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
