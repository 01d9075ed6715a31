package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func TestRunAggregatesWorstStatus(t *testing.T) {
	c := NewChecker(0)
	c.Register("postgres", PingCheck(pinger{}))
	c.Register("redis", OptionalPingCheck(pinger{err: errors.New("connection refused")}))

	report := c.Run(context.Background())
	require.Equal(t, StatusDegraded, report.Status)
	require.Equal(t, StatusUp, report.Components["postgres"].Status)
	require.Equal(t, "connection refused", report.Components["redis"].Message)
	require.NotEmpty(t, report.Components["redis"].Latency)

	c.Register("postgres", PingCheck(pinger{err: errors.New("down")}))
	require.Equal(t, StatusDown, c.Run(context.Background()).Status)
}

func TestFlag(t *testing.T) {
	var f Flag
	c := NewChecker(0)
	c.Register("vocabulary", f.Check("vocabulary"))

	rec := httptest.NewRecorder()
	c.ReadyHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	f.Set("6 words")
	require.True(t, f.Ready())

	rec = httptest.NewRecorder()
	c.ReadyHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var report Report
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	require.Equal(t, StatusUp, report.Status)
	require.Equal(t, "6 words", report.Components["vocabulary"].Message)
}

func TestLiveHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	NewChecker(0).LiveHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"alive"}`, rec.Body.String())
}
