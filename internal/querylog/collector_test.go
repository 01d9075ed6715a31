package querylog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/kafka"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu      sync.Mutex
	batches [][]kafka.Event
	err     error
}

func (r *recorder) PublishBatch(_ context.Context, events []kafka.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, events)
	return r.err
}

func (r *recorder) total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, b := range r.batches {
		n += len(b)
	}
	return n
}

func TestFlushOnBatchSize(t *testing.T) {
	rec := &recorder{}
	c := NewCollector(rec, 10, 2, time.Hour)
	c.Start(context.Background())

	c.Track(Event{Type: EventThreshold, N: 0, Checksum: "abc"})
	c.Track(Event{Type: EventThreshold, N: 1, Checksum: "abc"})
	require.Eventually(t, func() bool { return rec.total() == 2 }, time.Second, 5*time.Millisecond)

	c.Close()
	require.Len(t, rec.batches, 1)
	require.Equal(t, "abc", rec.batches[0][0].Key)
	require.Equal(t, 1, rec.batches[0][1].Value.(Event).N)
}

func TestFlushOnInterval(t *testing.T) {
	rec := &recorder{}
	c := NewCollector(rec, 10, 100, 10*time.Millisecond)
	c.Start(context.Background())
	defer c.Close()

	c.Track(Event{Type: EventInvalidRank, N: 99})
	require.Eventually(t, func() bool { return rec.total() == 1 }, time.Second, 5*time.Millisecond)
}

func TestCloseFlushesRemaining(t *testing.T) {
	rec := &recorder{}
	c := NewCollector(rec, 10, 100, time.Hour)
	c.Start(context.Background())
	for i := range 5 {
		c.Track(Event{N: i})
	}
	c.Close()
	require.Equal(t, 5, rec.total())
}

func TestCancelFlushesRemaining(t *testing.T) {
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	c := NewCollector(rec, 10, 100, time.Hour)
	c.Start(ctx)
	c.Track(Event{N: 1})
	c.Track(Event{N: 2})
	cancel()
	<-c.done
	require.Equal(t, 2, rec.total())
}

func TestPublishErrorsAreLogged(t *testing.T) {
	rec := &recorder{err: errors.New("broker down")}
	c := NewCollector(rec, 10, 1, time.Hour)
	c.Start(context.Background())
	c.Track(Event{N: 1})
	c.Track(Event{N: 2})
	c.Close()
	require.Equal(t, 2, rec.total())
}

func TestTrackDropsWhenFull(t *testing.T) {
	c := NewCollector(&recorder{}, 1, 100, time.Hour)
	c.Track(Event{N: 1})
	c.Track(Event{N: 2})
	require.Len(t, c.events, 1)
}

func TestCloseFlushesEventsTrackedAfterCancel(t *testing.T) {
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	c := NewCollector(rec, 10, 100, time.Hour)
	c.Start(ctx)
	cancel()
	<-c.done

	c.Track(Event{Type: EventThreshold, N: 3})
	c.Close()
	require.Equal(t, 1, rec.total())
}

func TestTrackAfterCloseIsDropped(t *testing.T) {
	rec := &recorder{}
	c := NewCollector(rec, 10, 100, time.Hour)
	c.Start(context.Background())
	c.Close()

	require.NotPanics(t, func() { c.Track(Event{N: 1}) })
	require.NotPanics(t, c.Close)
	require.Equal(t, 0, rec.total())
}

func TestConcurrentTrackAndClose(t *testing.T) {
	rec := &recorder{}
	c := NewCollector(rec, 1000, 10, time.Hour)
	c.Start(context.Background())

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 50 {
				c.Track(Event{N: i*100 + j})
			}
		}()
	}
	c.Close()
	wg.Wait()
	require.LessOrEqual(t, rec.total(), 200)
}

func TestCloseWithoutStart(t *testing.T) {
	rec := &recorder{}
	c := NewCollector(rec, 10, 100, time.Hour)
	c.Track(Event{N: 1})
	c.Close()
	require.Equal(t, 1, rec.total())
}
