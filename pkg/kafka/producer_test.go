package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	batches [][]kafka.Message
	err     error
	closed  bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.batches = append(w.batches, msgs)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublishBatch(t *testing.T) {
	w := &recordingWriter{}
	p := NewProducerWithWriter(w, "article-titles")

	err := p.PublishBatch(context.Background(), []Event{
		{Key: "a1", Value: map[string]string{"title": "Cats Are Great"}},
		{Key: "a2", Value: map[string]string{"title": "dogs are loyal"}},
	})
	require.NoError(t, err)
	require.Len(t, w.batches, 1)
	require.Len(t, w.batches[0], 2)
	require.Equal(t, "a1", string(w.batches[0][0].Key))
	require.JSONEq(t, `{"title":"Cats Are Great"}`, string(w.batches[0][0].Value))

	require.NoError(t, p.Close())
	require.True(t, w.closed)
}

func TestPublishEmptyBatchIsNoop(t *testing.T) {
	w := &recordingWriter{}
	require.NoError(t, NewProducerWithWriter(w, "t").PublishBatch(context.Background(), nil))
	require.Empty(t, w.batches)
}

func TestPublishErrors(t *testing.T) {
	broker := errors.New("broker down")
	p := NewProducerWithWriter(&recordingWriter{err: broker}, "t")
	require.ErrorIs(t, p.Publish(context.Background(), Event{Key: "k", Value: 1}), broker)

	err := NewProducerWithWriter(&recordingWriter{}, "t").Publish(context.Background(), Event{Value: make(chan int)})
	require.ErrorContains(t, err, "marshaling event value")
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
	}
	got, err := DecodeJSON[payload]([]byte(`{"title":"x"}`))
	require.NoError(t, err)
	require.Equal(t, "x", got.Title)

	_, err = DecodeJSON[payload]([]byte(`not json`))
	require.Error(t, err)
}
