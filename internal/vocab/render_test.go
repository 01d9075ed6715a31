package vocab

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	ranked := Rank(aggregate(sampleTokens).Finalize())
	result, err := Select(ranked, 1)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, result))
	require.Equal(t, "are : 3\ncats : 2\n", buf.String())
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, nil))
	require.Zero(t, buf.Len())
	require.Empty(t, Lines(nil))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestRenderWriteError(t *testing.T) {
	entries := []*WordEntry{{text: "news", count: 1}}
	err := Render(failingWriter{}, entries)
	require.ErrorContains(t, err, "closed pipe")
}

func TestFormat(t *testing.T) {
	require.Equal(t, "hillary : 12", Format(&WordEntry{text: "hillary", count: 12}))
}
