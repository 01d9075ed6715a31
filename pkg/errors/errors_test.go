package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppErrorWrapsSentinel(t *testing.T) {
	err := Newf(ErrInvalidRank, http.StatusBadRequest, "rank %d out of range [0, %d)", 9, 6)

	require.True(t, errors.Is(err, ErrInvalidRank))
	require.Equal(t, "invalid rank index: rank 9 out of range [0, 6)", err.Error())
	require.Equal(t, "rank 9 out of range [0, 6)", Message(err))
}

func TestHTTPStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(ErrInvalidInput, http.StatusTeapot, "custom"), http.StatusTeapot},
		{fmt.Errorf("select: %w", ErrInvalidRank), http.StatusBadRequest},
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrMalformedRecord, http.StatusUnprocessableEntity},
		{ErrNotReady, http.StatusServiceUnavailable},
		{fmt.Errorf("open: %w", ErrSourceUnavailable), http.StatusServiceUnavailable},
		{ErrTimeout, http.StatusGatewayTimeout},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, HTTPStatusCode(tt.err), tt.err.Error())
	}
}

func TestMessageFallsBackToError(t *testing.T) {
	require.Equal(t, "boom", Message(errors.New("boom")))
}
