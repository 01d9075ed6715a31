package prompt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/errors"
)

func TestDialogue(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(strings.NewReader("news.csv\r\n 2 \n"), &out)

	path, err := s.AskPath()
	require.NoError(t, err)
	require.Equal(t, "news.csv", path)

	n, err := s.AskRank()
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, "File: N: ", out.String())
}

func TestAskRankUnreadable(t *testing.T) {
	for _, input := range []string{"two\n", "\n", "", "1.5\n"} {
		t.Run(fmt.Sprintf("%q", input), func(t *testing.T) {
			_, err := NewSession(strings.NewReader(input), io.Discard).AskRank()
			require.ErrorIs(t, err, apperrors.ErrInvalidInput)
			require.Equal(t, "ERROR: Could not read N", ErrorLine(err, 6))
		})
	}
}

func TestAskEOF(t *testing.T) {
	_, err := NewSession(strings.NewReader(""), io.Discard).AskPath()
	require.ErrorIs(t, err, io.EOF)
}

func TestErrorLine(t *testing.T) {
	rankErr := apperrors.New(apperrors.ErrInvalidRank, http.StatusBadRequest, "rank 100 out of range [0, 5]")
	require.Equal(t, "ERROR: N must be between 0 and 5", ErrorLine(rankErr, 6))
	require.Equal(t, "ERROR: no words were counted, so no N is valid", ErrorLine(rankErr, 0))

	openErr := fmt.Errorf("reading titles: %w",
		apperrors.New(apperrors.ErrSourceUnavailable, http.StatusServiceUnavailable, "Could not open file x.csv"))
	require.Equal(t, "ERROR: Could not open file x.csv", ErrorLine(openErr, 0))

	require.Equal(t, "ERROR: disk on fire", ErrorLine(errors.New("disk on fire"), 0))
}

func TestFail(t *testing.T) {
	var out bytes.Buffer
	NewSession(strings.NewReader(""), &out).Fail(apperrors.ErrInvalidRank, 3)
	require.Equal(t, "ERROR: N must be between 0 and 2\n", out.String())
}
