package vocab

import (
	"net/http"
	"sort"

	apperrors "github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/errors"
)

// Threshold returns the count of the entry at rank n. It fails with
// ErrInvalidRank when n is not a valid index into ranked.
func Threshold(ranked Ranked, n int) (int, error) {
	if len(ranked) == 0 {
		return 0, apperrors.New(apperrors.ErrInvalidRank, http.StatusBadRequest,
			"vocabulary is empty, no rank is valid")
	}
	if n < 0 || n >= len(ranked) {
		return 0, apperrors.Newf(apperrors.ErrInvalidRank, http.StatusBadRequest,
			"rank %d out of range [0, %d]", n, len(ranked)-1)
	}
	return ranked[n].count, nil
}

// Select returns every entry whose count is at least the count at rank n,
// in rank order. Because ranked is sorted by count, the result is the
// prefix ranked[:m]; it is capped so callers cannot append into ranked.
func Select(ranked Ranked, n int) ([]*WordEntry, error) {
	threshold, err := Threshold(ranked, n)
	if err != nil {
		return nil, err
	}
	m := sort.Search(len(ranked), func(i int) bool {
		return ranked[i].count < threshold
	})
	return ranked[:m:m], nil
}
