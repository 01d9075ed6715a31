package vocab

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/errors"
)

func TestVocabularyAnswer(t *testing.T) {
	v, err := Build(context.Background(),
		staticSource{titles: []string{"cats are great", "cats are cute", "dogs are loyal"}},
		lowerFields{})
	require.NoError(t, err)

	answer, err := v.Answer(1)
	require.NoError(t, err)
	require.Equal(t, &Answer{
		N:         1,
		Threshold: 2,
		Count:     2,
		Results:   []WordCount{{Word: "are", Count: 3}, {Word: "cats", Count: 2}},
		Lines:     []string{"are : 3", "cats : 2"},
	}, answer)

	_, err = v.Answer(6)
	require.ErrorIs(t, err, apperrors.ErrInvalidRank)
}

func TestVocabularyAccessorsCopy(t *testing.T) {
	v, err := Build(context.Background(),
		staticSource{titles: []string{"cats are great", "cats are cute", "dogs are loyal"}},
		lowerFields{})
	require.NoError(t, err)
	before := pairs(v.Ranked())

	ranked := v.Ranked()
	ranked[0], ranked[5] = ranked[5], ranked[0]

	top := v.Top(2)
	top[0] = nil

	selected, err := v.Select(1)
	require.NoError(t, err)
	selected[1] = selected[0]

	require.Equal(t, before, pairs(v.Ranked()))
	require.Len(t, v.Top(100), 6)
	require.Empty(t, v.Top(-1))
}
