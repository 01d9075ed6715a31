package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/config"
)

func TestTokenize(t *testing.T) {
	tok := New(config.TokenizerConfig{MinLength: 3})

	tests := []struct {
		name  string
		title string
		want  []string
	}{
		{"scenario", "Cats Are Great", []string{"cats", "are", "great"}},
		{"short words dropped", "Is it ON or NOT", []string{"not"}},
		{"punctuation splits", "Trump's e-mail: 'leaked'!", []string{"trump", "mail", "leaked"}},
		{"every ascii mark", "one" + Punctuation + "two", []string{"one", "two"}},
		{"whitespace runs", "  tabs\tand\nnewlines  ", []string{"tabs", "and", "newlines"}},
		{"digits kept", "Top 100 stories of 2016", []string{"top", "100", "stories", "2016"}},
		{"empty", "", []string{}},
		{"only punctuation", "?!...", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tok.Tokenize(tt.title))
		})
	}
}

func TestTokenizeCountsRunes(t *testing.T) {
	tok := New(config.TokenizerConfig{MinLength: 3})
	// "né" is two characters but three bytes.
	require.Equal(t, []string{"café"}, tok.Tokenize("né café"))
}

func TestTokenizeNonASCIIPunctuationKept(t *testing.T) {
	tok := New(config.TokenizerConfig{MinLength: 3})
	require.Equal(t, []string{"“fake”", "news"}, tok.Tokenize("“Fake” news"))
}

func TestMinLength(t *testing.T) {
	require.Equal(t, []string{"a", "bb", "ccc"}, New(config.TokenizerConfig{MinLength: 1}).Tokenize("a bb ccc"))
	require.Equal(t, []string{"ccc"}, New(config.TokenizerConfig{}).Tokenize("a bb ccc"))
}
