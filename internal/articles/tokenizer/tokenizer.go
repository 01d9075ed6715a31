// Package tokenizer normalises article titles into word tokens. It replaces
// ASCII punctuation with whitespace, lower-cases the text, splits on
// whitespace and drops tokens shorter than a minimum length.
package tokenizer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/config"
)

// Punctuation is the ASCII punctuation set treated as word separators.
const Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// DefaultMinLength discards tokens of two characters or fewer.
const DefaultMinLength = 3

// Tokenizer holds the normalisation settings.
type Tokenizer struct {
	minLength int
}

// New creates a Tokenizer from cfg. A non-positive MinLength falls back to
// DefaultMinLength.
func New(cfg config.TokenizerConfig) *Tokenizer {
	minLength := cfg.MinLength
	if minLength <= 0 {
		minLength = DefaultMinLength
	}
	return &Tokenizer{minLength: minLength}
}

// Tokenize breaks title into lower-cased tokens of at least the minimum
// length, measured in characters.
func (t *Tokenizer) Tokenize(title string) []string {
	words := strings.FieldsFunc(strings.ToLower(title), isSeparator)
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if utf8.RuneCountInString(word) < t.minLength {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || (r < utf8.RuneSelf && strings.ContainsRune(Punctuation, r))
}
