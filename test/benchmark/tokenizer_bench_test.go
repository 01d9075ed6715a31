// Package benchmark measures the throughput and allocation behaviour of the
// tokenizer and the vocabulary pipeline.
package benchmark

import (
	"strings"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/headline-analytics/internal/articles/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/config"
)

var sampleTitles = map[string]string{
	"short":  "Cats Are Great",
	"medium": "BREAKING: Officials confirm the election results, citing \"unprecedented\" turnout (video)",
	"long": strings.Repeat(`Report: Senators weigh in on the new trade deal; analysts say markets
        could react sharply, with currency traders watching the Fed's next move. `, 10),
}

func BenchmarkTokenize(b *testing.B) {
	tok := tokenizer.New(config.TokenizerConfig{MinLength: 3})
	for name, title := range sampleTitles {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(title)))
			for i := 0; i < b.N; i++ {
				_ = tok.Tokenize(title)
			}
		})
	}
}
