// Package vocab implements the title vocabulary engine: an aggregator that
// counts normalised words, a ranker that orders them by count descending and
// word ascending, and a selector that answers rank-threshold queries.
package vocab

import "fmt"

// WordEntry is one distinct word and the number of times it was observed.
// Only the Aggregator that created an entry changes its count.
type WordEntry struct {
	text  string
	count int
}

func newEntry(text string) *WordEntry {
	return &WordEntry{text: text, count: 1}
}

// Text returns the normalised word.
func (e *WordEntry) Text() string { return e.text }

// Count returns the number of occurrences observed.
func (e *WordEntry) Count() int { return e.count }

func (e *WordEntry) incr() { e.count++ }

func (e *WordEntry) String() string {
	return fmt.Sprintf("%s, %d", e.text, e.count)
}
