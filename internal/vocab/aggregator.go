package vocab

// Aggregator builds the word frequency table. The lifecycle is
// NewAggregator, any number of Observe calls, then Finalize; the entries are
// read-only after Finalize.
type Aggregator struct {
	index   map[string]*WordEntry
	entries []*WordEntry
	titles  int
	tokens  int
	final   bool
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		index:   make(map[string]*WordEntry),
		entries: make([]*WordEntry, 0, 1024),
	}
}

// Observe counts every token of one title. Tokens are compared by exact
// string equality; normalisation happens upstream. Observe panics if called
// after Finalize.
func (a *Aggregator) Observe(tokens []string) {
	if a.final {
		panic("vocab: Observe called after Finalize")
	}
	a.titles++
	for _, token := range tokens {
		a.tokens++
		if e, ok := a.index[token]; ok {
			e.incr()
			continue
		}
		e := newEntry(token)
		a.index[token] = e
		a.entries = append(a.entries, e)
	}
}

// Finalize closes the aggregator and returns its entries in first-seen
// order. The returned slice is capped, so appending to it never touches the
// aggregator's storage.
func (a *Aggregator) Finalize() []*WordEntry {
	a.final = true
	return a.entries[:len(a.entries):len(a.entries)]
}

// Lookup returns the entry for text, if observed.
func (a *Aggregator) Lookup(text string) (*WordEntry, bool) {
	e, ok := a.index[text]
	return e, ok
}

// Len returns the number of distinct words observed so far.
func (a *Aggregator) Len() int { return len(a.entries) }

// Titles returns the number of Observe calls.
func (a *Aggregator) Titles() int { return a.titles }

// Tokens returns the total number of tokens observed.
func (a *Aggregator) Tokens() int { return a.tokens }
