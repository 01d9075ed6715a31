package vocab

// WordCount is the JSON form of a WordEntry.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Answer is a threshold query result ready to be served or cached.
type Answer struct {
	N         int         `json:"n"`
	Threshold int         `json:"threshold"`
	Count     int         `json:"count"`
	Results   []WordCount `json:"results"`
	Lines     []string    `json:"lines"`
}

// Counts converts entries to their JSON form.
func Counts(entries []*WordEntry) []WordCount {
	out := make([]WordCount, len(entries))
	for i, e := range entries {
		out[i] = WordCount{Word: e.text, Count: e.count}
	}
	return out
}

// Answer runs Select for rank n and packages the result.
func (v *Vocabulary) Answer(n int) (*Answer, error) {
	selected, err := v.Select(n)
	if err != nil {
		return nil, err
	}
	return &Answer{
		N:         n,
		Threshold: v.ranked[n].count,
		Count:     len(selected),
		Results:   Counts(selected),
		Lines:     Lines(selected),
	}, nil
}
