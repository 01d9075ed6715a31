package vocab

// Ranked is the vocabulary in rank order. It references the aggregator's
// entries; it never copies them.
type Ranked []*WordEntry

// Less reports whether a ranks before b: higher count first, then the
// lexicographically smaller word.
func Less(a, b *WordEntry) bool {
	if a.count != b.count {
		return a.count > b.count
	}
	return a.text < b.text
}

// Rank returns a new slice holding entries in rank order. The input slice is
// left untouched. It is a top-down merge sort; recursion depth is log2 of the
// vocabulary size.
func Rank(entries []*WordEntry) Ranked {
	ranked := make(Ranked, len(entries))
	copy(ranked, entries)
	if len(ranked) < 2 {
		return ranked
	}
	buf := make([]*WordEntry, len(ranked))
	mergeSort(ranked, buf)
	return ranked
}

func mergeSort(s, buf []*WordEntry) {
	if len(s) <= 1 {
		return
	}
	mid := len(s) / 2
	mergeSort(s[:mid], buf[:mid])
	mergeSort(s[mid:], buf[mid:])
	merge(s, mid, buf)
}

// merge combines the sorted runs s[:mid] and s[mid:] using buf as scratch.
// On ties the left head wins, which keeps the merge stable.
func merge(s []*WordEntry, mid int, buf []*WordEntry) {
	copy(buf, s)
	left, right := buf[:mid], buf[mid:len(s)]
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if Less(right[j], left[i]) {
			s[k] = right[j]
			j++
		} else {
			s[k] = left[i]
			i++
		}
		k++
	}
	k += copy(s[k:], left[i:])
	copy(s[k:], right[j:])
}

// IsRanked reports whether r is in rank order.
func IsRanked(r Ranked) bool {
	for i := 1; i < len(r); i++ {
		if Less(r[i], r[i-1]) {
			return false
		}
	}
	return true
}
