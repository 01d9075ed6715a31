package vocab

import (
	"bufio"
	"fmt"
	"io"
)

// Format renders e as "<text> : <count>".
func Format(e *WordEntry) string {
	return fmt.Sprintf("%s : %d", e.text, e.count)
}

// Lines renders each entry with Format.
func Lines(entries []*WordEntry) []string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, Format(e))
	}
	return lines
}

// Render writes one formatted line per entry to w.
func Render(w io.Writer, entries []*WordEntry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%s : %d\n", e.text, e.count); err != nil {
			return fmt.Errorf("rendering %q: %w", e.text, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing rendered entries: %w", err)
	}
	return nil
}
