// Package lines splits CSV input into logical lines.
//
// Quoting never spans lines in this dialect, so splitting happens before any
// field tokenization and is independent of quote state.
package lines

import (
	"iter"
	"strings"
)

// Split returns a sequence over the logical lines of text.
//
// Lines are separated by '\n'. A single trailing '\r' is stripped from each
// line, so "\r\n" terminated input yields the same lines as "\n" terminated
// input. A final line without a trailing newline is still yielded; empty input
// yields no lines at all.
//
// The sequence is lazy and may be ranged over any number of times.
func Split(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		rest := text
		for len(rest) > 0 {
			line := rest
			if i := strings.IndexByte(rest, '\n'); i >= 0 {
				line, rest = rest[:i], rest[i+1:]
			} else {
				rest = ""
			}
			if !yield(strings.TrimSuffix(line, "\r")) {
				return
			}
		}
	}
}

// Count reports how many lines Split yields for text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}
