package csv

import (
	"github.com/shapestone/fastcsv/internal/lines"
	"github.com/shapestone/fastcsv/internal/parser"
)

// sniffLines bounds how much of a sample SniffDelimiter looks at.
const sniffLines = 20

// SniffCandidates are the delimiters SniffDelimiter chooses between, in
// tie-breaking order.
var SniffCandidates = []rune{',', '\t', ';', '|'}

// SniffDelimiter guesses the delimiter of sample.
//
// Each candidate is scored on the non-empty lines among the first few: a
// candidate that splits every line into the same number of fields scores ten
// times its separator count, otherwise it scores the first line's count.
// Quotes and escape markers are honored, so a comma inside "a,b" does not
// count. Returns ',' when nothing scores.
func SniffDelimiter(sample string) rune {
	best, bestScore := ',', 0
	for _, delim := range SniffCandidates {
		if score := sniffScore(sample, delim); score > bestScore {
			best, bestScore = delim, score
		}
	}
	return best
}

func sniffScore(sample string, delim rune) int {
	p := parser.NewLineParser(delim)

	counts := make([]int, 0, sniffLines)
	for line := range lines.Split(sample) {
		if line == "" {
			continue
		}
		counts = append(counts, len(p.ParseLine(line))-1)
		if len(counts) == sniffLines {
			break
		}
	}
	if len(counts) == 0 || counts[0] == 0 {
		return 0
	}

	for _, c := range counts[1:] {
		if c != counts[0] {
			return counts[0]
		}
	}
	return counts[0] * 10
}
