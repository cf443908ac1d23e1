package tokenizer

import (
	"unicode/utf8"

	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// Source maps tokens back to the bytes of the line they were read from.
//
// shape-core decodes its input to runes, so a byte that is not valid UTF-8
// comes back in a token value as U+FFFD. Token offsets count runes; Source
// turns them into byte offsets and slices the original line, which keeps
// such bytes intact.
type Source struct {
	text  string
	ascii bool
	// offsets[i] is the byte offset of rune i; the last entry is len(text).
	offsets []int
}

// Reset points the source at a new line.
func (s *Source) Reset(text string) {
	s.text = text
	s.ascii = isASCII(text)
	s.offsets = s.offsets[:0]
	if s.ascii {
		return
	}
	// range decodes exactly as the []rune conversion inside shape-core does:
	// one rune per invalid byte.
	for i := range text {
		s.offsets = append(s.offsets, i)
	}
	s.offsets = append(s.offsets, len(text))
}

// Text returns the bytes of the line covered by tok.
func (s *Source) Text(tok *tokenizer.Token) string {
	start := tok.Offset()
	end := start + len(tok.Value())
	if !s.ascii {
		start, end = s.offsets[start], s.offsets[end]
	}
	return s.text[start:end]
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
