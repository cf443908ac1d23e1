package csv

import (
	"unicode/utf8"

	"github.com/shapestone/fastcsv/internal/parser"
)

// Options configures CSV parsing behavior.
type Options struct {
	// Delimiter is the field separator. It must be a valid, non-zero rune.
	// A '"' or '\' delimiter is accepted but never splits fields, since quote
	// and escape handling take precedence.
	// Default: ','
	Delimiter rune

	// HasHeader designates the first non-skipped line as the header row.
	// Default: true
	HasHeader bool

	// SkipEmptyLines drops zero-length lines. A line holding only whitespace
	// is not empty and parses to a single empty field.
	// Default: true
	SkipEmptyLines bool
}

// DefaultOptions returns the default parser configuration.
func DefaultOptions() Options {
	return Options{
		Delimiter:      ',',
		HasHeader:      true,
		SkipEmptyLines: true,
	}
}

// DelimiterFromString returns the first character of s, or ',' when s is
// empty.
func DelimiterFromString(s string) rune {
	if s == "" {
		return ','
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

// validDelim reports whether r is a usable field delimiter.
func validDelim(r rune) bool {
	return r != 0 && utf8.ValidRune(r) && r != utf8.RuneError
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if !validDelim(o.Delimiter) {
		return &OptionsError{Field: "Delimiter", Message: "invalid delimiter", Err: ErrInvalidDelimiter}
	}
	return nil
}

func (o Options) config() parser.Config {
	return parser.Config{
		Delimiter:      o.Delimiter,
		HasHeader:      o.HasHeader,
		SkipEmptyLines: o.SkipEmptyLines,
	}
}
