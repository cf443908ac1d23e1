// Package tokenizer provides line tokenization using Shape's tokenizer framework.
package tokenizer

// Token type constants for a single CSV line.
//
// The tokenizer emits character-level tokens only. The parser decides what a
// quote, escape or delimiter means given the current quote state.
const (
	// Structural tokens
	TokenEscape    = "Escape"    // \ (makes the next character literal)
	TokenDQuote    = "DQuote"    // " (toggles quote mode)
	TokenDelimiter = "Delimiter" // configured field separator

	// Field content token
	TokenText = "Text" // run of characters that are none of the above

	// Special token
	TokenEOF = "EOF" // End of line
)

// Escape is the escape marker character.
const Escape = '\\'
