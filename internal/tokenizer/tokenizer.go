package tokenizer

import (
	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// Options configures the tokenizer behavior.
type Options struct {
	// Delimiter is the field separator. Default: ','
	Delimiter rune

	// Runes disables the byte scanning fast path for text runs.
	// Set it for lines that are not valid UTF-8: shape-core's byte cursor
	// drifts from its rune cursor past an invalid byte.
	Runes bool
}

// DefaultOptions returns default tokenizer options.
func DefaultOptions() Options {
	return Options{
		Delimiter: ',',
	}
}

// NewTokenizer creates a line tokenizer with the default comma delimiter.
func NewTokenizer() tokenizer.Tokenizer {
	return NewTokenizerWithOptions(DefaultOptions())
}

// NewTokenizerWithOptions creates a line tokenizer with custom options.
//
// Matchers are tried in this order, which fixes precedence when the
// delimiter collides with a structural character:
// 1. Escape marker
// 2. Double quote
// 3. Delimiter
// 4. Text (any other characters)
//
// Lines are split before tokenization, so there is no newline token and
// whitespace is kept as text for the parser to trim.
//
// Token values are decoded runes. Use a Source to recover the exact bytes a
// token covers.
func NewTokenizerWithOptions(opts Options) tokenizer.Tokenizer {
	text := TextMatcherWithDelim(opts.Delimiter)
	if opts.Runes {
		text = func(stream tokenizer.Stream) *tokenizer.Token {
			return textMatcherRune(stream, opts.Delimiter)
		}
	}
	return tokenizer.NewTokenizerWithoutWhitespace(
		tokenizer.StringMatcherFunc(TokenEscape, string(Escape)),
		tokenizer.StringMatcherFunc(TokenDQuote, `"`),
		tokenizer.StringMatcherFunc(TokenDelimiter, string(opts.Delimiter)),
		text,
	)
}

// TextMatcher creates a text matcher for the default comma delimiter.
func TextMatcher() tokenizer.Matcher {
	return TextMatcherWithDelim(',')
}

// TextMatcherWithDelim creates a matcher for field text with a custom delimiter.
// It matches runs of characters that are not the delimiter, a quote or the
// escape marker.
//
// Grammar:
//
//	Text = Character+ ;
//	Character = <any character except delimiter, '"', '\'> ;
//
// Performance: Uses ByteStream for fast ASCII scanning when available.
func TextMatcherWithDelim(delim rune) tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if delim < 128 {
			if byteStream, ok := stream.(tokenizer.ByteStream); ok {
				return textMatcherByte(byteStream, byte(delim))
			}
		}
		return textMatcherRune(stream, delim)
	}
}

func textMatcherByte(stream tokenizer.ByteStream, delim byte) *tokenizer.Token {
	startPos := stream.BytePosition()

	for {
		b, ok := stream.PeekByte()
		if !ok {
			break
		}
		if b == delim || b == '"' || b == Escape {
			break
		}
		stream.NextByte()
	}

	if stream.BytePosition() == startPos {
		return nil
	}

	value := stream.SliceFrom(startPos)
	return tokenizer.NewToken(TokenText, []rune(string(value)))
}

func textMatcherRune(stream tokenizer.Stream, delim rune) *tokenizer.Token {
	var value []rune

	for {
		r, ok := stream.PeekChar()
		if !ok {
			break
		}
		if r == delim || r == '"' || r == Escape {
			break
		}
		stream.NextChar()
		value = append(value, r)
	}

	if len(value) == 0 {
		return nil
	}

	return tokenizer.NewToken(TokenText, value)
}
