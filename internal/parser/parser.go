// Package parser implements the line-oriented CSV dialect: a per-line field
// state machine and the document builder that collects rows and headers.
package parser

import (
	"strings"
	"unicode/utf8"

	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"

	"github.com/shapestone/fastcsv/internal/lines"
	"github.com/shapestone/fastcsv/internal/tokenizer"
)

// cutset is trimmed from both ends of every line and every field.
const cutset = " \t\r\n"

// Config configures the parser behavior.
type Config struct {
	// Delimiter is the field separator. Default: ','
	Delimiter rune
	// HasHeader designates the first non-skipped line as headers. Default: true
	HasHeader bool
	// SkipEmptyLines drops zero-length lines before header capture. Default: true
	SkipEmptyLines bool
}

// DefaultConfig returns default parser configuration.
func DefaultConfig() Config {
	return Config{
		Delimiter:      ',',
		HasHeader:      true,
		SkipEmptyLines: true,
	}
}

// Result is the outcome of one Parse call.
// Headers is empty, never nil, when no header line was captured.
type Result struct {
	Config  Config
	Headers []string
	Rows    [][]string
}

// Records pairs each row with the captured headers.
//
// Header names without a matching field are absent from the record and
// fields beyond the last header are dropped. Without HasHeader there are no
// names to key by and the result is empty.
func (r Result) Records() []map[string]string {
	if !r.Config.HasHeader {
		return []map[string]string{}
	}
	return Records(r.Headers, r.Rows)
}

// Records pairs headers[i] with row[i] for i < min(len(headers), len(row)).
// When a header name repeats, the later column wins.
func Records(headers []string, rows [][]string) []map[string]string {
	records := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		n := min(len(headers), len(row))
		record := make(map[string]string, n)
		for i := 0; i < n; i++ {
			record[headers[i]] = row[i]
		}
		records = append(records, record)
	}
	return records
}

// Parse splits text into lines and tokenizes each one.
//
// With SkipEmptyLines, zero-length lines are dropped before anything else
// looks at them. The first remaining line becomes the headers when HasHeader
// is set; every other line becomes a row, in input order.
func Parse(text string, cfg Config) Result {
	p := NewLineParser(cfg.Delimiter)
	res := Result{
		Config:  cfg,
		Headers: []string{},
		Rows:    make([][]string, 0, lines.Count(text)),
	}

	captured := false
	for line := range lines.Split(text) {
		if cfg.SkipEmptyLines && line == "" {
			continue
		}

		row := p.ParseLine(strings.Trim(line, cutset))
		if cfg.HasHeader && !captured {
			res.Headers = row
			captured = true
			continue
		}
		res.Rows = append(res.Rows, row)
	}

	return res
}

// LineParser turns single lines into fields.
// It keeps one token of lookahead and reuses its tokenizers across lines, so a
// LineParser must not be shared between goroutines.
//
// Field values are sliced from the line itself, so bytes that are not valid
// UTF-8 pass through unchanged.
type LineParser struct {
	tokenizer *shapetokenizer.Tokenizer // active for the current line
	bytes     *shapetokenizer.Tokenizer
	runes     *shapetokenizer.Tokenizer
	source    tokenizer.Source
	current   *shapetokenizer.Token
	hasToken  bool
	delim     rune
}

// NewLineParser creates a LineParser for the given delimiter.
// A zero delimiter means ','.
func NewLineParser(delim rune) *LineParser {
	if delim == 0 {
		delim = ','
	}
	bytes := tokenizer.NewTokenizerWithOptions(tokenizer.Options{Delimiter: delim})
	runes := tokenizer.NewTokenizerWithOptions(tokenizer.Options{Delimiter: delim, Runes: true})
	return &LineParser{
		bytes: &bytes,
		runes: &runes,
		delim: delim,
	}
}

// ParseLine parses one line with the given delimiter.
func ParseLine(line string, delim rune) []string {
	return NewLineParser(delim).ParseLine(line)
}

// ParseLine splits line into trimmed fields.
//
// Grammar:
//
//	Line    = Field { Delimiter Field } ;
//	Field   = { Text | Escape Char | '"' { QChar | '""' } [ '"' ] } ;
//
// An escape marker makes the following character literal in or out of quotes
// and is checked before quotes. A doubled quote inside quotes is one literal
// quote. The delimiter only separates fields outside quotes. Quotes left open
// at the end of the line and a trailing escape marker are ignored.
//
// The result always has at least one field.
func (p *LineParser) ParseLine(line string) []string {
	p.reset(line)

	fields := make([]string, 0, 8)
	var field strings.Builder
	inQuotes := false

scan:
	for p.hasToken {
		token := p.peek()

		switch token.Kind() {
		case tokenizer.TokenEscape:
			p.advance()
			if !p.hasToken || p.peek().Kind() == tokenizer.TokenEOF {
				break scan
			}
			field.WriteString(p.source.Text(p.peek()))
			p.advance()

		case tokenizer.TokenDQuote:
			p.advance()
			if inQuotes && p.hasToken && p.peek().Kind() == tokenizer.TokenDQuote {
				field.WriteByte('"')
				p.advance()
			} else {
				inQuotes = !inQuotes
			}

		case tokenizer.TokenDelimiter:
			if inQuotes {
				field.WriteRune(p.delim)
			} else {
				fields = append(fields, strings.Trim(field.String(), cutset))
				field.Reset()
			}
			p.advance()

		case tokenizer.TokenText:
			field.WriteString(p.source.Text(token))
			p.advance()

		default:
			break scan
		}
	}

	return append(fields, strings.Trim(field.String(), cutset))
}

// Helper methods

// reset points a tokenizer at a new line and loads the first token.
// Lines that are not valid UTF-8 go through the rune-only tokenizer.
func (p *LineParser) reset(line string) {
	p.tokenizer = p.bytes
	if !utf8.ValidString(line) {
		p.tokenizer = p.runes
	}
	p.tokenizer.Initialize(line)
	p.source.Reset(line)
	p.advance()
}

// peek returns current token without advancing.
func (p *LineParser) peek() *shapetokenizer.Token {
	return p.current
}

// advance moves to next token.
func (p *LineParser) advance() {
	token, ok := p.tokenizer.NextToken()
	if ok {
		p.current = token
		p.hasToken = true
	} else {
		p.hasToken = false
		p.current = nil
	}
}
