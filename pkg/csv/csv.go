// Package csv parses delimited text into rows or header-keyed records.
//
// The dialect is line oriented: input is split on '\n' (a trailing '\r' is
// dropped) and every line is tokenized on its own, so quotes never span lines.
// Within a line:
//
//   - the delimiter separates fields outside quotes
//   - '"' toggles quote mode, and '""' inside quotes is a literal quote
//   - '\' makes the next character literal, in or out of quotes
//   - every field is trimmed of spaces, tabs, '\r' and '\n'
//
// Malformed quoting is never an error: an open quote simply closes at the end
// of the line. Field values are always strings.
//
// # Parsing APIs
//
// A Parser keeps its Options and the headers captured by its most recent
// call:
//
//	p, err := csv.NewParser(csv.DefaultOptions())
//	if err != nil {
//	    // handle error
//	}
//	rows := p.Parse("name,age\nAlice,30\nBob,25")
//	// rows is []csv.Row{{"Alice", "30"}, {"Bob", "25"}}
//	headers := p.Headers()
//	// headers is []string{"name", "age"}
//
// The stateless functions build their own engine call and share nothing:
//
//	rows, err := csv.ParseCSV(input, csv.DefaultOptions())
//	records, err := csv.ParseToObjects(input, csv.DefaultOptions())
//	result, err := csv.ParseResult(input, csv.DefaultOptions())
//
// # Thread Safety
//
// The stateless functions are safe for concurrent use. A Parser may be shared,
// but Headers reports whichever call finished last; use ParseResult when each
// caller needs its own headers.
package csv

import (
	"io"
	"slices"
	"sync"

	"github.com/shapestone/fastcsv/internal/parser"
)

// Parser parses text with fixed Options and remembers the headers of its
// most recent call.
type Parser struct {
	opts Options

	mu   sync.RWMutex
	last Result
}

// NewParser creates a Parser with the given options.
// Returns an *OptionsError if the options are invalid.
func NewParser(opts Options) (*Parser, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Parser{
		opts: opts,
		last: Result{Options: opts, Headers: []string{}, Rows: []Row{}},
	}, nil
}

// Options returns the parser configuration.
func (p *Parser) Options() Options {
	return p.opts
}

// Parse parses text into rows.
//
// With HasHeader set, the first non-skipped line is captured as the headers
// and excluded from the rows. Headers from any previous call are replaced.
func (p *Parser) Parse(text string) []Row {
	return p.parse(text).Rows
}

// ParseToObjects parses text into records keyed by the captured headers.
//
// Without HasHeader there is nothing to key by: the result is empty and the
// parser's headers are left as they were.
func (p *Parser) ParseToObjects(text string) []Record {
	if !p.opts.HasHeader {
		return []Record{}
	}
	return p.parse(text).Records()
}

// parse runs the engine and replaces the remembered result.
func (p *Parser) parse(text string) Result {
	res := parse(text, p.opts)

	p.mu.Lock()
	p.last = res
	p.mu.Unlock()

	return res
}

// Headers returns a copy of the headers captured by the most recent Parse or
// ParseToObjects call. It is empty, never nil, when none were captured.
func (p *Parser) Headers() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.last.Headers)
}

// ParseCSV parses text into rows with a one-shot parser.
//
// Example:
//
//	opts := csv.DefaultOptions()
//	opts.Delimiter = ';'
//	rows, err := csv.ParseCSV("name;age\nJohn;25", opts)
//	// rows is []csv.Row{{"John", "25"}}
func ParseCSV(text string, opts Options) ([]Row, error) {
	res, err := ParseResult(text, opts)
	if err != nil {
		return nil, err
	}
	return res.Rows, nil
}

// ParseToObjects parses text into records with a one-shot parser.
// Returns an empty slice when opts.HasHeader is false.
func ParseToObjects(text string, opts Options) ([]Record, error) {
	res, err := ParseResult(text, opts)
	if err != nil {
		return nil, err
	}
	return res.Records(), nil
}

// ParseResult parses text and returns the options, headers and rows together.
func ParseResult(text string, opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	return parse(text, opts), nil
}

// ParseReader reads all of r and parses it.
//
// The whole input is held in memory; this is a convenience for files and
// request bodies, not a streaming reader.
func ParseReader(r io.Reader, opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, &ReadError{Err: err}
	}
	return parse(string(data), opts), nil
}

// Format returns the format identifier for this parser.
func Format() string {
	return "CSV"
}

func parse(text string, opts Options) Result {
	res := parser.Parse(text, opts.config())
	return Result{
		Options: opts,
		Headers: res.Headers,
		Rows:    res.Rows,
	}
}
