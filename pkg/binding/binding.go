// Package binding adapts the csv package to a dynamically typed host.
//
// Hosts such as scripting runtimes or JSON request bodies hand over untyped
// values. This package checks them the way a native addon would: text must be
// a string, options are read from a map[string]any with unknown keys and
// mistyped values ignored, and results come back as []any and
// map[string]any trees the host can marshal directly.
//
//	h, err := binding.MakeParser(map[string]any{"delimiter": ";"})
//	rows, err := h.Parse("a;b\n1;2")
//	// rows is []any{[]any{"1", "2"}}
//
// Failures are *TypeError for argument contract violations and *HostError for
// anything the engine raised while running.
package binding

import (
	"fmt"

	"github.com/shapestone/fastcsv/pkg/csv"
)

// Option keys recognised in an options map.
const (
	KeyDelimiter      = "delimiter"
	KeyHasHeader      = "hasHeader"
	KeySkipEmptyLines = "skipEmptyLines"
)

// ParserHandle is the host-facing wrapper around a csv.Parser.
type ParserHandle struct {
	parser *csv.Parser
}

// MakeParser builds a ParserHandle from host options.
// See OptionsFrom for how options are read.
func MakeParser(options any) (*ParserHandle, error) {
	p, err := csv.NewParser(OptionsFrom(options))
	if err != nil {
		return nil, &HostError{Message: err.Error(), Err: err}
	}
	return &ParserHandle{parser: p}, nil
}

// Parse parses args[0] into an array of rows, each an array of strings.
func (h *ParserHandle) Parse(args ...any) (any, error) {
	text, err := textArg(args)
	if err != nil {
		return nil, err
	}
	return guard(func() (any, error) {
		return rowsValue(h.parser.Parse(text)), nil
	})
}

// ParseToObjects parses args[0] into an array of objects keyed by header.
func (h *ParserHandle) ParseToObjects(args ...any) (any, error) {
	text, err := textArg(args)
	if err != nil {
		return nil, err
	}
	return guard(func() (any, error) {
		return recordsValue(h.parser.ParseToObjects(text)), nil
	})
}

// GetHeaders returns the headers captured by the handle's last parse call.
func (h *ParserHandle) GetHeaders() []any {
	return stringsValue(h.parser.Headers())
}

// ParseCSV is the one-shot form of Parse: args are (text, options?).
func ParseCSV(args ...any) (any, error) {
	text, err := textArg(args)
	if err != nil {
		return nil, err
	}
	opts := OptionsFrom(optionsArg(args))
	return guard(func() (any, error) {
		rows, err := csv.ParseCSV(text, opts)
		if err != nil {
			return nil, err
		}
		return rowsValue(rows), nil
	})
}

// ParseToObjects is the one-shot form of ParserHandle.ParseToObjects:
// args are (text, options?).
func ParseToObjects(args ...any) (any, error) {
	text, err := textArg(args)
	if err != nil {
		return nil, err
	}
	opts := OptionsFrom(optionsArg(args))
	return guard(func() (any, error) {
		records, err := csv.ParseToObjects(text, opts)
		if err != nil {
			return nil, err
		}
		return recordsValue(records), nil
	})
}

// OptionsFrom reads parser options from a host value.
//
// Only a map[string]any is inspected; anything else yields the defaults.
// "delimiter" must be a string and contributes its first character, an empty
// string keeps ','. "hasHeader" and "skipEmptyLines" must be bools. Values of
// the wrong type and unknown keys are ignored.
func OptionsFrom(v any) csv.Options {
	opts := csv.DefaultOptions()

	m, ok := v.(map[string]any)
	if !ok {
		return opts
	}
	if s, ok := m[KeyDelimiter].(string); ok {
		opts.Delimiter = csv.DelimiterFromString(s)
	}
	if b, ok := m[KeyHasHeader].(bool); ok {
		opts.HasHeader = b
	}
	if b, ok := m[KeySkipEmptyLines].(bool); ok {
		opts.SkipEmptyLines = b
	}
	return opts
}

func textArg(args []any) (string, error) {
	if len(args) < 1 {
		return "", &TypeError{Message: MsgStringExpected}
	}
	text, ok := args[0].(string)
	if !ok {
		return "", &TypeError{Message: MsgStringExpected}
	}
	return text, nil
}

func optionsArg(args []any) any {
	if len(args) < 2 {
		return nil
	}
	return args[1]
}

// guard runs fn and reports both its error and any panic as a *HostError.
func guard(fn func() (any, error)) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			if e, ok := r.(error); ok {
				err = &HostError{Message: e.Error(), Err: e}
				return
			}
			err = &HostError{Message: fmt.Sprint(r)}
		}
	}()

	result, err = fn()
	if err != nil {
		return nil, &HostError{Message: err.Error(), Err: err}
	}
	return result, nil
}

func stringsValue(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func rowsValue(rows []csv.Row) []any {
	out := make([]any, len(rows))
	for i, row := range rows {
		out[i] = stringsValue(row)
	}
	return out
}

func recordsValue(records []csv.Record) []any {
	out := make([]any, len(records))
	for i, record := range records {
		obj := make(map[string]any, len(record))
		for k, v := range record {
			obj[k] = v
		}
		out[i] = obj
	}
	return out
}
