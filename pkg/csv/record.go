package csv

import "github.com/shapestone/fastcsv/internal/parser"

// Row is one line's fields in source column order.
type Row = []string

// Record maps header names to field values.
type Record = map[string]string

// Result holds everything one parse call produced.
// Headers is empty, never nil, when no header line was captured.
type Result struct {
	Options Options
	Headers []string
	Rows    []Row
}

// Records projects the rows onto the headers.
// Returns an empty slice when Options.HasHeader is false.
func (r Result) Records() []Record {
	if !r.Options.HasHeader {
		return []Record{}
	}
	return ToRecords(r.Headers, r.Rows)
}

// ToRecords pairs headers[i] with row[i] for every row.
//
// A row shorter than headers leaves the remaining names out of its record
// rather than mapping them to "". Fields past the last header are dropped.
// When a name repeats, the later column wins.
func ToRecords(headers []string, rows []Row) []Record {
	return parser.Records(headers, rows)
}
