package csv_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapestone/fastcsv/pkg/csv"
)

const people = `name,age,city
John,25,New York
Jane,30,"San Francisco"
Bob,35,Chicago
"Smith, Alice",28,Boston`

func noHeader() csv.Options {
	opts := csv.DefaultOptions()
	opts.HasHeader = false
	return opts
}

func TestParser_Parse(t *testing.T) {
	p, err := csv.NewParser(csv.DefaultOptions())
	require.NoError(t, err)

	rows := p.Parse(people)

	assert.Equal(t, []csv.Row{
		{"John", "25", "New York"},
		{"Jane", "30", "San Francisco"},
		{"Bob", "35", "Chicago"},
		{"Smith, Alice", "28", "Boston"},
	}, rows)
	assert.Equal(t, []string{"name", "age", "city"}, p.Headers())
}

func TestParser_EmptyInput(t *testing.T) {
	configs := map[string]csv.Options{
		"defaults":   csv.DefaultOptions(),
		"no header":  noHeader(),
		"keep empty": {Delimiter: ';', HasHeader: true},
	}

	for name, opts := range configs {
		t.Run(name, func(t *testing.T) {
			p, err := csv.NewParser(opts)
			require.NoError(t, err)

			rows := p.Parse("")
			assert.NotNil(t, rows)
			assert.Empty(t, rows)
			assert.NotNil(t, p.Headers())
			assert.Empty(t, p.Headers())
		})
	}
}

func TestParser_HeadersReplacedEachCall(t *testing.T) {
	p, err := csv.NewParser(csv.DefaultOptions())
	require.NoError(t, err)

	assert.Empty(t, p.Headers(), "no call yet")

	p.Parse("a,b\n1,2")
	assert.Equal(t, []string{"a", "b"}, p.Headers())

	p.Parse("x,y,z\n1,2,3")
	assert.Equal(t, []string{"x", "y", "z"}, p.Headers())

	p.Parse("")
	assert.Empty(t, p.Headers(), "empty input clears headers")
}

func TestParser_Idempotent(t *testing.T) {
	p, err := csv.NewParser(csv.DefaultOptions())
	require.NoError(t, err)

	first := p.Parse(people)
	firstHeaders := p.Headers()
	second := p.Parse(people)

	assert.Equal(t, first, second)
	assert.Equal(t, firstHeaders, p.Headers())
	assert.Equal(t, csv.DefaultOptions(), p.Options())
}

func TestParser_ParseToObjects(t *testing.T) {
	p, err := csv.NewParser(csv.DefaultOptions())
	require.NoError(t, err)

	records := p.ParseToObjects(people)

	require.Len(t, records, 4)
	assert.Equal(t, csv.Record{"name": "John", "age": "25", "city": "New York"}, records[0])
	assert.Equal(t, csv.Record{"name": "Smith, Alice", "age": "28", "city": "Boston"}, records[3])
	assert.Equal(t, []string{"name", "age", "city"}, p.Headers())
}

func TestParser_ParseToObjects_Ragged(t *testing.T) {
	p, err := csv.NewParser(csv.DefaultOptions())
	require.NoError(t, err)

	records := p.ParseToObjects("a,b,c\n1,2\n1,2,3,4")

	require.Len(t, records, 2)
	assert.Equal(t, csv.Record{"a": "1", "b": "2"}, records[0])
	assert.NotContains(t, records[0], "c")
	assert.Equal(t, csv.Record{"a": "1", "b": "2", "c": "3"}, records[1])
}

func TestParser_ParseToObjects_FullWidth(t *testing.T) {
	p, err := csv.NewParser(csv.DefaultOptions())
	require.NoError(t, err)

	headers := []string{"h1", "h2", "h3", "h4"}
	records := p.ParseToObjects(strings.Join(headers, ",") + "\nv1,v2,v3,v4")

	require.Len(t, records, 1)
	require.Len(t, records[0], len(headers))
	for i, h := range headers {
		assert.Equal(t, "v"+string(rune('1'+i)), records[0][h])
	}
}

func TestParser_ParseToObjects_NoHeader(t *testing.T) {
	p, err := csv.NewParser(noHeader())
	require.NoError(t, err)

	for _, input := range []string{"", "a,b", people} {
		records := p.ParseToObjects(input)
		assert.NotNil(t, records)
		assert.Empty(t, records, "input %q", input)
	}
	assert.Empty(t, p.Headers())
}

func TestParser_ConcurrentUse(t *testing.T) {
	p, err := csv.NewParser(csv.DefaultOptions())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rows := p.Parse(people)
			assert.Len(t, rows, 4)
			assert.Equal(t, []string{"name", "age", "city"}, p.Headers())
		}()
	}
	wg.Wait()
}

func TestNewParser_InvalidOptions(t *testing.T) {
	p, err := csv.NewParser(csv.Options{HasHeader: true})

	assert.Nil(t, p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, csv.ErrInvalidDelimiter))

	var optsErr *csv.OptionsError
	require.True(t, errors.As(err, &optsErr))
	assert.Equal(t, "Delimiter", optsErr.Field)
}

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  csv.Options
		want  []csv.Row
	}{
		{
			name:  "defaults skip header",
			input: people,
			opts:  csv.DefaultOptions(),
			want: []csv.Row{
				{"John", "25", "New York"},
				{"Jane", "30", "San Francisco"},
				{"Bob", "35", "Chicago"},
				{"Smith, Alice", "28", "Boston"},
			},
		},
		{
			name:  "semicolon",
			input: "name;age;city\nJohn;25;New York\nJane;30;San Francisco",
			opts:  csv.Options{Delimiter: ';', HasHeader: true, SkipEmptyLines: true},
			want:  []csv.Row{{"John", "25", "New York"}, {"Jane", "30", "San Francisco"}},
		},
		{
			name:  "no header",
			input: "John,25,New York\nJane,30,San Francisco",
			opts:  noHeader(),
			want:  []csv.Row{{"John", "25", "New York"}, {"Jane", "30", "San Francisco"}},
		},
		{
			name:  "empty lines skipped",
			input: "a,b\n\nc,d\n",
			opts:  noHeader(),
			want:  []csv.Row{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "empty lines kept",
			input: "a,b\n\nc,d\n",
			opts:  csv.Options{Delimiter: ','},
			want:  []csv.Row{{"a", "b"}, {""}, {"c", "d"}},
		},
		{
			name:  "whitespace trimmed",
			input: "a, hello ,c",
			opts:  noHeader(),
			want:  []csv.Row{{"a", "hello", "c"}},
		},
		{
			name:  "quoted delimiter",
			input: `a,"b,c",d`,
			opts:  noHeader(),
			want:  []csv.Row{{"a", "b,c", "d"}},
		},
		{
			name:  "doubled quote",
			input: `"he said ""hi"""`,
			opts:  noHeader(),
			want:  []csv.Row{{`he said "hi"`}},
		},
		{
			name:  "escape marker",
			input: `a\,b,c`,
			opts:  noHeader(),
			want:  []csv.Row{{"a,b", "c"}},
		},
		{
			name:  "crlf input",
			input: "h\r\n1\r\n2\r\n",
			opts:  csv.DefaultOptions(),
			want:  []csv.Row{{"1"}, {"2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := csv.ParseCSV(tt.input, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCSV_InvalidOptions(t *testing.T) {
	_, err := csv.ParseCSV("a,b", csv.Options{})
	assert.ErrorIs(t, err, csv.ErrInvalidDelimiter)
}

func TestParseToObjects(t *testing.T) {
	records, err := csv.ParseToObjects(people, csv.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "San Francisco", records[1]["city"])

	records, err = csv.ParseToObjects(people, noHeader())
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = csv.ParseToObjects(people, csv.Options{Delimiter: 0xD800})
	assert.ErrorIs(t, err, csv.ErrInvalidDelimiter)
}

func TestParseResult(t *testing.T) {
	res, err := csv.ParseResult("a,b\n1,2\n3,4", csv.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, csv.DefaultOptions(), res.Options)
	assert.Equal(t, []string{"a", "b"}, res.Headers)
	assert.Equal(t, []csv.Row{{"1", "2"}, {"3", "4"}}, res.Rows)
	assert.Equal(t, []csv.Record{{"a": "1", "b": "2"}, {"a": "3", "b": "4"}}, res.Records())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestParser_HeadersReturnsCopy(t *testing.T) {
	p, err := csv.NewParser(csv.DefaultOptions())
	require.NoError(t, err)

	p.Parse("a,b\n1,2")
	headers := p.Headers()
	headers[0] = "changed"

	assert.Equal(t, []string{"a", "b"}, p.Headers())
}

func TestParseReader(t *testing.T) {
	res, err := csv.ParseReader(strings.NewReader(people), csv.DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, res.Rows, 4)
	assert.Equal(t, []string{"name", "age", "city"}, res.Headers)

	_, err = csv.ParseReader(failingReader{}, csv.DefaultOptions())
	var readErr *csv.ReadError
	require.ErrorAs(t, err, &readErr)
	assert.EqualError(t, readErr.Err, "boom")

	_, err = csv.ParseReader(strings.NewReader(people), csv.Options{})
	assert.ErrorIs(t, err, csv.ErrInvalidDelimiter)
}

func TestParseReader_Latin1(t *testing.T) {
	// "caf\xe9" is "café" in ISO-8859-1.
	input := "name,drink\nZo\xe9,caf\xe9\n"

	res, err := csv.ParseReader(strings.NewReader(input), csv.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "drink"}, res.Headers)
	assert.Equal(t, []csv.Row{{"Zo\xe9", "caf\xe9"}}, res.Rows)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "CSV", csv.Format())
}
