package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/shapestone/fastcsv/pkg/csv"
)

// autoDelimiter asks runParse to detect the delimiter from the input.
const autoDelimiter = "auto"

type parseFlags struct {
	delimiter      string
	noHeader       bool
	keepEmptyLines bool
	objects        bool
	headers        bool
	pretty         bool
}

func (f parseFlags) options() csv.Options {
	return csv.Options{
		Delimiter:      csv.DelimiterFromString(f.delimiter),
		HasHeader:      !f.noHeader,
		SkipEmptyLines: !f.keepEmptyLines,
	}
}

func newParseCmd() *cobra.Command {
	var flags parseFlags

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a CSV file and print it as JSON",
		Long: `Parse a CSV file and print the result as JSON to stdout.

If no file is provided, reads CSV from stdin.

By default the first non-empty line is treated as the header row and
left out of the output. Use --objects to print one object per row keyed
by header, or --headers to print the header row alongside the rows.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := io.Reader(os.Stdin)
			if len(args) == 1 {
				file, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open file: %w", err)
				}
				defer file.Close()
				in = file
			}
			return runParse(in, cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().StringVarP(&flags.delimiter, "delimiter", "d", ",",
		"field delimiter (first character is used), or \"auto\" to detect it; "+
			"the exact value \"auto\" always means detection, so pass -d a for a literal 'a'")
	cmd.Flags().BoolVar(&flags.noHeader, "no-header", false, "treat the first line as data")
	cmd.Flags().BoolVar(&flags.keepEmptyLines, "keep-empty-lines", false, "emit empty lines as single empty fields")
	cmd.Flags().BoolVar(&flags.objects, "objects", false, "print records keyed by header")
	cmd.Flags().BoolVar(&flags.headers, "headers", false, "print headers together with rows")
	cmd.Flags().BoolVar(&flags.pretty, "pretty", false, "indent JSON output")
	cmd.MarkFlagsMutuallyExclusive("objects", "headers")

	return cmd
}

func runParse(in io.Reader, out io.Writer, flags parseFlags) error {
	log := commonlog.GetLogger("fastcsv.cli")

	if flags.objects && flags.noHeader {
		log.Warning("--objects without a header row prints no records")
	}

	var res csv.Result
	if flags.delimiter == autoDelimiter {
		data, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		opts := flags.options()
		opts.Delimiter = csv.SniffDelimiter(string(data))
		log.Infof("detected delimiter %q", opts.Delimiter)

		if res, err = csv.ParseResult(string(data), opts); err != nil {
			return fmt.Errorf("parse: %w", err)
		}
	} else {
		var err error
		if res, err = csv.ParseReader(in, flags.options()); err != nil {
			return fmt.Errorf("parse: %w", err)
		}
	}
	log.Debugf("parsed %d rows, %d headers", len(res.Rows), len(res.Headers))

	var v any
	switch {
	case flags.objects:
		v = res.Records()
	case flags.headers:
		v = struct {
			Headers []string  `json:"headers"`
			Rows    []csv.Row `json:"rows"`
		}{res.Headers, res.Rows}
	default:
		v = res.Rows
	}

	enc := json.NewEncoder(out)
	if flags.pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
