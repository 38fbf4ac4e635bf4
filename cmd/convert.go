package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"
	"github.com/rivsoncs/nova2k"
	"github.com/rivsoncs/nova2k/renderer"
)

type convertCmd struct {
	output    string
	pdf       bool
	csv       bool
	direct    bool
	format    string
	extractor string
	rowsPath  string
	summary   bool
}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "convert a NovaDAX statement into a Koinly ledger" }
func (*convertCmd) Usage() string {
	return `convert [-o <ledger>] [-pdf|-csv] [-direct] [-format csv|jsonl] [-extractor pdf|gemini|dump] [-rows-path <expr>] [-summary] <statement>

Convert a NovaDAX statement into a ledger ready to import in Koinly.

The statement is either the CSV export (.csv) or the PDF statement (.pdf).
The tables of a PDF are first extracted into an intermediate statement CSV,
next to the ledger, with the suffix "_extraido.csv".

By default the ledger is written next to the statement with the suffix
"_koinly.csv".
`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Path to the ledger file, default to the statement path with a _koinly suffix")
	f.BoolVar(&c.pdf, "pdf", false, "Process the statement as a PDF, whatever its extension")
	f.BoolVar(&c.csv, "csv", false, "Process the statement as a CSV, whatever its extension")
	f.BoolVar(&c.direct, "direct", false, "Do not write the intermediate statement CSV of a PDF")
	f.StringVar(&c.format, "format", nova2k.FormatCSV, "Ledger format: csv or jsonl")
	f.StringVar(&c.extractor, "extractor", "", "Table extractor for PDF statements: pdf, gemini or dump (table dump in JSON)")
	f.StringVar(&c.rowsPath, "rows-path", "", "JSONPath of the rows in a table dump")
	f.BoolVar(&c.summary, "summary", false, "Print a summary of the conversion")
}

// isPDF tells how to process the statement at path.
func (c *convertCmd) isPDF(path string) (bool, error) {
	if c.pdf && c.csv {
		return false, errors.New("-pdf and -csv cannot be used together")
	}
	if c.pdf || c.csv {
		return c.pdf, nil
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return false, nil
	case ".pdf", ".json":
		return true, nil
	default:
		return false, fmt.Errorf("unsupported statement type %q, use a .csv or .pdf file, or -pdf or -csv", ext)
	}
}

func (c *convertCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: convert takes exactly one statement file")
		return subcommands.ExitUsageError
	}
	input := f.Arg(0)
	if _, err := os.Stat(input); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	isPDF, err := c.isPDF(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	if c.format != nova2k.FormatCSV && c.format != nova2k.FormatJSONL {
		fmt.Fprintf(os.Stderr, "Error: unknown ledger format %q\n", c.format)
		return subcommands.ExitUsageError
	}

	output := c.output
	if output == "" {
		ext := ".csv"
		if c.format == nova2k.FormatJSONL {
			ext = ".jsonl"
		}
		output = withSuffix(input, "_koinly"+ext)
	}

	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	out, err := os.Create(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating ledger file: %v\n", err)
		return subcommands.ExitFailure
	}
	defer out.Close()
	enc, err := nova2k.NewLedgerEncoder(c.format, out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	var entries nova2k.Entries
	w := nova2k.MultiLedgerWriter(enc, &entries)

	var stats nova2k.Stats
	if isPDF {
		// the intermediate statement goes next to the ledger the user chose.
		base := input
		if c.output != "" {
			base = c.output
		}
		stats, err = c.convertPDF(ctx, a, input, withSuffix(base, "_extraido.csv"), w)
	} else {
		stats, err = c.convertCSV(a, input, w)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error converting %q: %v\n", input, err)
		return subcommands.ExitFailure
	}
	if err := enc.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger file: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing ledger file: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.summary {
		s, err := nova2k.NewSummary(stats, entries)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error summarizing the ledger: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.SummaryMarkdown(s, a.events.Events))
	}
	fmt.Printf("Converted %d rows into %d ledger entries (%d errors): %s\n", stats.Total, stats.Converted, stats.Errors, output)
	return subcommands.ExitSuccess
}

func (c *convertCmd) convertCSV(a *app, input string, w nova2k.LedgerWriter) (nova2k.Stats, error) {
	in, err := os.Open(input)
	if err != nil {
		return nova2k.Stats{}, err
	}
	defer in.Close()
	return nova2k.Convert(in, w, a.options())
}

// convertPDF extracts the statement rows, then converts them either
// directly or through the intermediate statement CSV.
func (c *convertCmd) convertPDF(ctx context.Context, a *app, input, intermediate string, w nova2k.LedgerWriter) (nova2k.Stats, error) {
	ex, err := a.extractor(ctx, c.extractor, input, c.rowsPath)
	if err != nil {
		return nova2k.Stats{}, err
	}
	rows, err := nova2k.ExtractStatement(ctx, ex, input, a.sink)
	if err != nil {
		return nova2k.Stats{}, err
	}
	if c.direct {
		return nova2k.ConvertRows(rows, w, a.options())
	}

	if err := writeStatement(intermediate, rows); err != nil {
		return nova2k.Stats{}, err
	}
	fmt.Printf("Extracted %d transactions into %s\n", len(rows), intermediate)
	return c.convertCSV(a, intermediate, w)
}
