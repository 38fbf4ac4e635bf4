package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/rivsoncs/nova2k"
)

type extractCmd struct {
	output    string
	extractor string
	rowsPath  string
}

func (*extractCmd) Name() string { return "extract" }
func (*extractCmd) Synopsis() string {
	return "extract the transactions of a PDF statement into a statement CSV"
}
func (*extractCmd) Usage() string {
	return `extract [-o <statement.csv>] [-extractor pdf|gemini|dump] [-rows-path <expr>] <statement.pdf>

Extract the transaction table of a PDF statement, merge the lines broken
across rows and pages, and write the transactions as a statement CSV with
the header Data,Tipo,Moeda,Valor,Status.

The CSV can be reviewed and fixed before running "convert" on it.
`
}

func (c *extractCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Path to the statement CSV, default to the statement path with a _extraido suffix")
	f.StringVar(&c.extractor, "extractor", "", "Table extractor: pdf, gemini or dump (table dump in JSON)")
	f.StringVar(&c.rowsPath, "rows-path", "", "JSONPath of the rows in a table dump")
}

func (c *extractCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: extract takes exactly one statement file")
		return subcommands.ExitUsageError
	}
	input := f.Arg(0)
	output := c.output
	if output == "" {
		output = withSuffix(input, "_extraido.csv")
	}

	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	ex, err := a.extractor(ctx, c.extractor, input, c.rowsPath)
	if errors.Is(err, errUnknownExtractor) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	rows, err := nova2k.ExtractStatement(ctx, ex, input, a.sink)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := writeStatement(output, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Extracted %d transactions into %s\n", len(rows), output)
	return subcommands.ExitSuccess
}
