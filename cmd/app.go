// Package cmd implements the CLI application converting exchange statements.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/rivsoncs/nova2k"
	"github.com/rivsoncs/nova2k/config"
	"github.com/rivsoncs/nova2k/gemini"
	"github.com/rivsoncs/nova2k/logger"
	"github.com/rivsoncs/nova2k/pdftable"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&convertCmd{}, "conversion")
	c.Register(&extractCmd{}, "conversion")
	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configPath = flag.String("config", config.DefaultPath, "Path to the YAML configuration file")
var verbose = flag.Bool("v", false, "Log debug events")
var logFile = flag.String("log-file", "", "Also write the log to this file, as JSON lines")
var logFormat = flag.String("log-format", "", "Log format: console or json")

// Extractor names.
const (
	extractorPDF    = "pdf"
	extractorGemini = "gemini"
	extractorDump   = "dump"
)

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	globals := map[string]complete.Predictor{
		"config":     predict.Files("*.yaml"),
		"v":          predict.Nothing,
		"log-file":   predict.Files("*"),
		"log-format": predict.Set{logger.FormatConsole, logger.FormatJSON},
	}
	extractors := predict.Set{extractorPDF, extractorGemini, extractorDump}
	return &complete.Command{
		Flags: globals,
		Sub: map[string]*complete.Command{
			"convert": {
				Flags: map[string]complete.Predictor{
					"o":         predict.Files("*"),
					"pdf":       predict.Nothing,
					"csv":       predict.Nothing,
					"direct":    predict.Nothing,
					"summary":   predict.Nothing,
					"format":    predict.Set{nova2k.FormatCSV, nova2k.FormatJSONL},
					"extractor": extractors,
					"rows-path": predict.Something,
				},
				Args: predict.Files("*"),
			},
			"extract": {
				Flags: map[string]complete.Predictor{
					"o":         predict.Files("*.csv"),
					"extractor": extractors,
					"rows-path": predict.Something,
				},
				Args: predict.Files("*"),
			},
			"topic": {
				Args: topicPredictor{},
			},
			"help":     {},
			"flags":    {},
			"commands": {},
		},
	}
}

// app holds what every command needs: configuration and event reporting.
type app struct {
	cfg    *config.Config
	events nova2k.Recorder
	sink   nova2k.EventSink
	closer io.Closer
}

// openApp loads the configuration and opens the logger.
func openApp() (*app, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	opts := logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File}
	if *verbose {
		opts.Level = "debug"
	}
	if *logFormat != "" {
		opts.Format = *logFormat
	}
	if *logFile != "" {
		opts.File = *logFile
	}
	log, closer, err := logger.Open(opts)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, closer: closer}
	ls := logger.NewSink(log)
	a.sink = nova2k.EventSinkFunc(func(e nova2k.Event) {
		ls.Emit(e)
		a.events.Emit(e)
	})
	return a, nil
}

func (a *app) Close() error { return a.closer.Close() }

// options returns the conversion options of the configuration.
func (a *app) options() nova2k.Options {
	return nova2k.Options{Keywords: a.cfg.Keywords(), Sink: a.sink}
}

var errUnknownExtractor = errors.New("unknown extractor")

// extractor returns the table extractor named kind, or the one suited to
// the extension of path when kind is empty.
func (a *app) extractor(ctx context.Context, kind, path, rowsPath string) (nova2k.TableExtractor, error) {
	if kind == "" {
		kind = extractorPDF
		if strings.EqualFold(filepath.Ext(path), ".json") {
			kind = extractorDump
		}
	}
	switch kind {
	case extractorPDF:
		return pdftable.Extractor{LineTolerance: a.cfg.PDF.LineTolerance}, nil
	case extractorDump:
		return pdftable.DumpExtractor{RowsPath: rowsPath}, nil
	case extractorGemini:
		client, err := gemini.NewClient(ctx, a.cfg.Gemini.APIKey)
		if err != nil {
			return nil, err
		}
		return gemini.New(client, a.cfg.Gemini.Model), nil
	default:
		return nil, fmt.Errorf("%w %q, want %s, %s or %s", errUnknownExtractor, kind, extractorPDF, extractorGemini, extractorDump)
	}
}

// writeStatement writes the reconstructed rows to path.
func writeStatement(path string, rows []nova2k.LogicalRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := nova2k.WriteStatement(f, rows); err != nil {
		f.Close()
		return fmt.Errorf("cannot write %q: %w", path, err)
	}
	return f.Close()
}

// withSuffix returns path without its extension, followed by suffix.
func withSuffix(path, suffix string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + suffix
}

// printMarkdown renders md for the terminal, or prints it raw if it cannot.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
