package nova2k

import (
	"fmt"
	"io"
)

// Stats counts what happened during a conversion.
type Stats struct {
	// Total is the number of statement rows read.
	Total int
	// Converted is the number of ledger entries written, the invalid row
	// sentinels excluded.
	Converted int
	// Errors is the number of rows with fewer than five fields.
	Errors int
}

// LedgerWriter receives the entries produced by a conversion.
type LedgerWriter interface {
	Write(LedgerEntry) error
}

// Options configures a Converter.
type Options struct {
	// Keywords selects the rules, DefaultKeywords if nil.
	Keywords Keywords
	// Sink receives the events, Discard if nil.
	Sink EventSink
}

// Converter folds statement rows into ledger entries.
//
// It is a sequential fold: rows must be pushed in statement order and a
// Converter must not be used concurrently.
type Converter struct {
	emitter
	classifier *Classifier
	pairing    Pairing
	state      PairingState
	stats      Stats
}

// NewConverter returns a Converter configured by opts.
func NewConverter(opts Options) *Converter {
	k := opts.Keywords
	if k == nil {
		k = DefaultKeywords()
	}
	sink := opts.Sink
	if sink == nil {
		sink = Discard
	}
	return &Converter{
		emitter:    emitter{sink: sink},
		classifier: NewClassifier(DefaultRules(k), sink),
		pairing:    NewPairing(k),
	}
}

// Classifier returns the classifier used by c.
func (c *Converter) Classifier() *Classifier { return c.classifier }

// Stats returns the counters so far.
func (c *Converter) Stats() Stats { return c.stats }

// PushRecord converts a statement record, a row with any number of fields.
//
// Records with fewer than five fields produce the invalid row sentinel.
func (c *Converter) PushRecord(rec []string) []LedgerEntry {
	c.stats.Total++
	row, ok := RowFromRecord(rec)
	if !ok {
		c.stats.Errors++
		c.emit(c.stats.Total, SeverityError, rec, "invalid row: %d fields, want %d", len(rec), LogicalFields)
		return []LedgerEntry{InvalidRowEntry()}
	}
	return c.push(row)
}

// Push converts a logical row.
func (c *Converter) Push(row LogicalRow) []LedgerEntry {
	c.stats.Total++
	return c.push(row)
}

func (c *Converter) push(row LogicalRow) []LedgerEntry {
	index := c.stats.Total
	state, out := c.pairing.Step(c.classifier, index, c.state, row)
	c.state = state
	c.processed(index, out)
	return out
}

// Close flushes a pending conversion. The Converter must not be used
// afterwards.
func (c *Converter) Close() []LedgerEntry {
	state, out := c.pairing.Flush(c.state)
	if len(out) > 0 {
		c.emit(0, SeverityWarning, nil, "statement ends before the second leg of a conversion")
	}
	c.state = state
	c.processed(0, out)
	return out
}

// processed counts and reports emitted entries.
func (c *Converter) processed(index int, entries []LedgerEntry) {
	for _, e := range entries {
		c.stats.Converted++
		c.emit(index, SeverityInfo, nil, "processed %s: sent %s, received %s, fee %s, label %q",
			e.Description,
			orNothing(e.SentAmount, e.SentCurrency),
			orNothing(e.ReceivedAmount, e.ReceivedCurrency),
			orNothing(e.FeeAmount, e.FeeCurrency),
			e.Label)
	}
}

func orNothing(a Amount, currency string) string {
	if a == "" {
		return "nothing"
	}
	return string(a) + " " + currency
}

// Convert reads a statement CSV from r and writes every entry to w.
//
// Only I/O errors are returned, row level problems are reported to
// opts.Sink.
func Convert(r io.Reader, w LedgerWriter, opts Options) (Stats, error) {
	c := NewConverter(opts)
	records, err := ReadStatement(r)
	if err != nil {
		return c.Stats(), err
	}
	for _, rec := range records {
		if err := writeAll(w, c.PushRecord(rec)); err != nil {
			return c.Stats(), err
		}
	}
	if err := writeAll(w, c.Close()); err != nil {
		return c.Stats(), err
	}
	stats := c.Stats()
	c.emit(0, SeverityInfo, nil, "rows: %d, converted: %d, errors: %d", stats.Total, stats.Converted, stats.Errors)
	return stats, nil
}

// ConvertRows converts logical rows, as produced by a Reconstructor, and
// writes every entry to w.
func ConvertRows(rows []LogicalRow, w LedgerWriter, opts Options) (Stats, error) {
	c := NewConverter(opts)
	for _, row := range rows {
		if err := writeAll(w, c.Push(row)); err != nil {
			return c.Stats(), err
		}
	}
	if err := writeAll(w, c.Close()); err != nil {
		return c.Stats(), err
	}
	stats := c.Stats()
	c.emit(0, SeverityInfo, nil, "rows: %d, converted: %d, errors: %d", stats.Total, stats.Converted, stats.Errors)
	return stats, nil
}

func writeAll(w LedgerWriter, entries []LedgerEntry) error {
	for _, e := range entries {
		if err := w.Write(e); err != nil {
			return fmt.Errorf("cannot write ledger entry %q: %w", e.Description, err)
		}
	}
	return nil
}
