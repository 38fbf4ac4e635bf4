package nova2k

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
)

// Ledger formats.
const (
	FormatCSV   = "csv"
	FormatJSONL = "jsonl"
)

// LedgerEncoder is a LedgerWriter that buffers its output.
type LedgerEncoder interface {
	LedgerWriter
	// Flush writes any buffered data. It must be called once all entries
	// have been written.
	Flush() error
}

// NewLedgerEncoder returns the encoder of format writing to w.
func NewLedgerEncoder(format string, w io.Writer) (LedgerEncoder, error) {
	switch format {
	case FormatCSV, "":
		return NewCSVLedgerWriter(w), nil
	case FormatJSONL:
		return NewJSONLLedgerWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown ledger format: %q", format)
	}
}

// CSVLedgerWriter writes entries as the ledger CSV, LedgerHeader first.
type CSVLedgerWriter struct {
	w      *csv.Writer
	header bool
}

func NewCSVLedgerWriter(w io.Writer) *CSVLedgerWriter {
	return &CSVLedgerWriter{w: csv.NewWriter(w)}
}

func (l *CSVLedgerWriter) writeHeader() error {
	if l.header {
		return nil
	}
	l.header = true
	if err := l.w.Write(LedgerHeader); err != nil {
		return fmt.Errorf("cannot write ledger header: %w", err)
	}
	return nil
}

func (l *CSVLedgerWriter) Write(e LedgerEntry) error {
	if err := l.writeHeader(); err != nil {
		return err
	}
	return l.w.Write(e.Record())
}

// Flush writes the header even if there was no entry.
func (l *CSVLedgerWriter) Flush() error {
	if err := l.writeHeader(); err != nil {
		return err
	}
	l.w.Flush()
	return l.w.Error()
}

// JSONLLedgerWriter writes one JSON object per entry and per line.
type JSONLLedgerWriter struct {
	w io.Writer
}

func NewJSONLLedgerWriter(w io.Writer) *JSONLLedgerWriter {
	return &JSONLLedgerWriter{w: w}
}

func (l *JSONLLedgerWriter) Write(e LedgerEntry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger entry: %w", err)
	}
	if _, err := l.w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write ledger entry: %w", err)
	}
	return nil
}

func (l *JSONLLedgerWriter) Flush() error { return nil }

// MarshalJSON writes the entry fields in ledger order, empty fields omitted.
func (e LedgerEntry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", e.Date)
	w.Optional("sentAmount", e.SentAmount)
	w.Optional("sentCurrency", e.SentCurrency)
	w.Optional("receivedAmount", e.ReceivedAmount)
	w.Optional("receivedCurrency", e.ReceivedCurrency)
	w.Optional("feeAmount", e.FeeAmount)
	w.Optional("feeCurrency", e.FeeCurrency)
	w.Optional("netWorthAmount", e.NetWorthAmount)
	w.Optional("netWorthCurrency", e.NetWorthCurrency)
	w.Optional("label", e.Label)
	w.Optional("description", e.Description)
	w.Optional("txHash", e.TxHash)
	return w.MarshalJSON()
}

// Entries is a LedgerWriter keeping entries in memory.
type Entries []LedgerEntry

func (l *Entries) Write(e LedgerEntry) error {
	*l = append(*l, e)
	return nil
}

// MultiLedgerWriter duplicates every entry to all writers.
func MultiLedgerWriter(writers ...LedgerWriter) LedgerWriter {
	return multiWriter(writers)
}

type multiWriter []LedgerWriter

func (m multiWriter) Write(e LedgerEntry) error {
	for _, w := range m {
		if err := w.Write(e); err != nil {
			return err
		}
	}
	return nil
}
