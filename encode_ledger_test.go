package nova2k

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCSVLedgerWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVLedgerWriter(&buf)
	entries := []LedgerEntry{
		{Date: "2024-03-17 09:00 UTC", ReceivedAmount: "1000.00", ReceivedCurrency: "BRL", Label: LabelDeposit, Description: "Depósito em Reais"},
		{Date: "2024-03-19 08:00 UTC", FeeAmount: "0.00001", FeeCurrency: "BTC", Label: LabelWithdrawalFee, Description: "Taxa de saque, criptomoedas"},
		InvalidRowEntry(),
	}
	for _, e := range entries {
		if err := w.Write(e); err != nil {
			t.Fatalf("Write() returned an unexpected error: %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() returned an unexpected error: %v", err)
	}

	want := strings.Join(LedgerHeader, ",") + `
2024-03-17 09:00 UTC,,,1000.00,BRL,,,,,deposit,Depósito em Reais,
2024-03-19 08:00 UTC,,,,,0.00001,BTC,,,withdrawal-fee,"Taxa de saque, criptomoedas",
` + strings.Repeat(InvalidRow+",", len(LedgerHeader)-1) + InvalidRow + "\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("CSV ledger mismatch (-want +got):\n%s", diff)
	}
}

func TestMultiLedgerWriter(t *testing.T) {
	var buf bytes.Buffer
	enc := NewJSONLLedgerWriter(&buf)
	var entries Entries
	w := MultiLedgerWriter(enc, &entries)

	e := LedgerEntry{Date: "2024-03-18 11:00 UTC", ReceivedAmount: "0.1", ReceivedCurrency: "ADA", Label: LabelReward, Description: "Staking"}
	if err := w.Write(e); err != nil {
		t.Fatalf("Write() returned an unexpected error: %v", err)
	}
	if diff := cmp.Diff(Entries{e}, entries); diff != "" {
		t.Errorf("collected entries mismatch (-want +got):\n%s", diff)
	}
	if got := strings.Count(buf.String(), "\n"); got != 1 {
		t.Errorf("JSONL output has %d lines, want 1", got)
	}
}

var errFull = errors.New("full")

type failingWriter struct{}

func (failingWriter) Write(LedgerEntry) error { return errFull }

func TestMultiLedgerWriterError(t *testing.T) {
	var entries Entries
	w := MultiLedgerWriter(failingWriter{}, &entries)
	if err := w.Write(LedgerEntry{Date: "2024-03-18 11:00 UTC"}); !errors.Is(err, errFull) {
		t.Errorf("Write() = %v, want %v", err, errFull)
	}
	if len(entries) != 0 {
		t.Errorf("entries after a failed write = %v, want none", entries)
	}
}

func TestConvertWriteError(t *testing.T) {
	_, err := Convert(strings.NewReader(statementCSV), failingWriter{}, Options{})
	if !errors.Is(err, errFull) {
		t.Errorf("Convert() = %v, want %v", err, errFull)
	}
}
