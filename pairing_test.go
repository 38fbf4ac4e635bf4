package nova2k

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPairing(t *testing.T) {
	const (
		d1  = "16/03/2024 10:00:00"
		ld1 = "2024-03-16 10:00 UTC"
		d2  = "17/03/2024 11:00:00"
		ld2 = "2024-03-17 11:00 UTC"
	)

	tests := []struct {
		name string
		rows []LogicalRow
		want []LedgerEntry
	}{
		{
			name: "fee then both legs",
			rows: []LogicalRow{
				{d1, "Taxa de Convert", "BTC", "-0,0001", "Concluido"},
				{d1, "Convert", "BTC", "-0,5", "Concluido"},
				{d1, "Convert", "ETH", "+8", "Concluido"},
			},
			want: []LedgerEntry{
				{Date: ld1, SentAmount: "0.5", SentCurrency: "BTC", ReceivedAmount: "8", ReceivedCurrency: "ETH", FeeAmount: "0.0001", FeeCurrency: "BTC", Label: LabelTrade, Description: "Convert"},
			},
		},
		{
			name: "credit leg first",
			rows: []LogicalRow{
				{d1, "Convert", "ETH", "+8", "Concluido"},
				{d1, "Convert", "BTC", "-0,5", "Concluido"},
			},
			want: []LedgerEntry{
				{Date: ld1, SentAmount: "0.5", SentCurrency: "BTC", ReceivedAmount: "8", ReceivedCurrency: "ETH", Label: LabelTrade, Description: "Convert"},
			},
		},
		{
			name: "fee of another date is not applied",
			rows: []LogicalRow{
				{d2, "Taxa de Convert", "BTC", "-0,0001", "Concluido"},
				{d1, "Convert", "BTC", "-0,5", "Concluido"},
				{d1, "Convert", "ETH", "+8", "Concluido"},
			},
			want: []LedgerEntry{
				{Date: ld1, SentAmount: "0.5", SentCurrency: "BTC", ReceivedAmount: "8", ReceivedCurrency: "ETH", Label: LabelTrade, Description: "Convert"},
			},
		},
		{
			name: "last fee wins",
			rows: []LogicalRow{
				{d1, "Taxa de Convert", "BTC", "-0,0001", "Concluido"},
				{d1, "Taxa de Convert", "BTC", "-0,0002", "Concluido"},
				{d1, "Convert", "BTC", "-0,5", "Concluido"},
				{d1, "Convert", "ETH", "+8", "Concluido"},
			},
			want: []LedgerEntry{
				{Date: ld1, SentAmount: "0.5", SentCurrency: "BTC", ReceivedAmount: "8", ReceivedCurrency: "ETH", FeeAmount: "0.0002", FeeCurrency: "BTC", Label: LabelTrade, Description: "Convert"},
			},
		},
		{
			name: "interrupted conversion is flushed first",
			rows: []LogicalRow{
				{d1, "Convert", "BTC", "-0,5", "Concluido"},
				{d2, "Airdrop", "ABC", "+5", "Concluido"},
			},
			want: []LedgerEntry{
				{Date: ld1, SentAmount: "0.5", SentCurrency: "BTC", Label: LabelTrade, Description: "Convert"},
				{Date: ld2, ReceivedAmount: "5", ReceivedCurrency: "ABC", Label: LabelAirdrop, Description: "Airdrop"},
			},
		},
		{
			name: "lone leg flushed at the end",
			rows: []LogicalRow{
				{d2, "Airdrop", "ABC", "+5", "Concluido"},
				{d1, "Convert", "BTC", "-0,5", "Concluido"},
			},
			want: []LedgerEntry{
				{Date: ld2, ReceivedAmount: "5", ReceivedCurrency: "ABC", Label: LabelAirdrop, Description: "Airdrop"},
				{Date: ld1, SentAmount: "0.5", SentCurrency: "BTC", Label: LabelTrade, Description: "Convert"},
			},
		},
		{
			// both legs debit: the second overwrites the sent side.
			name: "second leg of the same sign",
			rows: []LogicalRow{
				{d1, "Convert", "BTC", "-0,5", "Concluido"},
				{d1, "Convert", "ETH", "-1", "Concluido"},
			},
			want: []LedgerEntry{
				{Date: ld1, SentAmount: "1", SentCurrency: "ETH", Label: LabelTrade, Description: "Convert"},
			},
		},
		{
			name: "two conversions in a row",
			rows: []LogicalRow{
				{d1, "Convert", "BTC", "-0,5", "Concluido"},
				{d1, "Convert", "ETH", "+8", "Concluido"},
				{d2, "Convert", "ETH", "-8", "Concluido"},
				{d2, "Convert", "USDT", "+20000", "Concluido"},
			},
			want: []LedgerEntry{
				{Date: ld1, SentAmount: "0.5", SentCurrency: "BTC", ReceivedAmount: "8", ReceivedCurrency: "ETH", Label: LabelTrade, Description: "Convert"},
				{Date: ld2, SentAmount: "8", SentCurrency: "ETH", ReceivedAmount: "20000", ReceivedCurrency: "USDT", Label: LabelTrade, Description: "Convert"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Entries
			if _, err := ConvertRows(tt.rows, &got, Options{}); err != nil {
				t.Fatalf("ConvertRows() returned an unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, []LedgerEntry(got)); diff != "" {
				t.Errorf("ConvertRows() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPairingStepDoesNotShareState(t *testing.T) {
	c := NewClassifier(DefaultRules(DefaultKeywords()), Discard)
	p := NewPairing(DefaultKeywords())

	first, out := p.Step(c, 1, PairingState{}, LogicalRow{"16/03/2024 10:00:00", "Convert", "BTC", "-0,5", ""})
	if len(out) != 0 || first.Idle() {
		t.Fatalf("Step() = %v, %v, want a buffered conversion", first, out)
	}

	second, out := p.Step(c, 2, first, LogicalRow{"16/03/2024 10:00:00", "Convert", "ETH", "+8", ""})
	if len(out) != 1 || !second.Idle() {
		t.Fatalf("Step() = %v, %v, want one completed conversion", second, out)
	}
	if first.Buffered.ReceivedAmount != "" {
		t.Errorf("previous state was modified: %+v", *first.Buffered)
	}
}

func TestConverterCloseWarns(t *testing.T) {
	var rec Recorder
	c := NewConverter(Options{Sink: &rec})
	c.Push(LogicalRow{"16/03/2024 10:00:00", "Convert", "BTC", "-0,5", ""})
	if out := c.Close(); len(out) != 1 {
		t.Fatalf("Close() = %v, want the pending conversion", out)
	}
	if rec.Count(SeverityWarning) != 1 {
		t.Errorf("got %d warnings, want 1: %v", rec.Count(SeverityWarning), rec.Events)
	}
	if s := c.Stats(); s.Total != 1 || s.Converted != 1 {
		t.Errorf("Stats() = %+v, want 1 row and 1 entry", s)
	}
}
