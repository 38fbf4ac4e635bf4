package nova2k

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReconstruct(t *testing.T) {
	pages := []Page{
		{
			{"Histórico: 01/03/2024 - 31/03/2024"},
			{"Data", "Tipo", "Moeda", "Valor", "Status"},
			{"15/03/2024 14:30:45", "Compra(BTC/BRL)", "BTC", "+0,00150000", "Concluído"},
			{"", "", "", "", ""},
			{"15/03/2024 14:31:00", "Taxa de", "BTC", "-0,00001000", "Concluído"},
			{"", "saque de criptomoedas", "", "", ""},
			{"16/03/2024 10:00:00", "Depósito em Reais", "BRL", "+1.000,00 (≈R$", "Concluído"},
		},
		{
			// continuation of the last row of the previous page.
			{"", "", "", "1.000,00)", ""},
			{"17/03/2024 09:00:00", "Compra", "", "", ""},
			{"18/03/2024 09:00:00", "Airdrop", "ABC", "+5"},
		},
	}

	var rec Recorder
	r := NewReconstructor(&rec)
	got := r.Reconstruct(pages...)

	want := []LogicalRow{
		{"15/03/2024 14:30:45", "Compra(BTC/BRL)", "BTC", "+0,00150000", "Concluido"},
		{"15/03/2024 14:31:00", WithdrawalFeeType, "BTC", "-0,00001000", "Concluido"},
		{"16/03/2024 10:00:00", "Depósito em Reais", "BRL", "+1.000,00 1.000,00)", "Concluido"},
		{"18/03/2024 09:00:00", "Airdrop", "ABC", "+5", ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Reconstruct() mismatch (-want +got):\n%s", diff)
	}
	if r.Opened() != 5 {
		t.Errorf("Opened() = %d, want 5", r.Opened())
	}
	if r.Rejected() != 1 {
		t.Errorf("Rejected() = %d, want 1", r.Rejected())
	}
	if len(got)+r.Rejected() != r.Opened() {
		t.Errorf("accepted %d + rejected %d != opened %d", len(got), r.Rejected(), r.Opened())
	}
	if n := rec.Count(SeverityWarning); n != 1 {
		t.Errorf("got %d warnings, want 1: %v", n, rec.Events)
	}
}

func TestReconstructHyphenatedWord(t *testing.T) {
	page := Page{
		{"20/03/2024 12:00:00", "Depósito de Cripto-", "USDT", "+10,00", "Concluído"},
		{"", "moedas", "", "", ""},
	}
	got := NewReconstructor(Discard).Reconstruct(page)
	want := []LogicalRow{
		{"20/03/2024 12:00:00", "Deposito de Criptomoedas", "USDT", "+10,00", "Concluido"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Reconstruct() mismatch (-want +got):\n%s", diff)
	}
}

func TestReconstructStrayLines(t *testing.T) {
	// lines before any date never open a transaction.
	page := Page{
		{"", "saque de criptomoedas", "", "", ""},
		{"page 1 of 3"},
	}
	r := NewReconstructor(Discard)
	if got := r.Reconstruct(page); len(got) != 0 {
		t.Errorf("Reconstruct() = %v, want nothing", got)
	}
	if r.Opened() != 0 {
		t.Errorf("Opened() = %d, want 0", r.Opened())
	}
}

func TestIsHeaderRow(t *testing.T) {
	tests := []struct {
		row  RawRow
		want bool
	}{
		{RawRow{"Data", "Tipo", "Moeda", "Valor", "Status"}, true},
		{RawRow{"HistoryTrades", "Tipo", ""}, true},
		{RawRow{"Data", "Tipo"}, false},
		{RawRow{"15/03/2024 14:30:45", "Compra", "BTC", "+1", "Concluído"}, false},
	}
	for _, tt := range tests {
		if got := IsHeaderRow(tt.row); got != tt.want {
			t.Errorf("IsHeaderRow(%q) = %v, want %v", tt.row, got, tt.want)
		}
	}
}

func TestMergeCells(t *testing.T) {
	tests := []struct {
		a, b, want string
	}{
		{"Cripto-", "moedas", "Criptomoedas"},
		{"Taxa de", "saque", "Taxa de saque"},
		{"1.000,", "50", "1.000,50"},
		{"-0,5 (≈R$", "2,00)", "-0,5 2,00)"},
		{"10", "(≈R$ 3)", "10 (≈R$ 3)"},
		{"Compra", "BTC", "Compra BTC"},
		{"", "x", "x"},
		{" a ", " b ", "a b"},
	}
	for _, tt := range tests {
		if got := mergeCells(tt.a, tt.b); got != tt.want {
			t.Errorf("mergeCells(%q, %q) = %q, want %q", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		col        int
		cell, want string
	}{
		{1, "Depósito de\rcriptomoedas", "Deposito de criptomoedas"},
		{1, "Taxa de\nsaque de criptomoedas", WithdrawalFeeType},
		{3, "+10,00\r(≈R$ 10,00)", "+10,00 (≈R$ 10,00)"},
		{1, "Taxa de saque de cripto moedas", WithdrawalFeeType},
		{1, "Taxa de transação (BTC/BRL)", "Taxa de transação (BTC/BRL)"},
		{1, "taxa de transação", TransactionFeeType},
		{3, "1 .234, 56 ( ≈R$ 3 )", "1.234,56 (≈R$ 3)"},
		{4, "  Concluído ", "Concluido"},
		{4, "", ""},
	}
	for _, tt := range tests {
		if got := cleanCell(tt.col, tt.cell); got != tt.want {
			t.Errorf("cleanCell(%d, %q) = %q, want %q", tt.col, tt.cell, got, tt.want)
		}
	}
}

func TestReconstructLineBreaksInCells(t *testing.T) {
	page := Page{
		{"Data", "Tipo", "Moeda", "Valor", "Status"},
		{"15/03/2024 10:00:00", "Depósito de\rcriptomoedas", "USDT", "+10,00", "Concluído"},
		{"15/03/2024 11:00:00", "Saque de\ncriptomoedas", "USDT", "-4,00", "Concluído"},
	}
	rows := NewReconstructor(Discard).Reconstruct(page)
	want := []LogicalRow{
		{"15/03/2024 10:00:00", "Deposito de criptomoedas", "USDT", "+10,00", "Concluido"},
		{"15/03/2024 11:00:00", "Saque de criptomoedas", "USDT", "-4,00", "Concluido"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("Reconstruct() mismatch (-want +got):\n%s", diff)
	}

	c := NewClassifier(DefaultRules(DefaultKeywords()), Discard)
	wantEntries := []LedgerEntry{
		{Date: "2024-03-15 10:00 UTC", ReceivedAmount: "10.00", ReceivedCurrency: "USDT", Label: LabelDeposit, Description: "Deposito de criptomoedas"},
		{Date: "2024-03-15 11:00 UTC", SentAmount: "4.00", SentCurrency: "USDT", Label: LabelWithdrawal, Description: "Saque de criptomoedas"},
	}
	for i, row := range rows {
		if diff := cmp.Diff(wantEntries[i], c.Classify(i+1, row)); diff != "" {
			t.Errorf("Classify(%q) mismatch (-want +got):\n%s", row.Type, diff)
		}
	}
}

func TestReconstructFeeRowAtPageEnd(t *testing.T) {
	pages := []Page{
		{
			{"Data", "Tipo", "Moeda", "Valor", "Status"},
			{"15/03/2024 10:00:00", "Compra(BTC/BRL)", "BTC", "+0,0015", "Concluído"},
			{"15/03/2024 10:00:00", "Taxa de transação", "BTC", "-0,00001", "Concluído"},
		},
		{
			{"Data", "Tipo", "Moeda", "Valor", "Status"},
			{"16/03/2024 09:00:00", "Airdrop", "ABC", "+5", "Concluído"},
		},
	}
	var rec Recorder
	r := NewReconstructor(&rec)
	got := r.Reconstruct(pages...)
	want := []LogicalRow{
		{"15/03/2024 10:00:00", "Compra(BTC/BRL)", "BTC", "+0,0015", "Concluido"},
		{"15/03/2024 10:00:00", TransactionFeeType, "BTC", "-0,00001", "Concluido"},
		{"16/03/2024 09:00:00", "Airdrop", "ABC", "+5", "Concluido"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Reconstruct() mismatch (-want +got):\n%s", diff)
	}
	if r.Opened() != 3 || r.Rejected() != 0 {
		t.Errorf("Opened() = %d, Rejected() = %d, want 3 and 0", r.Opened(), r.Rejected())
	}
	if n := rec.Count(SeverityWarning); n != 0 {
		t.Errorf("got %d warnings, want none: %v", n, rec.Events)
	}
}
