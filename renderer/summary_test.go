package renderer

import (
	"strings"
	"testing"

	"github.com/rivsoncs/nova2k"
	"github.com/shopspring/decimal"
)

func TestSummaryMarkdown(t *testing.T) {
	s := &nova2k.Summary{
		Stats:   nova2k.Stats{Total: 7, Converted: 4, Errors: 1},
		Labels:  map[nova2k.Label]int{nova2k.LabelBuy: 2, nova2k.LabelNone: 1},
		Invalid: 1,
		Currencies: []nova2k.CurrencyTotal{
			{Currency: "BTC", Received: decimal.RequireFromString("0.0015"), Sent: decimal.RequireFromString("0.5")},
		},
	}
	events := []nova2k.Event{
		{Row: 2, Severity: nova2k.SeverityInfo, Message: "processed"},
		{Row: 6, Severity: nova2k.SeverityError, Message: "invalid row: 2 fields, want 5"},
		{Row: 9, Severity: nova2k.SeverityWarning, Message: `unknown transaction type: "Mystery"`},
	}

	got := SummaryMarkdown(s, events)

	for _, want := range []string{
		"# Conversion Summary",
		"## Labels",
		"(unknown type)",
		"## Currencies",
		"0.0015 BTC",
		"-0.4985 BTC",
		"## Problems",
		"**error** row 6: invalid row",
		`row 9: unknown transaction type: "Mystery"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("SummaryMarkdown() does not contain %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "processed") {
		t.Errorf("SummaryMarkdown() contains info events:\n%s", got)
	}
}

func TestSummaryMarkdownEmpty(t *testing.T) {
	got := SummaryMarkdown(&nova2k.Summary{}, nil)
	if strings.Contains(got, "## ") {
		t.Errorf("SummaryMarkdown() of an empty summary has sections:\n%s", got)
	}
}
