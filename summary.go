package nova2k

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// CurrencyTotal sums the amounts of one currency over a ledger.
type CurrencyTotal struct {
	Currency string
	// Fiat is true for ISO 4217 currencies.
	Fiat     bool
	Sent     decimal.Decimal
	Received decimal.Decimal
	Fees     decimal.Decimal
}

// Net returns what was received minus what was sent and paid in fees.
func (t CurrencyTotal) Net() decimal.Decimal {
	return t.Received.Sub(t.Sent).Sub(t.Fees)
}

// Format formats d in the currency of t: fiat amounts are rounded to the
// currency fraction and displayed with its symbol, others are displayed in
// full.
func (t CurrencyTotal) Format(d decimal.Decimal) string {
	if !t.Fiat {
		return d.String() + " " + t.Currency
	}
	cur := money.GetCurrency(t.Currency)
	factor := decimal.New(1, int32(cur.Fraction))
	return money.New(d.Mul(factor).Round(0).IntPart(), cur.Code).Display()
}

// IsFiat reports whether code is a known ISO 4217 currency.
func IsFiat(code string) bool {
	return code != "" && money.GetCurrency(code) != nil
}

// Summary describes a converted ledger.
type Summary struct {
	Stats Stats
	// Labels counts the entries per label, LabelNone for unknown types.
	Labels map[Label]int
	// Invalid counts the invalid row sentinels.
	Invalid int
	// Currencies is sorted by currency code.
	Currencies []CurrencyTotal
}

// NewSummary totals entries. Entries must hold valid amounts, as produced
// by a Converter.
func NewSummary(stats Stats, entries []LedgerEntry) (*Summary, error) {
	s := &Summary{Stats: stats, Labels: make(map[Label]int)}
	totals := make(map[string]*CurrencyTotal)
	total := func(code string) *CurrencyTotal {
		t, ok := totals[code]
		if !ok {
			t = &CurrencyTotal{Currency: code, Fiat: IsFiat(code)}
			totals[code] = t
		}
		return t
	}
	add := func(sum *decimal.Decimal, a Amount) error {
		d, err := a.Decimal()
		if err != nil {
			return err
		}
		*sum = sum.Add(d)
		return nil
	}

	for _, e := range entries {
		if e.IsInvalid() {
			s.Invalid++
			continue
		}
		s.Labels[e.Label]++
		if e.SentAmount != "" {
			if err := add(&total(e.SentCurrency).Sent, e.SentAmount); err != nil {
				return nil, fmt.Errorf("entry %q: %w", e.Description, err)
			}
		}
		if e.ReceivedAmount != "" {
			if err := add(&total(e.ReceivedCurrency).Received, e.ReceivedAmount); err != nil {
				return nil, fmt.Errorf("entry %q: %w", e.Description, err)
			}
		}
		if e.FeeAmount != "" {
			if err := add(&total(e.FeeCurrency).Fees, e.FeeAmount); err != nil {
				return nil, fmt.Errorf("entry %q: %w", e.Description, err)
			}
		}
	}

	for _, t := range totals {
		s.Currencies = append(s.Currencies, *t)
	}
	slices.SortFunc(s.Currencies, func(a, b CurrencyTotal) int { return cmp.Compare(a.Currency, b.Currency) })
	return s, nil
}

// SortedLabels returns the labels found, in alphabetical order.
func (s *Summary) SortedLabels() []Label {
	labels := make([]Label, 0, len(s.Labels))
	for l := range s.Labels {
		labels = append(labels, l)
	}
	slices.Sort(labels)
	return labels
}
