package nova2k

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when an amount is not a decimal number.
var ErrInvalidAmount = errors.New("invalid amount")

// Amount is a decimal number kept as text, exactly as found in the statement
// once separators are normalized: optional sign, no thousands separator, '.'
// as decimal point. The empty Amount means "no value".
//
// Amount is never rounded, arithmetic is only performed on its Decimal value.
type Amount string

func (a Amount) IsZero() bool { return a == "" }

// IsNegative reports whether the amount is written with a leading '-'.
//
// The sign of the text is what tells the direction of a leg in the
// statement, so "-0" is negative.
func (a Amount) IsNegative() bool { return strings.HasPrefix(string(a), "-") }

// Unsigned returns the amount without its leading sign characters.
func (a Amount) Unsigned() Amount { return Amount(strings.TrimLeft(string(a), "+-")) }

// Decimal parses the amount. The zero Amount is the zero decimal.
func (a Amount) Decimal() (decimal.Decimal, error) {
	if a == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(string(a))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w %q: %w", ErrInvalidAmount, string(a), err)
	}
	return d, nil
}

func (a Amount) String() string { return string(a) }
