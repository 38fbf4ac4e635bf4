package nova2k

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// InvalidDate replaces the date of a row whose date cell cannot be parsed.
const InvalidDate = "Invalid Date"

const (
	// statementLayout is the date layout used by the exchange statements.
	statementLayout = "02/01/2006 15:04:05"
	// ledgerLayout is the date layout expected by the ledger import.
	ledgerLayout = "2006-01-02 15:04 UTC"
)

var (
	datePattern   = regexp.MustCompile(`^\d{2}/\d{2}/\d{4} \d{2}:\d{2}:\d{2}$`)
	approxPattern = regexp.MustCompile(`\(≈R\$[^)]*\)`)
	numberPattern = regexp.MustCompile(`[+-]?\s*\d[\d.,]*`)
	spacePattern  = regexp.MustCompile(`\s+`)
	pairPattern   = regexp.MustCompile(`\(([A-Z0-9]+)/([A-Z0-9]+)\)`)
)

// StripAccents decomposes s and drops every combining mark, "Depósito" becomes
// "Deposito". Case is preserved.
func StripAccents(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeText returns s without accents, in lower case, and with every
// run of white space, line breaks included, replaced by a single space.
//
// It is meant for keyword matching only, normalized text is never written to
// the ledger.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(StripAccents(s))), " ")
}

// IsStatementDate reports whether s, once trimmed, is exactly a statement
// date "DD/MM/YYYY HH:MM:SS".
func IsStatementDate(s string) bool {
	return datePattern.MatchString(strings.TrimSpace(s))
}

// ParseDate converts a statement date "DD/MM/YYYY HH:MM:SS" into the ledger
// format "YYYY-MM-DD HH:MM UTC".
//
// Any failure yields [InvalidDate], ParseDate never fails the conversion.
func ParseDate(s string) string {
	t, err := time.Parse(statementLayout, s)
	if err != nil {
		return InvalidDate
	}
	return t.Format(ledgerLayout)
}

// ExtractNumericValue returns the first number found in text, normalized to
// a '.' decimal point and no thousands separator: "1.234,56" gives "1234.56"
// and "+1,5" gives "+1.5". The sign, if any, is kept.
//
// The approximate value annotation "(≈R$...)" is ignored. An empty Amount
// means that text contains no number.
//
// Digits are never changed, only separators are.
func ExtractNumericValue(text string) Amount {
	text = approxPattern.ReplaceAllString(text, "")

	raw := numberPattern.FindString(text)
	if raw == "" {
		return ""
	}
	raw = spacePattern.ReplaceAllString(raw, "")
	raw = strings.ReplaceAll(raw, ",", ".")

	// with more than one '.', all but the last are thousands separators.
	if parts := strings.Split(raw, "."); len(parts) > 2 {
		last := len(parts) - 1
		raw = strings.Join(parts[:last], "") + "." + parts[last]
	}
	return Amount(raw)
}

// TradingPair is the market of a buy or sell order, like BTC/BRL.
type TradingPair struct {
	Base  string
	Quote string
}

// IsZero reports whether no pair was found.
func (p TradingPair) IsZero() bool { return p.Base == "" && p.Quote == "" }

func (p TradingPair) String() string {
	if p.IsZero() {
		return ""
	}
	return p.Base + "/" + p.Quote
}

// ExtractTradingPair finds the "(BASE/QUOTE)" market in a type like
// "Compra(BTC/BRL)". The zero TradingPair is returned when there is none.
func ExtractTradingPair(typeText string) TradingPair {
	m := pairPattern.FindStringSubmatch(strings.ToUpper(typeText))
	if m == nil {
		return TradingPair{}
	}
	return TradingPair{Base: m[1], Quote: m[2]}
}
