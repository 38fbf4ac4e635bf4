package nova2k

import (
	"regexp"
	"strings"
)

const (
	// WithdrawalFeeType is the canonical type of crypto withdrawal fees.
	WithdrawalFeeType = "Taxa de saque de criptomoedas"
	// TransactionFeeType is the canonical type of trading fees.
	TransactionFeeType = "Taxa de transacao"
)

var (
	digitSeparator = regexp.MustCompile(`(\d)\s+([,.])`)
	separatorDigit = regexp.MustCompile(`([,.])\s+(\d)`)
	openParen      = regexp.MustCompile(`\(\s+`)
	closeParen     = regexp.MustCompile(`\s+\)`)
)

// numericMarks are the characters that make a cell a value cell rather than
// a text cell.
const numericMarks = "0123456789R$"

// cleanRow normalizes every cell of an assembled row.
func cleanRow(row RawRow) []string {
	cleaned := make([]string, 0, len(row))
	for i, cell := range row {
		cleaned = append(cleaned, cleanCell(i, cell))
	}
	return cleaned
}

// cleanCell normalizes the cell at column i.
//
// Line breaks left by the extractors become spaces. Value cells get their
// spacing fixed. Text cells lose their accents, and the type column gets its
// fee wording, often fragmented by line merges, replaced by the canonical
// one.
func cleanCell(i int, cell string) string {
	text := strings.Join(strings.Fields(cell), " ")
	if text == "" {
		return ""
	}

	if strings.ContainsAny(text, numericMarks) {
		return cleanValue(text)
	}

	text = StripAccents(text)
	if i == 1 {
		n := strings.ToLower(text)
		switch {
		case strings.Contains(n, "taxa de saque"):
			text = WithdrawalFeeType
		case strings.Contains(n, "taxa de transacao"):
			text = TransactionFeeType
		}
	}
	return text
}

// cleanValue tightens the spacing of a value cell: "1 .234, 56 ( ≈R$ 3 )"
// becomes "1.234,56 (≈R$ 3)".
func cleanValue(value string) string {
	value = digitSeparator.ReplaceAllString(value, "$1$2")
	value = separatorDigit.ReplaceAllString(value, "$1$2")
	value = openParen.ReplaceAllString(value, "(")
	value = closeParen.ReplaceAllString(value, ")")
	return strings.Join(strings.Fields(value), " ")
}
