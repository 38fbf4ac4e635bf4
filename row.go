package nova2k

import "strings"

// RawRow is one physical line of a table, as returned by a table extractor.
//
// Cells are position significant, column 0 holds the date. Cells missing in
// the source are empty strings.
type RawRow []string

// IsBlank reports whether no cell of r holds any text.
func (r RawRow) IsBlank() bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Cell returns the cell at index i, or "" if r is shorter.
func (r RawRow) Cell(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// Page is the ordered list of rows extracted from one page of a statement.
type Page []RawRow

// LogicalRow is a complete statement transaction.
type LogicalRow struct {
	Date     string // DD/MM/YYYY HH:MM:SS
	Type     string // free text, may hold a trading pair: "Compra(BTC/BRL)"
	Currency string
	Value    string // free text: sign, separators, "(≈R$...)" annotation
	Status   string
}

// LogicalFields is the number of fields of a LogicalRow.
const LogicalFields = 5

// StatementHeader is the header of the intermediate statement CSV.
var StatementHeader = []string{"Data", "Tipo", "Moeda", "Valor", "Status"}

// RowFromRecord builds a LogicalRow from the first five fields of rec.
// It returns false when rec has fewer than five fields.
func RowFromRecord(rec []string) (LogicalRow, bool) {
	if len(rec) < LogicalFields {
		return LogicalRow{}, false
	}
	return LogicalRow{
		Date:     rec[0],
		Type:     rec[1],
		Currency: rec[2],
		Value:    rec[3],
		Status:   rec[4],
	}, true
}

// Record returns the row fields in statement order.
func (r LogicalRow) Record() []string {
	return []string{r.Date, r.Type, r.Currency, r.Value, r.Status}
}
