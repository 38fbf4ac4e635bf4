package nova2k

import (
	"strings"
	"unicode"
)

// historyMarkers flag stray page annotations ("Histórico: ...") that are
// never transactions.
var historyMarkers = []string{"historico:", "history:"}

// continuationSuffixes end a cell whose content goes on in the next line.
// They are compared against the lower cased cell.
var continuationSuffixes = []string{"(", "≈", "≈r$", "+"}

// headerTerms identify the table header repeated on each page.
var headerTerms = []string{"tipo", "moeda", "valor", "status", "data", "historytrades"}

// minAcceptedFields is the minimum number of populated fields of an
// assembled row: date, type, currency and value.
const minAcceptedFields = 4

// hasHistoryMarker reports whether any cell holds a history annotation.
func hasHistoryMarker(r RawRow) bool {
	for _, c := range r {
		n := NormalizeText(c)
		for _, m := range historyMarkers {
			if strings.Contains(n, m) {
				return true
			}
		}
	}
	return false
}

// IsHeaderRow reports whether r looks like the table header: at least three
// cells mentioning at least two header terms.
func IsHeaderRow(r RawRow) bool {
	if len(r) < 3 {
		return false
	}
	text := strings.ToLower(strings.Join(r, " "))
	matches := 0
	for _, term := range headerTerms {
		if strings.Contains(text, term) {
			matches++
		}
	}
	return matches >= 2
}

// Reconstructor merges the physical lines of extracted tables back into
// logical statement rows.
type Reconstructor struct {
	emitter
	opened   int
	rejected int
}

// NewReconstructor returns a Reconstructor reporting to sink.
func NewReconstructor(sink EventSink) *Reconstructor {
	return &Reconstructor{emitter: emitter{sink: sink}}
}

// Opened returns the number of date anchored rows seen by the last call to
// Reconstruct.
func (r *Reconstructor) Opened() int { return r.opened }

// Rejected returns the number of assembled rows rejected by the last call to
// Reconstruct.
func (r *Reconstructor) Rejected() int { return r.rejected }

// Reconstruct returns the logical rows found in pages, in order.
//
// Pages are processed as one stream, so a transaction broken across a page
// boundary is still merged.
func (r *Reconstructor) Reconstruct(pages ...Page) []LogicalRow {
	r.opened, r.rejected = 0, 0
	rows := r.filter(pages)

	var out []LogicalRow
	for idx := 0; idx < len(rows); {
		assembled, next, ok := r.assemble(rows, idx)
		if ok {
			if row, accepted := r.accept(idx+1, assembled); accepted {
				out = append(out, row)
			}
		}
		idx = next
	}
	r.emit(0, SeverityInfo, nil, "reconstructed %d rows out of %d opened", len(out), r.opened)
	return out
}

// filter flattens pages, dropping blank rows and history annotations.
func (r *Reconstructor) filter(pages []Page) []RawRow {
	var rows []RawRow
	for p, page := range pages {
		for _, row := range page {
			if row.IsBlank() {
				continue
			}
			if hasHistoryMarker(row) {
				r.emit(0, SeverityDebug, row, "page %d: dropping history annotation", p+1)
				continue
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// assemble opens a transaction at rows[start] and absorbs the continuation
// lines that follow. It returns the assembled row, the index of the next row
// to process, and false if rows[start] does not open a transaction.
func (r *Reconstructor) assemble(rows []RawRow, start int) (RawRow, int, bool) {
	current := rows[start]
	if !IsStatementDate(current.Cell(0)) {
		if IsHeaderRow(current) {
			r.emit(start+1, SeverityDebug, current, "skipping table header")
		} else {
			r.emit(start+1, SeverityDebug, current, "skipping row without a date")
		}
		return nil, start + 1, false
	}
	r.opened++

	current = append(RawRow(nil), current...)
	next := start + 1
	for next < len(rows) && shouldAbsorb(current, rows[next]) {
		current = absorb(current, rows[next])
		next++
	}
	return current, next, true
}

// accept cleans an assembled row and validates it.
func (r *Reconstructor) accept(index int, assembled RawRow) (LogicalRow, bool) {
	if !IsStatementDate(assembled.Cell(0)) {
		r.rejected++
		r.emit(index, SeverityWarning, assembled, "rejecting row: invalid date cell %q", assembled.Cell(0))
		return LogicalRow{}, false
	}
	cleaned := cleanRow(assembled)

	populated := 0
	for _, c := range cleaned {
		if c != "" {
			populated++
		}
	}
	if populated < minAcceptedFields {
		r.rejected++
		r.emit(index, SeverityWarning, assembled, "rejecting row: %d populated fields", populated)
		return LogicalRow{}, false
	}

	for len(cleaned) < LogicalFields {
		cleaned = append(cleaned, "")
	}
	row, _ := RowFromRecord(cleaned)
	return row, true
}

// shouldAbsorb reports whether candidate continues the current row.
func shouldAbsorb(current, candidate RawRow) bool {
	if candidate.IsBlank() {
		return false
	}
	// a date starts the next transaction.
	if IsStatementDate(candidate.Cell(0)) {
		return false
	}
	if hasHistoryMarker(candidate) {
		return false
	}
	// the header repeated at the top of the next page.
	if IsHeaderRow(candidate) {
		return false
	}
	if len(current) < LogicalFields {
		return true
	}
	for i, cell := range current {
		text := strings.ToLower(strings.TrimSpace(cell))
		if text == "" {
			continue
		}
		if strings.HasSuffix(text, "-") {
			return true
		}
		if i == 1 && strings.Contains(NormalizeText(text), "taxa de") {
			return true
		}
		for _, suffix := range continuationSuffixes {
			if strings.HasSuffix(text, suffix) {
				return true
			}
		}
	}
	return false
}

// absorb merges next into current, cell by cell.
func absorb(current, next RawRow) RawRow {
	n := min(len(current), len(next))
	for i := 0; i < n; i++ {
		if strings.TrimSpace(next[i]) != "" {
			current[i] = mergeCells(current[i], next[i])
		}
	}
	if len(next) > len(current) {
		current = append(current, next[len(current):]...)
	}
	return current
}

// mergeCells joins a cell with its continuation line.
func mergeCells(a, b string) string {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return a + b
	}

	// word broken by a hyphen.
	if strings.HasSuffix(a, "-") {
		return a[:len(a)-1] + b
	}

	// "Taxa de" / "saque ..." is a phrase, not a number.
	if strings.Contains(NormalizeText(a), "taxa de") && strings.Contains(NormalizeText(b), "saque") {
		return a + " " + b
	}

	if hasDigit(a) && hasDigit(b) {
		a = strings.TrimRight(a, "(≈R$")
		if strings.HasPrefix(b, "(") || strings.HasPrefix(b, "≈") {
			return a + " " + b
		}
		return a + b
	}
	return a + " " + b
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}
