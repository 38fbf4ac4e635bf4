// Package pdftable extracts the transaction table of a statement PDF.
//
// PDF pages have no notion of table: the text runs of each page are grouped
// into lines by their vertical position, then into cells by the horizontal
// position of the columns of the table header.
package pdftable

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/dslipak/pdf"
	"github.com/rivsoncs/nova2k"
)

// ErrNoHeader is returned when no page before the current one had a table
// header to take the columns from.
var ErrNoHeader = errors.New("table header not found")

// DefaultLineTolerance is the vertical distance under which two text runs
// belong to the same line, in PDF points.
const DefaultLineTolerance = 2.0

// headerColumns are the column titles, in column order. A title matches
// the start of a header word, accent and case insensitive.
var headerColumns = [nova2k.LogicalFields][]string{
	{"data", "date"},
	{"tipo", "type"},
	{"moeda", "currency", "coin"},
	{"valor", "value", "amount"},
	{"status", "estado"},
}

// Extractor reads statement tables from PDF files.
// Its zero value is ready to use.
type Extractor struct {
	// LineTolerance overrides DefaultLineTolerance when positive.
	LineTolerance float64
}

// Extract implements nova2k.TableExtractor.
func (e Extractor) Extract(ctx context.Context, path string) ([]nova2k.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	r, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("cannot read pdf %q: %w", path, err)
	}

	tol := e.LineTolerance
	if tol <= 0 {
		tol = DefaultLineTolerance
	}

	var pages []nova2k.Page
	var columns []float64
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		texts, err := pageTexts(p)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		var page nova2k.Page
		page, columns = TableRows(GroupLines(texts, tol), columns)
		if columns == nil {
			return nil, fmt.Errorf("page %d: %w", i, ErrNoHeader)
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// pageTexts returns the text runs of p. The pdf reader panics on malformed
// content streams.
func pageTexts(p pdf.Page) (texts []pdf.Text, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed page content: %v", r)
		}
	}()
	return p.Content().Text, nil
}

// Word is a run of text on a line, starting at X.
type Word struct {
	X float64
	S string
}

// Line is the list of words sharing a baseline, left to right.
type Line []Word

func (l Line) String() string {
	parts := make([]string, len(l))
	for i, w := range l {
		parts[i] = w.S
	}
	return strings.Join(parts, " ")
}

// GroupLines groups text runs into lines, top to bottom. Runs closer than a
// space width are joined into words.
func GroupLines(texts []pdf.Text, tol float64) []Line {
	sorted := slices.Clone(texts)
	// PDF origin is at the bottom left of the page.
	slices.SortStableFunc(sorted, func(a, b pdf.Text) int {
		return cmp.Or(cmp.Compare(b.Y, a.Y), cmp.Compare(a.X, b.X))
	})

	var lines []Line
	var run []pdf.Text
	flush := func() {
		if len(run) > 0 {
			lines = append(lines, words(run))
		}
		run = nil
	}
	for _, t := range sorted {
		if len(run) > 0 && math.Abs(run[0].Y-t.Y) > tol {
			flush()
		}
		run = append(run, t)
	}
	flush()
	return lines
}

// words joins the runs of one line into words.
func words(run []pdf.Text) Line {
	slices.SortStableFunc(run, func(a, b pdf.Text) int { return cmp.Compare(a.X, b.X) })

	var line Line
	var sb strings.Builder
	start, end := 0.0, 0.0
	for i, t := range run {
		gap := t.X - end
		space := t.FontSize * 0.25
		if i > 0 && gap > space {
			line = appendWord(line, start, sb.String())
			sb.Reset()
		}
		if sb.Len() == 0 {
			start = t.X
		}
		sb.WriteString(t.S)
		end = t.X + t.W
	}
	return appendWord(line, start, sb.String())
}

func appendWord(l Line, x float64, s string) Line {
	if s = strings.TrimSpace(s); s == "" {
		return l
	}
	return append(l, Word{X: x, S: s})
}

// Columns returns the left position of each column when l is the table
// header.
func Columns(l Line) ([]float64, bool) {
	cols := make([]float64, nova2k.LogicalFields)
	found := 0
	next := 0
	for _, w := range l {
		if next == len(headerColumns) {
			break
		}
		text := nova2k.NormalizeText(w.S)
		for _, title := range headerColumns[next] {
			if strings.HasPrefix(text, title) {
				cols[next] = w.X
				found++
				next++
				break
			}
		}
	}
	if found != nova2k.LogicalFields {
		return nil, false
	}
	return cols, true
}

// TableRows bins the lines of a page into rows. The table header and the
// lines above it are dropped. A page without header keeps all its lines,
// binned with the columns of the previous page. The columns used are
// returned, nil if there are none.
func TableRows(lines []Line, columns []float64) (nova2k.Page, []float64) {
	start := 0
	for i, l := range lines {
		if cols, ok := Columns(l); ok {
			columns, start = cols, i+1
			break
		}
	}
	if columns == nil {
		return nil, nil
	}
	page := make(nova2k.Page, 0, len(lines)-start)
	for _, l := range lines[start:] {
		page = append(page, Bin(l, columns))
	}
	return page, columns
}

// Bin splits l into cells: a word belongs to the last column starting
// before it. Words left of the first column go to the first cell.
func Bin(l Line, columns []float64) nova2k.RawRow {
	const slack = 1.0
	cells := make([][]string, len(columns))
	for _, w := range l {
		col := 0
		for i, x := range columns {
			if w.X+slack >= x {
				col = i
			}
		}
		cells[col] = append(cells[col], w.S)
	}
	row := make(nova2k.RawRow, len(columns))
	for i, c := range cells {
		row[i] = strings.Join(c, " ")
	}
	return row
}
