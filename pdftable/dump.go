package pdftable

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rivsoncs/nova2k"
)

// DefaultRowsPath selects the pages of a tabula JSON export:
//
//	[{"page": 1, "data": [[{"text": "Data"}, {"text": "Tipo"}, ...], ...]}, ...]
const DefaultRowsPath = "$[*].data"

// DumpExtractor reads tables already extracted to JSON by another tool.
type DumpExtractor struct {
	// RowsPath is the JSONPath expression selecting either a list of pages
	// or the rows of a single page. DefaultRowsPath if empty.
	RowsPath string
}

// Extract implements nova2k.TableExtractor.
func (d DumpExtractor) Extract(_ context.Context, path string) ([]nova2k.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeDump(f, d.RowsPath)
}

// DecodeDump decodes the tables selected by rowsPath in a JSON document.
//
// Cells are strings, numbers, or objects with a "text" field. A row may also
// be an object, its values are then taken in statement header order.
func DecodeDump(r io.Reader, rowsPath string) ([]nova2k.Page, error) {
	if rowsPath == "" {
		rowsPath = DefaultRowsPath
	}
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot decode table dump: %w", err)
	}
	v, err := jsonpath.Get(rowsPath, doc)
	if err != nil {
		return nil, fmt.Errorf("cannot evaluate %q: %w", rowsPath, err)
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%q selects a %T, want a list", rowsPath, v)
	}

	// a list of rows is a single page.
	if isRowList(list) {
		page, err := decodePage(list)
		if err != nil {
			return nil, err
		}
		return []nova2k.Page{page}, nil
	}

	pages := make([]nova2k.Page, 0, len(list))
	for i, p := range list {
		rows, ok := p.([]any)
		if !ok {
			return nil, fmt.Errorf("page %d is a %T, want a list of rows", i+1, p)
		}
		page, err := decodePage(rows)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// isRowList reports whether list holds rows rather than pages: its first
// element is an object row or a list of cells.
func isRowList(list []any) bool {
	for _, e := range list {
		switch e := e.(type) {
		case map[string]any:
			return true
		case []any:
			if len(e) == 0 {
				continue
			}
			_, nested := e[0].([]any)
			return !nested
		}
	}
	return false
}

func decodePage(rows []any) (nova2k.Page, error) {
	page := make(nova2k.Page, 0, len(rows))
	for i, r := range rows {
		row, err := decodeRow(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		page = append(page, row)
	}
	return page, nil
}

func decodeRow(v any) (nova2k.RawRow, error) {
	switch v := v.(type) {
	case []any:
		row := make(nova2k.RawRow, len(v))
		for i, c := range v {
			row[i] = cellText(c)
		}
		return row, nil
	case map[string]any:
		row := make(nova2k.RawRow, nova2k.LogicalFields)
		for i, name := range nova2k.StatementHeader {
			row[i] = cellText(v[name])
		}
		return row, nil
	default:
		return nil, fmt.Errorf("unexpected %T", v)
	}
}

func cellText(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case map[string]any:
		return cellText(v["text"])
	default:
		return fmt.Sprint(v)
	}
}
