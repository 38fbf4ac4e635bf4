package nova2k

import (
	"context"
	"fmt"
)

// TableExtractor reads the transaction tables of a statement document, one
// Page per document page.
type TableExtractor interface {
	Extract(ctx context.Context, path string) ([]Page, error)
}

// ExtractStatement extracts the tables of the document at path and
// reconstructs its logical rows.
func ExtractStatement(ctx context.Context, ex TableExtractor, path string, sink EventSink) ([]LogicalRow, error) {
	pages, err := ex.Extract(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("cannot extract tables from %q: %w", path, err)
	}
	if sink == nil {
		sink = Discard
	}
	r := NewReconstructor(sink)
	rows := r.Reconstruct(pages...)
	if r.Opened() == 0 {
		return nil, fmt.Errorf("no transaction found in %q", path)
	}
	return rows, nil
}
