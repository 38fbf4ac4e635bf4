package nova2k

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ReadStatement reads a statement CSV. The header row is skipped, records
// may have any number of fields.
func ReadStatement(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot read statement header: %w", err)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot read statement records: %w", err)
	}
	return records, nil
}

// WriteStatement writes logical rows as a statement CSV, with the
// StatementHeader.
func WriteStatement(w io.Writer, rows []LogicalRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(StatementHeader); err != nil {
		return fmt.Errorf("cannot write statement header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row.Record()); err != nil {
			return fmt.Errorf("cannot write statement row %q: %w", row.Date, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
