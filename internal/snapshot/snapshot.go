// Package snapshot reads and writes the JSON snapshot of a record collection.
// Instants are written as ISO-8601 strings.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/xiaot623/gogo/venueboard/internal/domain"
)

// Encode writes records as an indented JSON array.
func Encode(w io.Writer, records []domain.EventRecord) error {
	if records == nil {
		records = []domain.EventRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// Decode reads a snapshot as raw rows keyed by canonical field name, ready
// for the pipeline with an identity mapping.
func Decode(r io.Reader) ([]domain.RawRow, error) {
	var rows []domain.RawRow
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("%w: decode snapshot: %v", domain.ErrMalformedValue, err)
	}
	for i, row := range rows {
		if row == nil {
			return nil, &domain.RowError{Row: i, Err: fmt.Errorf("%w: snapshot entry is not an object", domain.ErrMalformedValue)}
		}
		// derived values are recomputed on import
		delete(row, "progress")
		delete(row, "times")
		delete(row, "warnings")
	}
	return rows, nil
}
