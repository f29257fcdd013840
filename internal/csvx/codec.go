// Package csvx implements the flat-file table format used by the storage
// layer: a header row followed by one comma-delimited row per record, with
// standard CSV quoting, and a guarded table that rewrites its whole file on
// every mutation.
package csvx

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"slices"
)

// ErrMalformedTable marks a file that does not parse against its expected
// column layout. It is not recoverable for that table.
var ErrMalformedTable = errors.New("malformed table")

var utf8BOM = []byte("\xef\xbb\xbf")

// Codec maps one record type onto a fixed, ordered set of columns.
type Codec[T any] interface {
	Header() []string
	Encode(rec T) ([]string, error)
	Decode(row []string) (T, error)
}

// EncodeRows renders header followed by rows.
func EncodeRows(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, err
	}
	// WriteAll flushes
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// DecodeRows parses data, checks its first row against header and returns the
// remaining rows. Every row must have exactly len(header) fields.
func DecodeRows(header []string, data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	r.FieldsPerRecord = len(header)

	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTable, err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: missing header row", ErrMalformedTable)
	}
	if !slices.Equal(all[0], header) {
		return nil, fmt.Errorf("%w: header %q, want %q", ErrMalformedTable, all[0], header)
	}

	return all[1:], nil
}

// Encode renders records with codec c.
func Encode[T any](c Codec[T], records []T) ([]byte, error) {
	rows := make([][]string, 0, len(records))
	for i, rec := range records {
		row, err := c.Encode(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		rows = append(rows, row)
	}
	return EncodeRows(c.Header(), rows)
}

// Decode parses data into records with codec c.
func Decode[T any](c Codec[T], data []byte) ([]T, error) {
	rows, err := DecodeRows(c.Header(), data)
	if err != nil {
		return nil, err
	}

	records := make([]T, 0, len(rows))
	for i, row := range rows {
		rec, err := c.Decode(row)
		if err != nil {
			// +2: one for the header, one for 1-based line numbers
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedTable, i+2, err)
		}
		records = append(records, rec)
	}

	return records, nil
}
