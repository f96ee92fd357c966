package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNotFound is returned when a dataset or column name is unknown.
var ErrNotFound = errors.New("not found")

// Table is a rectangular, in-memory dataset: ordered named columns and
// string-valued rows. Values stay strings until a caller asks for a numeric
// view, so fixed-width identifiers (FIPS codes and the like) keep their
// leading zeros.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// NumRows returns the number of observation rows.
func (t *Table) NumRows() int { return len(t.Rows) }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.Header) }

// ColumnIndex resolves a column name case-insensitively.
func (t *Table) ColumnIndex(name string) (int, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	for i, h := range t.Header {
		if strings.ToLower(strings.TrimSpace(h)) == want {
			return i, true
		}
	}
	return 0, false
}

// Column returns the raw string values of the named column.
func (t *Table) Column(name string) ([]string, error) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return nil, fmt.Errorf("column %q: %w", name, ErrNotFound)
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			out[i] = row[idx]
		}
	}
	return out, nil
}

// Numeric returns the parseable float values of the named column, skipping
// blanks and non-numeric entries.
func (t *Table) Numeric(name string) ([]float64, error) {
	vals, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if x, err := strconv.ParseFloat(v, 64); err == nil {
			out = append(out, x)
		}
	}
	return out, nil
}

// PairedNumeric returns row-aligned float values for two columns, keeping only
// rows where both parse. Regression needs pairs, not independently filtered
// columns.
func (t *Table) PairedNumeric(xName, yName string) (xs, ys []float64, err error) {
	xi, ok := t.ColumnIndex(xName)
	if !ok {
		return nil, nil, fmt.Errorf("column %q: %w", xName, ErrNotFound)
	}
	yi, ok := t.ColumnIndex(yName)
	if !ok {
		return nil, nil, fmt.Errorf("column %q: %w", yName, ErrNotFound)
	}
	for _, row := range t.Rows {
		if xi >= len(row) || yi >= len(row) {
			continue
		}
		x, errX := strconv.ParseFloat(strings.TrimSpace(row[xi]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(row[yi]), 64)
		if errX != nil || errY != nil {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys, nil
}

// readCSV parses CSV content into a Table. Rows shorter than the header are
// padded so the table stays rectangular.
func readCSV(name string, r io.Reader, delim rune) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if delim != 0 {
		cr.Comma = delim
	}

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Table{Name: name}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	t := &Table{Name: name, Header: header}
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(t.Rows)+1, err)
		}
		if len(rec) < len(header) {
			tmp := make([]string, len(header))
			copy(tmp, rec)
			rec = tmp
		}
		row := make([]string, len(rec))
		copy(row, rec)
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
