// Package tabular holds the transient in-memory table model the cleaning
// stage works on. Exporters control the column names, so a Table keeps the
// raw header row (whitespace-trimmed) and resolves cells by name; nothing
// here survives past derivation.
package tabular

import "strings"

// Table is an ordered sequence of records under exporter-controlled
// column names.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string

	index map[string]int
}

// New builds a table from a raw header row and records. Header cells are
// trimmed; when duplicate names occur the first occurrence wins, matching
// how the exporters themselves resolve them.
func New(name string, headers []string, rows [][]string) *Table {
	t := &Table{Name: name, Rows: rows}
	t.SetHeaders(headers)
	return t
}

// SetHeaders replaces the header row, re-trimming and re-indexing. Used
// when a known exporter ships a repairable garbage header.
func (t *Table) SetHeaders(headers []string) {
	trimmed := make([]string, len(headers))
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		trimmed[i] = h
		if _, ok := index[h]; !ok {
			index[h] = i
		}
	}
	t.Headers = trimmed
	t.index = index
}

// Has reports whether a column with the exact trimmed name exists.
func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(column string) (int, bool) {
	i, ok := t.index[column]
	return i, ok
}

// Value returns the trimmed cell under the named column for one record,
// or "" when the column is unknown or the record is short.
func (t *Table) Value(row []string, column string) string {
	i, ok := t.index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Len returns the record count.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Width returns the column count.
func (t *Table) Width() int {
	return len(t.Headers)
}

// Filter returns a new table sharing this table's header row and keeping
// only the records keep accepts.
func (t *Table) Filter(keep func(row []string) bool) *Table {
	kept := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if keep(row) {
			kept = append(kept, row)
		}
	}
	out := New(t.Name, t.Headers, kept)
	return out
}
