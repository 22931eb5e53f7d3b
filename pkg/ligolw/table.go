// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package ligolw

import "fmt"

// Column is the declaration of a single table column: its serialized name
// (which legacy tools may have qualified with a stale table prefix) and its
// declared type.
type Column struct {
	// Name is the Name attribute exactly as serialized, e.g. "event_id"
	// or the over-qualified "sngl_inspiral:event_id".
	Name string
	// Type is the declared cell type.
	Type Type
	// Unit is the optional Unit attribute.
	Unit string
}

// BareName returns the column name with any table qualification stripped.
func (c *Column) BareName() string {
	return StripColumnName(c.Name)
}

// Table is a named collection of typed columns and an ordered sequence of
// rows.  The set of populated cells of every row is a subset of the declared
// columns; cell representation is dictated solely by the declared column
// type.
type Table struct {
	// Name is the canonical (bare) table name, e.g. "sngl_inspiral".
	Name string
	// Columns holds the declared columns in serialized order.
	Columns []*Column
	// Rows holds the table body in serialized order.
	Rows []*Row
	// Schema is attached when a registry lookup matched this table's name
	// at parse time, and nil otherwise.
	Schema *TableSchema
	// index maps bare column names to their position in Columns.
	index map[string]int
}

// Tag implements the Node interface.
func (t *Table) Tag() string { return "Table" }

// NewTable constructs an empty table with the given canonical name and
// columns.
func NewTable(name string, columns ...*Column) *Table {
	t := &Table{Name: name, Columns: columns}
	t.reindex()
	//
	return t
}

// AppendColumn declares a further column on this table.  Declaring columns
// after rows exist is not supported.
func (t *Table) AppendColumn(c *Column) {
	t.Columns = append(t.Columns, c)
	t.reindex()
}

// ColumnByName returns the column whose bare name matches the given name, or
// nil if the table declares no such column.
func (t *Table) ColumnByName(name string) *Column {
	if i, ok := t.index[StripColumnName(name)]; ok {
		return t.Columns[i]
	}
	//
	return nil
}

// NewRow constructs an empty (fully unpopulated) row bound to this table's
// column set.  The row is not appended.
func (t *Table) NewRow() *Row {
	return &Row{table: t, cells: make([]any, len(t.Columns))}
}

// AppendRow adds a row to the table body.
func (t *Table) AppendRow(r *Row) {
	t.Rows = append(t.Rows, r)
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Columns))
	//
	for i, c := range t.Columns {
		t.index[c.BareName()] = i
	}
}

// Row is a single table row: a mapping from column name to typed cell value,
// scoped to one table.  Unpopulated cells are distinct from zero-valued
// cells.
type Row struct {
	table *Table
	cells []any
}

// Value returns the cell for the given bare column name, or nil when the
// cell is unpopulated or the column is not declared.
func (r *Row) Value(name string) any {
	if i, ok := r.table.index[name]; ok {
		return r.cells[i]
	}
	//
	return nil
}

// Has reports whether the cell for the given bare column name is populated.
func (r *Row) Has(name string) bool {
	i, ok := r.table.index[name]
	return ok && r.cells[i] != nil
}

// SetValue assigns the cell for the given bare column name.  Assigning nil
// depopulates the cell.  This is the single authoritative mutation site for
// row data; identifier normalization goes through here.
func (r *Row) SetValue(name string, value any) error {
	i, ok := r.table.index[name]
	if !ok {
		return fmt.Errorf("table %q has no column %q", r.table.Name, name)
	}
	//
	r.cells[i] = value
	//
	return nil
}

// Int64 returns the cell for the given column as an int64, converting from
// the narrower integer representation if necessary.  Returns false when the
// cell is unpopulated or not an integer.
func (r *Row) Int64(name string) (int64, bool) {
	switch v := r.Value(name).(type) {
	case int64:
		return v, true
	case int32:
		return int64(v), true
	}
	//
	return 0, false
}

// String returns the cell for the given column as a string, or false when
// the cell is unpopulated or not a string.
func (r *Row) String(name string) (string, bool) {
	v, ok := r.Value(name).(string)
	return v, ok
}

// Float64 returns the cell for the given column as a float64, converting
// from float32 if necessary.
func (r *Row) Float64(name string) (float64, bool) {
	switch v := r.Value(name).(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	}
	//
	return 0, false
}
