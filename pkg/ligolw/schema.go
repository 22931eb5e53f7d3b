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

import "sort"

// ColumnDef declares one column of a table schema: its canonical
// (unqualified) name and its declared type.
type ColumnDef struct {
	Name string
	Type Type
}

// TableSchema is the registered definition of a table: its canonical name,
// its declared columns in order, and an optional uniqueness constraint such
// as "PRIMARY KEY (event_id)".  A schema lets a non-standard table
// participate in parsing, and drives column-name reconciliation during
// identifier normalization.
type TableSchema struct {
	// Name is the canonical table name, e.g. "postcoh".
	Name string
	// Columns holds the declared columns in order.
	Columns []ColumnDef
	// Constraint is the table-level uniqueness constraint, or empty.
	Constraint string
	// index maps declared column names to their position in Columns.
	index map[string]int
}

// NewTableSchema constructs a schema from an ordered column list.
func NewTableSchema(name, constraint string, columns ...ColumnDef) *TableSchema {
	s := &TableSchema{Name: name, Columns: columns, Constraint: constraint}
	s.index = make(map[string]int, len(columns))
	//
	for i, c := range columns {
		s.index[c.Name] = i
	}
	//
	return s
}

// ColumnType returns the declared type of the given column, or false when
// the schema declares no such column.
func (s *TableSchema) ColumnType(name string) (Type, bool) {
	if i, ok := s.index[name]; ok {
		return s.Columns[i].Type, true
	}
	//
	return TypeUnknown, false
}

// HasColumn reports whether the given serialized column name matches a
// declared column exactly (without stripping any qualification).
func (s *TableSchema) HasColumn(name string) bool {
	_, ok := s.index[name]
	return ok
}

// DeclaredName maps the bare form of a serialized column name back to the
// declared column name, which is how stale table-name qualifications are
// reconciled away.
func (s *TableSchema) DeclaredName(bare string) (string, bool) {
	if i, ok := s.index[bare]; ok {
		return s.Columns[i].Name, true
	}
	//
	return "", false
}

// NewTable constructs an empty table carrying this schema's full column set.
func (s *TableSchema) NewTable() *Table {
	columns := make([]*Column, len(s.Columns))
	//
	for i, c := range s.Columns {
		columns[i] = &Column{Name: c.Name, Type: c.Type}
	}
	//
	t := NewTable(s.Name, columns...)
	t.Schema = s
	//
	return t
}

// NewEmptyRow constructs a row on the given table with every declared cell
// populated by its type's null default.  This avoids downstream errors from
// tables containing columns the caller does not care about but which still
// need populating.
func NewEmptyRow(t *Table) (*Row, error) {
	row := t.NewRow()
	//
	for _, c := range t.Columns {
		value, err := DefaultNullValue(c.BareName(), c.Type)
		if err != nil {
			return nil, err
		}
		//
		if err := row.SetValue(c.BareName(), value); err != nil {
			return nil, err
		}
	}
	//
	return row, nil
}

// Registry maps table names to their registered schemas.  It is consulted by
// the reader's table-dispatch hook, and by identifier normalization when
// reconciling column names.  Construct one explicitly at startup and thread
// it through parsing; registration is not synchronised against concurrent
// use, but the registry is safely shared read-only once parsing begins.
type Registry struct {
	entries map[string]*TableSchema
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*TableSchema)}
}

// Register inserts or overwrites the entry for the schema's table name.
// Last writer wins, so re-registering an identical schema from a second call
// site is harmless.
func (r *Registry) Register(s *TableSchema) {
	r.entries[s.Name] = s
}

// Lookup returns the schema registered for the given table name.  A miss is
// not an error; unregistered tables simply take the generic parsing path.
func (r *Registry) Lookup(name string) (*TableSchema, bool) {
	s, ok := r.entries[name]
	return s, ok
}

// Names returns the registered table names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	//
	for name := range r.entries {
		names = append(names, name)
	}
	//
	sort.Strings(names)
	//
	return names
}
