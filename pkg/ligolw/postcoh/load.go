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
package postcoh

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/tanghyd/spiir-io/pkg/ligolw"
	"github.com/tanghyd/spiir-io/pkg/ligolw/lsctables"
)

// LoadOption configures columnar postcoh loading.
type LoadOption func(*loadConfig)

type loadConfig struct {
	columns []string
	legacy  bool
}

// WithColumns restricts the loaded table to the named columns, in the given
// order.
func WithColumns(columns ...string) LoadOption {
	return func(c *loadConfig) { c.columns = columns }
}

// WithLegacySchema registers the legacy postcoh schema instead of the modern
// one, for documents written by the older pipeline generation.
func WithLegacySchema() LoadOption {
	return func(c *loadConfig) { c.legacy = true }
}

// EventTable is a column-major view over the postcoh rows of one or more
// documents, as handed to analysis code.
type EventTable struct {
	// Columns holds the selected column definitions in order.
	Columns []ligolw.ColumnDef
	// cells is column-major: cells[i][r] is column i of row r.
	cells [][]any
}

// Len returns the number of rows.
func (t *EventTable) Len() int {
	if len(t.cells) == 0 {
		return 0
	}
	//
	return len(t.cells[0])
}

// Column returns the cell slice for the named column, or false when the
// table carries no such column.
func (t *EventTable) Column(name string) ([]any, bool) {
	for i, c := range t.Columns {
		if c.Name == name {
			return t.cells[i], true
		}
	}
	//
	return nil, false
}

// Load reads the postcoh tables of the given documents into one columnar
// event table.  Each document is parsed with legacy-identifier
// compatibility, normalized, round-tripped through a transient file and read
// back — mirroring the hand-off to the columnar table reader used by the
// analysis tooling.  The transient file is removed on every exit path.
func Load(paths []string, opts ...LoadOption) (*EventTable, error) {
	var cfg loadConfig
	//
	for _, opt := range opts {
		opt(&cfg)
	}
	// Build the registry once; registration precedes all parsing.
	reg := lsctables.NewRegistry()
	//
	if cfg.legacy {
		RegisterLegacy(reg)
	} else {
		Register(reg)
	}
	//
	schema, _ := reg.Lookup(TableName)
	//
	out, err := newEventTable(schema, cfg.columns)
	if err != nil {
		return nil, err
	}
	//
	for _, path := range paths {
		if err := loadOne(path, reg, out); err != nil {
			return nil, err
		}
	}
	//
	return out, nil
}

func newEventTable(schema *ligolw.TableSchema, columns []string) (*EventTable, error) {
	selected := schema.Columns
	//
	if columns != nil {
		selected = make([]ligolw.ColumnDef, 0, len(columns))
		//
		for _, name := range columns {
			typ, ok := schema.ColumnType(name)
			if !ok {
				return nil, errors.Errorf("postcoh schema has no column %q", name)
			}
			//
			selected = append(selected, ligolw.ColumnDef{Name: name, Type: typ})
		}
	}
	// Loading always normalizes, so legacy identifier columns surface as
	// plain integers.
	normalized := make([]ligolw.ColumnDef, len(selected))
	copy(normalized, selected)
	//
	for i, c := range normalized {
		if c.Type == ligolw.TypeILWDChar {
			normalized[i].Type = ligolw.TypeInt8S
		}
	}
	//
	return &EventTable{Columns: normalized, cells: make([][]any, len(normalized))}, nil
}

func loadOne(path string, reg *ligolw.Registry, out *EventTable) error {
	doc, err := ligolw.LoadDocument(path, ligolw.WithRegistry(reg), ligolw.WithILWDCharCompat())
	if err != nil {
		return err
	}
	// Round-trip the normalized document through a transient file, so the
	// columnar read observes exactly what a downstream reader would.
	doc, err = roundTrip(doc, reg)
	if err != nil {
		return err
	}
	//
	table, err := doc.GetTable(TableName)
	if err != nil {
		return err
	}
	//
	log.Debugf("loaded %d postcoh rows from %s", len(table.Rows), path)
	//
	return out.appendRows(table)
}

// roundTrip serializes the document to a temporary file and parses it back.
// The file is deleted before return regardless of outcome.
func roundTrip(doc *ligolw.Document, reg *ligolw.Registry) (*ligolw.Document, error) {
	tmp, err := os.CreateTemp("", "spiir-postcoh-*.xml")
	if err != nil {
		return nil, errors.Wrap(err, "creating transient document")
	}
	//
	defer os.Remove(tmp.Name())
	defer tmp.Close()
	//
	if err := ligolw.WriteDocument(tmp, doc); err != nil {
		return nil, err
	}
	//
	if _, err := tmp.Seek(0, 0); err != nil {
		return nil, errors.Wrap(err, "rewinding transient document")
	}
	//
	return ligolw.ReadDocument(tmp, ligolw.WithRegistry(reg))
}

func (t *EventTable) appendRows(table *ligolw.Table) error {
	for _, row := range table.Rows {
		for i, c := range t.Columns {
			t.cells[i] = append(t.cells[i], row.Value(c.Name))
		}
	}
	//
	return nil
}
