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

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// NormalizeIdentifiers transforms a document containing tabular data using
// legacy "ilwd:char" style row identifiers to plain integer identifiers, in
// place.  This translates documents written by the older generation of the
// table library into the modern representation the rest of the pipeline
// relies on.  Along the way, column names serialized with a stale table-name
// qualification are reconciled against the registry's declared names.
//
// The transformation is lossy: the qualifying table and column name embedded
// in each identifier is discarded and cannot be reconstructed generically.
// Applying the transformation to an already-normalized document is a no-op,
// since no ilwd:char typed columns or parameters remain.
//
// A value lacking a ":"-delimited trailing integer aborts normalization of
// the whole document with a MalformedIdentifierError.
func NormalizeIdentifiers(doc *Document, reg *Registry) error {
	var err error
	//
	doc.Walk(func(n Node) bool {
		if err != nil {
			return false
		}
		//
		switch e := n.(type) {
		case *Table:
			err = normalizeTable(e, reg)
		case *Param:
			err = normalizeParam(e)
		case *Container:
			// Params attached to series blocks are visited by the
			// recursive walk.
			return true
		}
		//
		return err == nil
	})
	//
	return err
}

func normalizeTable(t *Table, reg *Registry) error {
	log.Debugf("normalizing table %s", t.Name)
	// Reconcile over-qualified column names against the registered schema.
	if reg != nil {
		if schema, ok := reg.Lookup(t.Name); ok {
			reconcileColumnNames(t, schema)
		}
	}
	// Determine which columns hold legacy identifiers.
	var idcols []string
	//
	for _, c := range t.Columns {
		if c.Type == TypeILWDChar {
			idcols = append(idcols, c.BareName())
		}
	}
	//
	if len(idcols) == 0 {
		log.Debugf("table %s has no ID columns to convert", t.Name)
		return nil
	}
	// Rewrite every populated identifier cell.
	for _, row := range t.Rows {
		for _, name := range idcols {
			if !row.Has(name) {
				continue
			}
			//
			id, err := parseILWDChar(row.Value(name))
			if err != nil {
				return err
			}
			//
			if err := row.SetValue(name, id); err != nil {
				return err
			}
		}
	}
	// Update the declared column types.
	for _, name := range idcols {
		t.ColumnByName(name).Type = TypeInt8S
	}
	//
	sort.Strings(idcols)
	log.Infof("converted %s id column(s) %s", t.Name, strings.Join(idcols, ", "))
	//
	return nil
}

func normalizeParam(p *Param) error {
	if p.Type != TypeILWDChar {
		return nil
	}
	// The declared type is updated even when the value is empty.
	p.Type = TypeInt8S
	//
	if p.Value == nil {
		log.Infof("converted param %s, but value is empty", p.BareName())
		return nil
	}
	//
	id, err := parseILWDChar(p.Value)
	if err != nil {
		return err
	}
	//
	p.Value = id
	log.Infof("converted param %s value to %d", p.BareName(), id)
	//
	return nil
}

// reconcileColumnNames rewrites serialized column names that match a
// declared column only after stripping a stale "tablename:" qualification.
// Names matching neither directly nor after stripping are left untouched, so
// unknown extra columns are forward-compatible rather than an error.
func reconcileColumnNames(t *Table, schema *TableSchema) {
	for _, c := range t.Columns {
		if schema.HasColumn(c.Name) {
			continue
		}
		//
		if declared, ok := schema.DeclaredName(c.BareName()); ok {
			log.Infof("renamed %s column %s to %s", t.Name, c.Name, declared)
			c.Name = declared
		}
	}
}

// parseILWDChar extracts the trailing integer of a legacy composite
// identifier such as "sngl_inspiral:event_id:482".  Only the integer suffix
// is semantically meaningful.
func parseILWDChar(value any) (int64, error) {
	text, ok := value.(string)
	if !ok {
		return 0, &MalformedIdentifierError{Value: fmt.Sprint(value)}
	}
	//
	i := strings.LastIndexByte(text, ':')
	if i < 0 {
		return 0, &MalformedIdentifierError{Value: text}
	}
	//
	id, err := strconv.ParseInt(text[i+1:], 10, 64)
	if err != nil {
		return 0, &MalformedIdentifierError{Value: text}
	}
	//
	return id, nil
}
