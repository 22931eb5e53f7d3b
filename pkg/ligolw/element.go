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

// Package ligolw implements reading, normalization and joining of LIGO Light
// Weight XML interchange documents, as exchanged between stages of the SPIIR
// search pipeline.  Two generations of the tabular format exist in the wild:
// a legacy generation identifying rows with string-encoded "ilwd:char"
// composite identifiers, and a modern generation using plain integers.  This
// package parses either generation, rewrites legacy identifiers in place so
// downstream consumers see a single representation, lets non-standard tables
// (such as postcoh) participate in parsing through an explicit schema
// registry, and reconstructs per-detector SNR time series keyed by the rows
// of their companion event table.
package ligolw

// Node is implemented by every element of a parsed document tree.
type Node interface {
	// Tag returns the LIGO_LW element tag of this node ("Table", "Param",
	// "Array", "Time" or "LIGO_LW").
	Tag() string
}

// Document is the root of an element tree.  It is exclusively owned by the
// caller for the duration of one parse / normalize / consume cycle; no
// component of this package retains a reference past its return.
type Document struct {
	// Children holds the top-level elements in document order.
	Children []Node
}

// Container is a (possibly named) LIGO_LW grouping element.  The document
// root's immediate child is conventionally an anonymous container; named
// containers carry auxiliary payloads such as "COMPLEX8TimeSeries" blocks.
type Container struct {
	// Name is the Name attribute, or empty for anonymous containers.
	Name string
	// Children holds nested elements in document order.
	Children []Node
}

// Tag implements the Node interface.
func (c *Container) Tag() string { return "LIGO_LW" }

// Time is a scalar timestamp element, invariably of type "GPS".
type Time struct {
	// Name is the Name attribute (e.g. "epoch").
	Name string
	// Value is the parsed timestamp.
	Value GPSTime
}

// Tag implements the Node interface.
func (t *Time) Tag() string { return "Time" }

// Walk visits every node of the document in document order, recursing into
// containers.  Traversal of a node's children is skipped when the callback
// returns false.
func (d *Document) Walk(fn func(Node) bool) {
	walkNodes(d.Children, fn)
}

func walkNodes(nodes []Node, fn func(Node) bool) {
	for _, n := range nodes {
		if !fn(n) {
			continue
		}
		//
		if c, ok := n.(*Container); ok {
			walkNodes(c.Children, fn)
		}
	}
}

// FindAll returns every node satisfying the given predicate, in document
// order.
func (d *Document) FindAll(pred func(Node) bool) []Node {
	var matches []Node
	//
	d.Walk(func(n Node) bool {
		if pred(n) {
			matches = append(matches, n)
		}
		// Matching containers may still hold further matches.
		return true
	})
	//
	return matches
}

// Tables returns every table in the document whose canonical name matches
// the given name, in document order.
func (d *Document) Tables(name string) []*Table {
	var tables []*Table
	//
	d.Walk(func(n Node) bool {
		if t, ok := n.(*Table); ok && t.Name == name {
			tables = append(tables, t)
		}
		//
		return true
	})
	//
	return tables
}

// GetTable locates the single table with the given canonical name, returning
// a NotFoundError unless exactly one exists.
func (d *Document) GetTable(name string) (*Table, error) {
	tables := d.Tables(name)
	//
	if len(tables) != 1 {
		return nil, &NotFoundError{Kind: "table", Name: name, Count: len(tables)}
	}
	//
	return tables[0], nil
}

// Containers returns every named container matching the given name, in
// document order.  This is how auxiliary series blocks (e.g.
// "COMPLEX8TimeSeries") are located.
func (d *Document) Containers(name string) []*Container {
	var containers []*Container
	//
	d.Walk(func(n Node) bool {
		if c, ok := n.(*Container); ok && c.Name == name {
			containers = append(containers, c)
		}
		//
		return true
	})
	//
	return containers
}

// Params returns the parameters directly attached to this container whose
// bare name matches the given name.
func (c *Container) Params(name string) []*Param {
	var params []*Param
	//
	for _, n := range c.Children {
		if p, ok := n.(*Param); ok && p.BareName() == name {
			params = append(params, p)
		}
	}
	//
	return params
}

// Arrays returns the arrays directly attached to this container whose bare
// name matches the given name, or all arrays when name is empty.
func (c *Container) Arrays(name string) []*Array {
	var arrays []*Array
	//
	for _, n := range c.Children {
		if a, ok := n.(*Array); ok && (name == "" || a.BareName() == name) {
			arrays = append(arrays, a)
		}
	}
	//
	return arrays
}

// Epoch returns the Time child with the given name, or nil if absent.
func (c *Container) Epoch(name string) *Time {
	for _, n := range c.Children {
		if t, ok := n.(*Time); ok && t.Name == name {
			return t
		}
	}
	//
	return nil
}
