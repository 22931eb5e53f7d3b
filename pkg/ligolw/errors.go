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

// MalformedIdentifierError indicates a legacy "ilwd:char" value whose
// trailing component could not be parsed as a base-10 integer.  This aborts
// identifier normalization for the whole document.
type MalformedIdentifierError struct {
	// Value is the offending serialized identifier.
	Value string
}

func (e *MalformedIdentifierError) Error() string {
	return fmt.Sprintf("malformed ilwd:char identifier %q", e.Value)
}

// UnknownTypeError indicates a declared column or parameter type outside the
// fixed LIGO_LW type enumeration.
type UnknownTypeError struct {
	// Name is the unrecognised type string.
	Name string
	// Column names the column being processed, when known.
	Column string
}

func (e *UnknownTypeError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("unknown type %q for column %q", e.Name, e.Column)
	}
	//
	return fmt.Sprintf("unknown type %q", e.Name)
}

// JoinCardinalityError indicates that an auxiliary series block could not be
// paired with exactly one row of the authority table, or that the block is
// missing its identifier parameter.  Either way the document is corrupt and
// the whole join is abandoned.
type JoinCardinalityError struct {
	// EventID is the identifier being matched (zero when the identifier
	// parameter itself was missing or duplicated).
	EventID int64
	// Matches is the number of rows (or identifier parameters) found.
	Matches int
	// Reason gives a short description of what failed.
	Reason string
}

func (e *JoinCardinalityError) Error() string {
	return fmt.Sprintf("series join: %s (event_id=%d, matches=%d)", e.Reason, e.EventID, e.Matches)
}

// NotFoundError indicates that a required element (typically the authority
// table) is absent from the document, or present more than once when exactly
// one was required.
type NotFoundError struct {
	// Kind is the element kind searched for ("table", "array", ...).
	Kind string
	// Name is the name searched for.
	Name string
	// Count is the number of matches actually found.
	Count int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("expected exactly one %s %q, found %d", e.Kind, e.Name, e.Count)
}

// FormatError indicates a structurally malformed document (bad XML, a stream
// whose cell count does not tile its table or array, etc).
type FormatError struct {
	// Element names the element being parsed.
	Element string
	// Msg describes the problem.
	Msg string
}

func (e *FormatError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("malformed %s element: %s", e.Element, e.Msg)
	}
	//
	return fmt.Sprintf("malformed document: %s", e.Msg)
}
