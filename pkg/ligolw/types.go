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
	"strconv"
	"strings"
)

// Type describes the declared type of a table column, a scalar parameter or
// the cells of an array stream.  The set of types is fixed by the LIGO_LW
// format; anything outside this enumeration is rejected at the point where a
// value has to be produced.
type Type uint8

const (
	// TypeUnknown is the zero value, indicating an undeclared type.
	TypeUnknown Type = iota
	// TypeReal4 is a 4-byte IEEE float ("real_4").
	TypeReal4
	// TypeReal8 is an 8-byte IEEE float ("real_8").
	TypeReal8
	// TypeInt4S is a 4-byte signed integer ("int_4s").
	TypeInt4S
	// TypeInt8S is an 8-byte signed integer ("int_8s").
	TypeInt8S
	// TypeLString is a delimited string ("lstring").
	TypeLString
	// TypeILWDChar is the legacy string-encoded row identifier
	// ("ilwd:char"), of the form "table:column:integer".  Only documents
	// written by the older generation of the table library contain this
	// type; identifier normalization rewrites it to TypeInt8S.
	TypeILWDChar
)

// ParseType converts the textual type attribute of a column or parameter into
// a member of the type enumeration.
func ParseType(s string) (Type, error) {
	switch s {
	case "real_4", "float":
		return TypeReal4, nil
	case "real_8", "double":
		return TypeReal8, nil
	case "int_4s":
		return TypeInt4S, nil
	case "int_8s":
		return TypeInt8S, nil
	case "lstring":
		return TypeLString, nil
	case "ilwd:char":
		return TypeILWDChar, nil
	}
	//
	return TypeUnknown, &UnknownTypeError{Name: s}
}

// String returns the textual form used in the Type attribute of serialized
// documents.
func (t Type) String() string {
	switch t {
	case TypeReal4:
		return "real_4"
	case TypeReal8:
		return "real_8"
	case TypeInt4S:
		return "int_4s"
	case TypeInt8S:
		return "int_8s"
	case TypeLString:
		return "lstring"
	case TypeILWDChar:
		return "ilwd:char"
	}
	//
	return "??"
}

// DecodeValue parses the serialized text of a single cell into the Go
// representation of the given declared type (float32, float64, int32, int64
// or string).
func DecodeValue(t Type, text string) (any, error) {
	switch t {
	case TypeReal4:
		v, err := strconv.ParseFloat(text, 32)
		return float32(v), err
	case TypeReal8:
		return strconv.ParseFloat(text, 64)
	case TypeInt4S:
		v, err := strconv.ParseInt(text, 10, 32)
		return int32(v), err
	case TypeInt8S:
		return strconv.ParseInt(text, 10, 64)
	case TypeLString, TypeILWDChar:
		return text, nil
	}
	//
	return nil, &UnknownTypeError{Name: t.String()}
}

// EncodeValue renders a typed cell value back into its serialized text form.
// Strings are returned verbatim; quoting (for table streams) is the writer's
// concern.
func EncodeValue(t Type, value any) (string, error) {
	switch v := value.(type) {
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case int:
		return strconv.Itoa(v), nil
	case string:
		return v, nil
	}
	//
	return "", &UnknownTypeError{Name: t.String()}
}

// DefaultNullValue associates a sensible "null" value with a given column
// type, allowing rows to be fully populated even for columns the caller does
// not care about.  Row identifiers default to zero; string-like types
// (including legacy identifiers) default to the empty string.
func DefaultNullValue(colName string, t Type) (any, error) {
	switch t {
	case TypeReal4:
		return float32(0), nil
	case TypeReal8:
		return float64(0), nil
	case TypeInt4S:
		return int32(0), nil
	case TypeInt8S:
		return int64(0), nil
	case TypeLString, TypeILWDChar:
		return "", nil
	}
	//
	return nil, &UnknownTypeError{Name: t.String(), Column: colName}
}

// StripTableName reduces a serialized table name attribute such as
// "sngl_inspiral:table" (or the doubly qualified forms written by some legacy
// tools) to the canonical bare name.
func StripTableName(name string) string {
	name = strings.TrimSuffix(name, ":table")
	// Drop any remaining qualification.
	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		name = name[i+1:]
	}
	//
	return name
}

// StripColumnName reduces a serialized column name attribute such as
// "sngl_inspiral:event_id" to the bare column name.
func StripColumnName(name string) string {
	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	//
	return name
}

// StripParamName reduces a serialized parameter name attribute such as
// "event_id:param" to the bare parameter name.
func StripParamName(name string) string {
	return strings.TrimSuffix(name, ":param")
}
