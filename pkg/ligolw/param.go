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

// Param is a named scalar value with its own declared type, found either at
// the top level of a document or attached to auxiliary array blocks (where
// one of them carries the foreign-key identifier linking the block to a
// table row).
type Param struct {
	// Name is the Name attribute as serialized, conventionally suffixed
	// ":param" (e.g. "event_id:param").
	Name string
	// Type is the declared scalar type.
	Type Type
	// Unit is the optional Unit attribute.
	Unit string
	// Value is the typed scalar value, or nil when the element was empty.
	Value any
}

// Tag implements the Node interface.
func (p *Param) Tag() string { return "Param" }

// BareName returns the parameter name with the ":param" suffix stripped.
func (p *Param) BareName() string {
	return StripParamName(p.Name)
}

// Int64 returns the parameter value as an int64, converting from narrower
// integer representations.  Returns false for empty or non-integer values.
func (p *Param) Int64() (int64, bool) {
	switch v := p.Value.(type) {
	case int64:
		return v, true
	case int32:
		return int64(v), true
	}
	//
	return 0, false
}
