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

import "strings"

// Dim declares one dimension of an array.  The first dimension of a series
// array is the sample axis and carries the start offset and sample interval;
// the trailing dimension enumerates the components of each sample (e.g.
// time, real, imaginary).
type Dim struct {
	// Name is the optional Name attribute (e.g. "Time").
	Name string
	// Unit is the optional Unit attribute.
	Unit string
	// N is the extent of this dimension.
	N int
	// Start is the Start attribute (axis origin); valid when HasStart.
	Start float64
	// Scale is the Scale attribute (axis step, i.e. the sample interval);
	// valid when HasScale.
	Scale float64
	//
	HasStart bool
	HasScale bool
}

// Array is a named multi-dimensional numeric payload.  Cells are serialized
// sample-major: all components of one sample are adjacent in the stream, so
// the trailing dimension varies fastest.
type Array struct {
	// Name is the Name attribute as serialized, conventionally suffixed
	// ":array" (e.g. "snr:array").
	Name string
	// Type is the cell type (TypeReal4 or TypeReal8 in practice).
	Type Type
	// Unit is the optional Unit attribute.
	Unit string
	// Dims holds the declared dimensions in serialized order.
	Dims []Dim
	// Flat holds the cell data in stream order.
	Flat []float64
}

// Tag implements the Node interface.
func (a *Array) Tag() string { return "Array" }

// BareName returns the array name with the ":array" suffix stripped.
func (a *Array) BareName() string {
	return strings.TrimSuffix(a.Name, ":array")
}

// NumSamples returns the extent of the sample axis (the first dimension),
// or zero for an empty array.
func (a *Array) NumSamples() int {
	if len(a.Dims) == 0 {
		return 0
	}
	//
	return a.Dims[0].N
}

// NumComponents returns the number of values per sample, i.e. the product of
// all dimensions after the first.
func (a *Array) NumComponents() int {
	if len(a.Dims) == 0 {
		return 0
	}
	//
	n := 1
	//
	for _, d := range a.Dims[1:] {
		n *= d.N
	}
	//
	return n
}

// Component extracts the j-th component of every sample as a contiguous
// slice, e.g. Component(1) of an SNR series array yields the real parts.
func (a *Array) Component(j int) []float64 {
	var (
		stride = a.NumComponents()
		n      = a.NumSamples()
		out    = make([]float64, 0, n)
	)
	//
	for i := j; i < len(a.Flat); i += stride {
		out = append(out, a.Flat[i])
	}
	//
	return out
}

// SampleInterval returns the Scale attribute of the sample axis, which for
// time series is the interval between adjacent samples.
func (a *Array) SampleInterval() (float64, bool) {
	if len(a.Dims) == 0 || !a.Dims[0].HasScale {
		return 0, false
	}
	//
	return a.Dims[0].Scale, true
}

// SampleStart returns the Start attribute of the sample axis (e.g. the first
// frequency bin of a frequency series).
func (a *Array) SampleStart() (float64, bool) {
	if len(a.Dims) == 0 || !a.Dims[0].HasStart {
		return 0, false
	}
	//
	return a.Dims[0].Start, true
}
