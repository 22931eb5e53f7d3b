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

// RealFrequencySeriesName is the container name tagging real-valued
// frequency series blocks (power spectral densities and the like).
const RealFrequencySeriesName = "REAL8FrequencySeries"

// FrequencySeries is a real-valued series over evenly spaced frequency bins,
// reconstructed from one frequency series block.
type FrequencySeries struct {
	// Name is the bare name of the array payload (e.g. "psd").
	Name string
	// Instrument is the detector label attached to the block, when any.
	Instrument string
	// Frequencies holds the bin frequencies, f0 + i*deltaF.
	Frequencies []float64
	// Values holds one value per bin.
	Values []float64
}

// ExtractFrequencySeries reads every real frequency series block in the
// document, optionally filtered to a single instrument (detector).  Bins are
// indexed from the sample axis' start frequency and interval.
func ExtractFrequencySeries(doc *Document, instrument string) ([]FrequencySeries, error) {
	var out []FrequencySeries
	//
	for _, block := range doc.Containers(RealFrequencySeriesName) {
		label := blockInstrument(block)
		//
		if instrument != "" && label != instrument {
			continue
		}
		//
		series, err := buildFrequencySeries(block, label)
		if err != nil {
			return nil, err
		}
		//
		out = append(out, series)
	}
	//
	return out, nil
}

func blockInstrument(block *Container) string {
	for _, p := range block.Params("instrument") {
		if label, ok := p.Value.(string); ok {
			return label
		}
	}
	//
	return ""
}

func buildFrequencySeries(block *Container, label string) (FrequencySeries, error) {
	arrays := block.Arrays("")
	//
	if len(arrays) != 1 {
		return FrequencySeries{}, &NotFoundError{Kind: "array", Name: RealFrequencySeriesName, Count: len(arrays)}
	}
	//
	arr := arrays[0]
	//
	if arr.NumComponents() != 2 {
		return FrequencySeries{}, &FormatError{
			Element: "Array",
			Msg:     "real frequency series array must have two components per sample",
		}
	}
	//
	deltaF, ok := arr.SampleInterval()
	if !ok {
		return FrequencySeries{}, &FormatError{Element: "Array", Msg: "series array lacks a bin interval"}
	}
	// The start frequency defaults to zero when the axis declares none.
	f0, _ := arr.SampleStart()
	//
	var (
		n     = arr.NumSamples()
		bins  = make([]float64, n)
		value = arr.Component(1)
	)
	//
	for i := 0; i < n; i++ {
		bins[i] = f0 + float64(i)*deltaF
	}
	//
	return FrequencySeries{
		Name:        arr.BareName(),
		Instrument:  label,
		Frequencies: bins,
		Values:      value,
	}, nil
}
