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
	log "github.com/sirupsen/logrus"
)

// SnglInspiralTableName is the canonical name of the table acting as the
// identifier authority for SNR series blocks.
const SnglInspiralTableName = "sngl_inspiral"

// ComplexTimeSeriesName is the container name tagging per-detector complex
// SNR time series blocks.
const ComplexTimeSeriesName = "COMPLEX8TimeSeries"

// EventIDParamName is the bare name of the parameter embedding the
// foreign-key identifier on each series block.
const EventIDParamName = "event_id"

// SNRArrayName is the bare name of the array element holding the series
// payload within each block.
const SNRArrayName = "snr"

// Series is a complex-valued time series reconstructed from one array block:
// the detector it was captured by, a time index, and the complex samples.
type Series struct {
	// Name is the detector ("ifo") label of the matched authority row.
	Name string
	// Times holds one timestamp per sample.  Without epoch offsetting the
	// index is series-local, starting at zero; with it, each entry is an
	// absolute GPS timestamp.
	Times []float64
	// Values holds the complex samples.
	Values []complex128
}

// ExtractSNRSeries pairs every complex SNR time series block in the document
// with its owning row of the single sngl_inspiral table, returning the
// series keyed by event identifier.
//
// The document must already be normalized (or have been written with integer
// identifiers throughout).  Each series block must carry exactly one
// event_id parameter, and that identifier must match exactly one authority
// row; any other cardinality indicates upstream corruption and fails the
// whole join with a JoinCardinalityError rather than being masked.
//
// When addEpochTime is set, the block's absolute epoch is added to every
// index value.  Independently captured series need not start at the same
// sample, so this is what makes indices comparable across detectors; to undo
// it, subtract the first index entry from every entry of that series.
func ExtractSNRSeries(doc *Document, addEpochTime bool) (map[int64]Series, error) {
	// Locate the identifier authority.
	sngl, err := doc.GetTable(SnglInspiralTableName)
	if err != nil {
		return nil, err
	}
	//
	out := make(map[int64]Series)
	//
	for _, block := range doc.Containers(ComplexTimeSeriesName) {
		eventID, err := blockEventID(block)
		if err != nil {
			return nil, err
		}
		// Match the block to its owning row.
		row, err := matchAuthorityRow(sngl, eventID)
		if err != nil {
			return nil, err
		}
		//
		ifo, _ := row.String("ifo")
		// Reconstruct the series payload.
		series, err := buildSNRSeries(block, ifo, addEpochTime)
		if err != nil {
			return nil, err
		}
		//
		log.Debugf("matched %s series for event %d (%d samples)", ifo, eventID, len(series.Values))
		// Blocks resolving to the same identifier overwrite each other;
		// upstream grouping is expected to prevent this arising.
		out[eventID] = series
	}
	//
	return out, nil
}

// blockEventID extracts the foreign-key identifier parameter of a series
// block, requiring it to be present exactly once.
func blockEventID(block *Container) (int64, error) {
	params := block.Params(EventIDParamName)
	//
	if len(params) != 1 {
		return 0, &JoinCardinalityError{
			Matches: len(params),
			Reason:  "expected exactly one event_id param on series block",
		}
	}
	//
	id, ok := params[0].Int64()
	if !ok {
		return 0, &JoinCardinalityError{
			Matches: 1,
			Reason:  "event_id param is not an integer (document not normalized?)",
		}
	}
	//
	return id, nil
}

// matchAuthorityRow scans the authority table for the single row owning the
// given identifier.  Zero matches means an orphaned series; more than one
// means a primary-key violation upstream.  Both are fatal.
func matchAuthorityRow(t *Table, eventID int64) (*Row, error) {
	var match *Row
	//
	count := 0
	//
	for _, row := range t.Rows {
		if id, ok := row.Int64(EventIDParamName); ok && id == eventID {
			match = row
			count++
		}
	}
	//
	if count != 1 {
		return nil, &JoinCardinalityError{
			EventID: eventID,
			Matches: count,
			Reason:  "expected exactly one matching " + t.Name + " row",
		}
	}
	//
	return match, nil
}

// buildSNRSeries converts the array payload of a series block into a Series
// with an evenly spaced time index.
func buildSNRSeries(block *Container, name string, addEpochTime bool) (Series, error) {
	arrays := block.Arrays(SNRArrayName)
	//
	if len(arrays) != 1 {
		return Series{}, &NotFoundError{Kind: "array", Name: SNRArrayName, Count: len(arrays)}
	}
	//
	var (
		arr    = arrays[0]
		n      = arr.NumSamples()
		times  = make([]float64, n)
		values = make([]complex128, n)
	)
	//
	if arr.NumComponents() != 3 {
		return Series{}, &FormatError{
			Element: "Array",
			Msg:     "complex time series array must have three components per sample",
		}
	}
	//
	deltaT, ok := arr.SampleInterval()
	if !ok {
		return Series{}, &FormatError{Element: "Array", Msg: "series array lacks a sample interval"}
	}
	// Component 0 carries serialized offsets; the authoritative index is
	// rebuilt from the sample interval instead, so that ragged offsets in
	// hand-written files cannot leak through.
	var (
		re = arr.Component(1)
		im = arr.Component(2)
	)
	//
	epoch := 0.0
	if addEpochTime {
		t := block.Epoch("epoch")
		if t == nil {
			return Series{}, &FormatError{Element: "LIGO_LW", Msg: "series block lacks an epoch"}
		}
		//
		epoch = t.Value.Float()
	}
	//
	for i := 0; i < n; i++ {
		times[i] = epoch + float64(i)*deltaT
		values[i] = complex(re[i], im[i])
	}
	//
	return Series{Name: name, Times: times, Values: values}, nil
}
