package ligolw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func psdBlock(instrument string, f0 float64) *Container {
	return &Container{Name: RealFrequencySeriesName, Children: []Node{
		&Param{Name: "instrument:param", Type: TypeLString, Value: instrument},
		&Array{
			Name: "psd:array",
			Type: TypeReal8,
			Dims: []Dim{
				{Name: "Frequency", Unit: "Hz", N: 3, Start: f0, Scale: 0.25, HasStart: true, HasScale: true},
				{Name: "Frequency,Real", N: 2},
			},
			Flat: []float64{
				f0, 1e-40,
				f0 + 0.25, 2e-40,
				f0 + 0.5, 3e-40,
			},
		},
	}}
}

func TestExtractFrequencySeries(t *testing.T) {
	doc := &Document{Children: []Node{
		&Container{Children: []Node{
			psdBlock("H1", 10),
			psdBlock("L1", 20),
		}},
	}}

	series, err := ExtractFrequencySeries(doc, "")
	require.NoError(t, err)
	require.Len(t, series, 2)

	assert.Equal(t, "psd", series[0].Name)
	assert.Equal(t, "H1", series[0].Instrument)
	assert.Equal(t, []float64{10, 10.25, 10.5}, series[0].Frequencies)
	assert.Equal(t, []float64{1e-40, 2e-40, 3e-40}, series[0].Values)
}

func TestExtractFrequencySeriesFiltered(t *testing.T) {
	doc := &Document{Children: []Node{
		&Container{Children: []Node{
			psdBlock("H1", 10),
			psdBlock("L1", 20),
		}},
	}}

	series, err := ExtractFrequencySeries(doc, "L1")
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, "L1", series[0].Instrument)
	assert.Equal(t, []float64{20, 20.25, 20.5}, series[0].Frequencies)
}

func TestExtractFrequencySeriesBadComponentCount(t *testing.T) {
	block := psdBlock("H1", 10)
	block.Arrays("")[0].Dims[1].N = 3

	doc := &Document{Children: []Node{block}}

	_, err := ExtractFrequencySeries(doc, "")

	var ferr *FormatError
	assert.ErrorAs(t, err, &ferr)
}
