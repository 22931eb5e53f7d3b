package ligolw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snrBlock builds a COMPLEX8TimeSeries container carrying the given event
// identifier and a four sample payload.
func snrBlock(eventID int64, epoch GPSTime) *Container {
	return &Container{Name: ComplexTimeSeriesName, Children: []Node{
		&Time{Name: "epoch", Value: epoch},
		&Param{Name: "event_id:param", Type: TypeInt8S, Value: eventID},
		&Array{
			Name: "snr:array",
			Type: TypeReal4,
			Dims: []Dim{
				{Name: "Time", Unit: "s", N: 4, Start: 0, Scale: 0.5, HasStart: true, HasScale: true},
				{Name: "Time,Real,Imaginary", N: 3},
			},
			Flat: []float64{
				0, 1, -1,
				0.5, 2, -2,
				1, 3, -3,
				1.5, 4, -4,
			},
		},
	}}
}

// inspiralAuthority builds a sngl_inspiral table with one row per given
// event identifier.
func inspiralAuthority(ids ...int64) *Table {
	table := NewTable(SnglInspiralTableName,
		&Column{Name: "event_id", Type: TypeInt8S},
		&Column{Name: "ifo", Type: TypeLString},
		&Column{Name: "snr", Type: TypeReal4},
	)

	ifos := []string{"H1", "L1", "V1"}

	for i, id := range ids {
		row := table.NewRow()
		_ = row.SetValue("event_id", id)
		_ = row.SetValue("ifo", ifos[i%len(ifos)])
		_ = row.SetValue("snr", float32(9))
		table.AppendRow(row)
	}

	return table
}

func TestExtractSNRSeries(t *testing.T) {
	doc := &Document{Children: []Node{
		&Container{Children: []Node{
			inspiralAuthority(1, 2),
			snrBlock(1, GPSTime{Seconds: 1000}),
			snrBlock(2, GPSTime{Seconds: 1001}),
		}},
	}}

	series, err := ExtractSNRSeries(doc, false)
	require.NoError(t, err)
	require.Len(t, series, 2)

	s1, ok := series[1]
	require.True(t, ok)
	assert.Equal(t, "H1", s1.Name)
	assert.Equal(t, []float64{0, 0.5, 1.0, 1.5}, s1.Times)
	assert.Equal(t, []complex128{complex(1, -1), complex(2, -2), complex(3, -3), complex(4, -4)}, s1.Values)

	s2, ok := series[2]
	require.True(t, ok)
	assert.Equal(t, "L1", s2.Name)
}

func TestExtractSNRSeriesWithEpoch(t *testing.T) {
	doc := &Document{Children: []Node{
		&Container{Children: []Node{
			inspiralAuthority(1),
			snrBlock(1, GPSTime{Seconds: 1000}),
		}},
	}}

	series, err := ExtractSNRSeries(doc, true)
	require.NoError(t, err)

	s, ok := series[1]
	require.True(t, ok)
	assert.Equal(t, []float64{1000.0, 1000.5, 1001.0, 1001.5}, s.Times)
}

func TestExtractSNRSeriesOrphanedBlock(t *testing.T) {
	doc := &Document{Children: []Node{
		&Container{Children: []Node{
			inspiralAuthority(1, 2),
			snrBlock(3, GPSTime{Seconds: 1000}),
		}},
	}}

	_, err := ExtractSNRSeries(doc, false)

	var jerr *JoinCardinalityError
	require.ErrorAs(t, err, &jerr)
	assert.Equal(t, int64(3), jerr.EventID)
	assert.Equal(t, 0, jerr.Matches)
}

func TestExtractSNRSeriesDuplicateAuthorityRows(t *testing.T) {
	doc := &Document{Children: []Node{
		&Container{Children: []Node{
			inspiralAuthority(1, 1),
			snrBlock(1, GPSTime{Seconds: 1000}),
		}},
	}}

	_, err := ExtractSNRSeries(doc, false)

	var jerr *JoinCardinalityError
	require.ErrorAs(t, err, &jerr)
	assert.Equal(t, 2, jerr.Matches)
}

func TestExtractSNRSeriesMissingEventIDParam(t *testing.T) {
	block := snrBlock(1, GPSTime{Seconds: 1000})
	// Drop the event_id param.
	block.Children = []Node{block.Children[0], block.Children[2]}

	doc := &Document{Children: []Node{
		&Container{Children: []Node{
			inspiralAuthority(1),
			block,
		}},
	}}

	_, err := ExtractSNRSeries(doc, false)

	var jerr *JoinCardinalityError
	require.ErrorAs(t, err, &jerr)
	assert.Equal(t, 0, jerr.Matches)
}

func TestExtractSNRSeriesMissingAuthorityTable(t *testing.T) {
	doc := &Document{Children: []Node{
		&Container{Children: []Node{
			snrBlock(1, GPSTime{Seconds: 1000}),
		}},
	}}

	_, err := ExtractSNRSeries(doc, false)

	var nerr *NotFoundError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, SnglInspiralTableName, nerr.Name)
}

func TestExtractSNRSeriesMissingEpoch(t *testing.T) {
	block := snrBlock(1, GPSTime{})
	// Drop the epoch element.
	block.Children = block.Children[1:]

	doc := &Document{Children: []Node{
		&Container{Children: []Node{
			inspiralAuthority(1),
			block,
		}},
	}}

	// Without epoch offsetting the block is fine.
	_, err := ExtractSNRSeries(doc, false)
	assert.NoError(t, err)

	// With it, the absent epoch is an error.
	_, err = ExtractSNRSeries(doc, true)

	var ferr *FormatError
	assert.ErrorAs(t, err, &ferr)
}
