package ligolw

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCells(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []cell
	}{
		{
			name:     "trailing delimiter",
			text:     "1,2,3,",
			expected: []cell{{text: "1"}, {text: "2"}, {text: "3"}},
		},
		{
			name:     "no trailing delimiter",
			text:     "1,2,3",
			expected: []cell{{text: "1"}, {text: "2"}, {text: "3"}},
		},
		{
			name:     "quoted strings",
			text:     `"H1","a,b",`,
			expected: []cell{{text: "H1", quoted: true}, {text: "a,b", quoted: true}},
		},
		{
			name:     "escapes inside quotes",
			text:     `"a\"b","c\\d",`,
			expected: []cell{{text: `a"b`, quoted: true}, {text: `c\d`, quoted: true}},
		},
		{
			name:     "empty unquoted cell",
			text:     "1,,3,",
			expected: []cell{{text: "1"}, {text: ""}, {text: "3"}},
		},
		{
			name:     "empty quoted cell",
			text:     `1,"",3,`,
			expected: []cell{{text: "1"}, {text: "", quoted: true}, {text: "3"}},
		},
		{
			name:     "interleaved whitespace",
			text:     "1,\n\t 2 ,\n3,",
			expected: []cell{{text: "1"}, {text: "2"}, {text: "3"}},
		},
		{
			name:     "empty stream",
			text:     "\n\t",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitCells(tt.text, ','))
		})
	}
}

func TestReadDocumentSkipsUnknownElements(t *testing.T) {
	doc, err := ReadDocument(strings.NewReader(`<LIGO_LW>
		<Comment>free text</Comment>
		<Table Name="process:table">
			<Column Name="process_id" Type="int_8s"/>
			<Stream Name="process:table" Type="Local" Delimiter=",">
				0,
			</Stream>
		</Table>
	</LIGO_LW>`))
	require.NoError(t, err)

	table, err := doc.GetTable("process")
	require.NoError(t, err)
	assert.Len(t, table.Rows, 1)
}

func TestReadDocumentStreamMustTileColumns(t *testing.T) {
	_, err := ReadDocument(strings.NewReader(`<LIGO_LW>
		<Table Name="process:table">
			<Column Name="process_id" Type="int_8s"/>
			<Column Name="program" Type="lstring"/>
			<Stream Name="process:table" Type="Local" Delimiter=",">
				0,"pipeline",1,
			</Stream>
		</Table>
	</LIGO_LW>`))

	var ferr *FormatError
	assert.ErrorAs(t, err, &ferr)
}

func TestReadDocumentUnpopulatedCells(t *testing.T) {
	doc, err := ReadDocument(strings.NewReader(`<LIGO_LW>
		<Table Name="process:table">
			<Column Name="process_id" Type="int_8s"/>
			<Column Name="program" Type="lstring"/>
			<Stream Name="process:table" Type="Local" Delimiter=",">
				0,,
				1,"",
			</Stream>
		</Table>
	</LIGO_LW>`))
	require.NoError(t, err)

	table, err := doc.GetTable("process")
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)

	// Empty unquoted is unpopulated; empty quoted is the empty string.
	assert.False(t, table.Rows[0].Has("program"))
	assert.True(t, table.Rows[1].Has("program"))
	assert.Equal(t, "", table.Rows[1].Value("program"))
}

func TestReadDocumentArray(t *testing.T) {
	doc, err := ReadDocument(strings.NewReader(`<LIGO_LW>
		<LIGO_LW Name="COMPLEX8TimeSeries">
			<Time Type="GPS" Name="epoch">1000.5</Time>
			<Param Name="event_id:param" Type="int_8s">7</Param>
			<Array Name="snr:array" Type="real_4" Unit="">
				<Dim Name="Time" Unit="s" Start="0" Scale="0.5">2</Dim>
				<Dim Name="Time,Real,Imaginary" Unit="dimensionless">3</Dim>
				<Stream Type="Local" Delimiter=" ">
					0 1.5 -0.5
					0.5 2.5 0.25
				</Stream>
			</Array>
		</LIGO_LW>
	</LIGO_LW>`))
	require.NoError(t, err)

	blocks := doc.Containers("COMPLEX8TimeSeries")
	require.Len(t, blocks, 1)

	arrays := blocks[0].Arrays("snr")
	require.Len(t, arrays, 1)

	arr := arrays[0]
	assert.Equal(t, 2, arr.NumSamples())
	assert.Equal(t, 3, arr.NumComponents())
	assert.Equal(t, []float64{1.5, 2.5}, arr.Component(1))
	assert.Equal(t, []float64{-0.5, 0.25}, arr.Component(2))

	dt, ok := arr.SampleInterval()
	assert.True(t, ok)
	assert.Equal(t, 0.5, dt)

	epoch := blocks[0].Epoch("epoch")
	require.NotNil(t, epoch)
	assert.Equal(t, GPSTime{Seconds: 1000, Nanoseconds: 500000000}, epoch.Value)
}

func TestReadDocumentArrayCellCountMismatch(t *testing.T) {
	_, err := ReadDocument(strings.NewReader(`<LIGO_LW>
		<Array Name="snr:array" Type="real_4">
			<Dim>2</Dim>
			<Dim>3</Dim>
			<Stream Type="Local" Delimiter=" ">
				1 2 3 4 5
			</Stream>
		</Array>
	</LIGO_LW>`))

	var ferr *FormatError
	assert.ErrorAs(t, err, &ferr)
}

func buildTestDocument(t *testing.T) *Document {
	t.Helper()

	table := NewTable("process",
		&Column{Name: "process_id", Type: TypeInt8S},
		&Column{Name: "program", Type: TypeLString},
		&Column{Name: "duration", Type: TypeReal8},
	)

	row := table.NewRow()
	require.NoError(t, row.SetValue("process_id", int64(0)))
	require.NoError(t, row.SetValue("program", `gstlal "spiir"`))
	require.NoError(t, row.SetValue("duration", 1.25))
	table.AppendRow(row)

	// Second row leaves program unpopulated.
	row = table.NewRow()
	require.NoError(t, row.SetValue("process_id", int64(1)))
	require.NoError(t, row.SetValue("duration", -2.5))
	table.AppendRow(row)

	arr := &Array{
		Name: "snr:array",
		Type: TypeReal4,
		Dims: []Dim{
			{Name: "Time", Unit: "s", N: 2, Start: 0, Scale: 0.5, HasStart: true, HasScale: true},
			{Name: "Time,Real,Imaginary", N: 3},
		},
		Flat: []float64{0, 1.5, -0.5, 0.5, 2.5, 0.25},
	}

	return &Document{Children: []Node{
		&Container{Children: []Node{
			table,
			&Param{Name: "event_id:param", Type: TypeInt8S, Value: int64(7)},
			&Container{Name: "COMPLEX8TimeSeries", Children: []Node{
				&Time{Name: "epoch", Value: GPSTime{Seconds: 1000}},
				arr,
			}},
		}},
	}}
}

func TestWriteReadRoundTrip(t *testing.T) {
	var sb strings.Builder

	doc := buildTestDocument(t)
	require.NoError(t, WriteDocument(&sb, doc))

	got, err := ReadDocument(strings.NewReader(sb.String()))
	require.NoError(t, err)

	table, err := got.GetTable("process")
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)

	program, ok := table.Rows[0].String("program")
	assert.True(t, ok)
	assert.Equal(t, `gstlal "spiir"`, program)

	assert.False(t, table.Rows[1].Has("program"))

	duration, ok := table.Rows[1].Float64("duration")
	assert.True(t, ok)
	assert.Equal(t, -2.5, duration)

	blocks := got.Containers("COMPLEX8TimeSeries")
	require.Len(t, blocks, 1)

	arrays := blocks[0].Arrays("snr")
	require.Len(t, arrays, 1)
	assert.Equal(t, []float64{0, 1.5, -0.5, 0.5, 2.5, 0.25}, arrays[0].Flat)
}

func TestSaveLoadGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.xml.gz")

	doc := buildTestDocument(t)
	require.NoError(t, SaveDocument(path, doc))

	got, err := LoadDocument(path)
	require.NoError(t, err)

	table, err := got.GetTable("process")
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
}
