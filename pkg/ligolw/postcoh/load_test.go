package postcoh

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyPostcohDoc = `<?xml version='1.0' encoding='utf-8'?>
<!DOCTYPE LIGO_LW SYSTEM "http://ldas-sw.ligo.caltech.edu/doc/ligolwAPI/html/ligolw_dtd.txt">
<LIGO_LW>
	<Table Name="postcoh:table">
		<Column Name="postcoh:process_id" Type="ilwd:char"/>
		<Column Name="postcoh:event_id" Type="ilwd:char"/>
		<Column Name="postcoh:end_time" Type="int_4s"/>
		<Column Name="postcoh:end_time_ns" Type="int_4s"/>
		<Column Name="postcoh:ifos" Type="lstring"/>
		<Column Name="postcoh:cohsnr" Type="real_4"/>
		<Stream Name="postcoh:table" Type="Local" Delimiter=",">
			"process:process_id:0","postcoh:event_id:1",1187008882,420000000,"H1L1",11.5,
			"process:process_id:0","postcoh:event_id:2",1187008901,0,"H1L1V1",9.25,
		</Stream>
	</Table>
</LIGO_LW>
`

const modernPostcohDoc = `<?xml version='1.0' encoding='utf-8'?>
<!DOCTYPE LIGO_LW SYSTEM "http://ldas-sw.ligo.caltech.edu/doc/ligolwAPI/html/ligolw_dtd.txt">
<LIGO_LW>
	<Table Name="postcoh:table">
		<Column Name="process_id" Type="int_8s"/>
		<Column Name="event_id" Type="int_8s"/>
		<Column Name="end_time" Type="int_4s"/>
		<Column Name="end_time_ns" Type="int_4s"/>
		<Column Name="ifos" Type="lstring"/>
		<Column Name="cohsnr" Type="real_4"/>
		<Stream Name="postcoh:table" Type="Local" Delimiter=",">
			0,3,1187009000,0,"H1L1",13.75,
		</Stream>
	</Table>
</LIGO_LW>
`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func TestLoadLegacy(t *testing.T) {
	path := writeFixture(t, "zerolag.xml", legacyPostcohDoc)

	events, err := Load([]string{path}, WithLegacySchema())
	require.NoError(t, err)
	assert.Equal(t, 2, events.Len())

	// Legacy identifiers surface as plain integers.
	ids, ok := events.Column("event_id")
	require.True(t, ok)
	assert.Equal(t, int64(1), ids[0])
	assert.Equal(t, int64(2), ids[1])

	snrs, ok := events.Column("cohsnr")
	require.True(t, ok)
	assert.Equal(t, float32(11.5), snrs[0])
	assert.Equal(t, float32(9.25), snrs[1])

	// Columns absent from the document stay unpopulated.
	ranks, ok := events.Column("rank")
	require.True(t, ok)
	assert.Nil(t, ranks[0])
}

func TestLoadModern(t *testing.T) {
	path := writeFixture(t, "zerolag.xml", modernPostcohDoc)

	events, err := Load([]string{path})
	require.NoError(t, err)
	assert.Equal(t, 1, events.Len())

	ids, ok := events.Column("event_id")
	require.True(t, ok)
	assert.Equal(t, int64(3), ids[0])
}

func TestLoadColumnSelection(t *testing.T) {
	path := writeFixture(t, "zerolag.xml", legacyPostcohDoc)

	events, err := Load([]string{path}, WithLegacySchema(), WithColumns("event_id", "cohsnr"))
	require.NoError(t, err)

	require.Len(t, events.Columns, 2)
	assert.Equal(t, "event_id", events.Columns[0].Name)
	assert.Equal(t, "cohsnr", events.Columns[1].Name)

	_, ok := events.Column("ifos")
	assert.False(t, ok)
}

func TestLoadUnknownColumn(t *testing.T) {
	path := writeFixture(t, "zerolag.xml", legacyPostcohDoc)

	_, err := Load([]string{path}, WithLegacySchema(), WithColumns("no_such_column"))
	assert.Error(t, err)
}

func TestLoadMultipleDocuments(t *testing.T) {
	legacy := writeFixture(t, "legacy.xml", legacyPostcohDoc)

	events, err := Load([]string{legacy, legacy}, WithLegacySchema())
	require.NoError(t, err)
	assert.Equal(t, 4, events.Len())
}

func TestLoadEventTableColumnTypes(t *testing.T) {
	path := writeFixture(t, "zerolag.xml", legacyPostcohDoc)

	events, err := Load([]string{path}, WithLegacySchema(), WithColumns("event_id"))
	require.NoError(t, err)

	// Loading normalizes, so the declared type reflects the integer form.
	assert.Equal(t, "int_8s", events.Columns[0].Type.String())
}
