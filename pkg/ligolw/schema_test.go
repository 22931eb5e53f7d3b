package ligolw

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLastWriterWins(t *testing.T) {
	first := NewTableSchema("postcoh", "",
		ColumnDef{Name: "event_id", Type: TypeInt8S},
	)
	second := NewTableSchema("postcoh", "",
		ColumnDef{Name: "event_id", Type: TypeInt8S},
		ColumnDef{Name: "cohsnr", Type: TypeReal4},
	)

	reg := NewRegistry()
	reg.Register(first)
	reg.Register(second)

	got, ok := reg.Lookup("postcoh")
	assert.True(t, ok)
	assert.Same(t, second, got)
}

func TestRegistryMissIsNotAnError(t *testing.T) {
	reg := NewRegistry()

	_, ok := reg.Lookup("postcoh")
	assert.False(t, ok)

	// An unregistered table still parses down the generic path.
	doc, err := ReadDocument(strings.NewReader(`<LIGO_LW>
		<Table Name="postcoh:table">
			<Column Name="event_id" Type="int_8s"/>
			<Stream Name="postcoh:table" Type="Local" Delimiter=",">
				1,
			</Stream>
		</Table>
	</LIGO_LW>`), WithRegistry(reg))
	require.NoError(t, err)

	table, err := doc.GetTable("postcoh")
	require.NoError(t, err)
	assert.Nil(t, table.Schema)
	assert.Len(t, table.Rows, 1)
}

func TestRegistryDispatchAttachesSchema(t *testing.T) {
	schema := NewTableSchema("postcoh", "PRIMARY KEY (event_id)",
		ColumnDef{Name: "event_id", Type: TypeInt8S},
	)

	reg := NewRegistry()
	reg.Register(schema)

	doc, err := ReadDocument(strings.NewReader(`<LIGO_LW>
		<Table Name="postcoh:table">
			<Column Name="event_id" Type="int_8s"/>
			<Stream Name="postcoh:table" Type="Local" Delimiter=",">
				1,
			</Stream>
		</Table>
	</LIGO_LW>`), WithRegistry(reg))
	require.NoError(t, err)

	table, err := doc.GetTable("postcoh")
	require.NoError(t, err)
	assert.Same(t, schema, table.Schema)
}

func TestRegistryNamesSorted(t *testing.T) {
	reg := NewRegistry()
	reg.Register(NewTableSchema("sngl_inspiral", ""))
	reg.Register(NewTableSchema("postcoh", ""))
	reg.Register(NewTableSchema("process", ""))

	assert.Equal(t, []string{"postcoh", "process", "sngl_inspiral"}, reg.Names())
}

func TestTableSchemaColumnLookups(t *testing.T) {
	schema := NewTableSchema("postcoh", "",
		ColumnDef{Name: "event_id", Type: TypeInt8S},
		ColumnDef{Name: "cohsnr", Type: TypeReal4},
	)

	typ, ok := schema.ColumnType("cohsnr")
	assert.True(t, ok)
	assert.Equal(t, TypeReal4, typ)

	_, ok = schema.ColumnType("nullsnr")
	assert.False(t, ok)

	assert.True(t, schema.HasColumn("event_id"))
	assert.False(t, schema.HasColumn("postcoh:event_id"))

	declared, ok := schema.DeclaredName("event_id")
	assert.True(t, ok)
	assert.Equal(t, "event_id", declared)
}

func TestNewEmptyRowPopulatesDefaults(t *testing.T) {
	schema := NewTableSchema("postcoh", "",
		ColumnDef{Name: "event_id", Type: TypeInt8S},
		ColumnDef{Name: "cohsnr", Type: TypeReal4},
		ColumnDef{Name: "ifos", Type: TypeLString},
	)

	table := schema.NewTable()

	row, err := NewEmptyRow(table)
	require.NoError(t, err)

	assert.Equal(t, int64(0), row.Value("event_id"))
	assert.Equal(t, float32(0), row.Value("cohsnr"))
	assert.Equal(t, "", row.Value("ifos"))
	assert.True(t, row.Has("event_id"))
}
