package ligolw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Type
	}{
		{name: "real_4", text: "real_4", expected: TypeReal4},
		{name: "real_8", text: "real_8", expected: TypeReal8},
		{name: "float alias", text: "float", expected: TypeReal4},
		{name: "double alias", text: "double", expected: TypeReal8},
		{name: "int_4s", text: "int_4s", expected: TypeInt4S},
		{name: "int_8s", text: "int_8s", expected: TypeInt8S},
		{name: "lstring", text: "lstring", expected: TypeLString},
		{name: "ilwd:char", text: "ilwd:char", expected: TypeILWDChar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, err := ParseType(tt.text)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, typ)
		})
	}
}

func TestParseTypeUnknown(t *testing.T) {
	_, err := ParseType("int_2s")
	assert.Error(t, err)

	var uterr *UnknownTypeError
	assert.ErrorAs(t, err, &uterr)
	assert.Equal(t, "int_2s", uterr.Name)
}

func TestTypeStringRoundTrip(t *testing.T) {
	// Every canonical type name parses back to itself.
	for _, typ := range []Type{TypeReal4, TypeReal8, TypeInt4S, TypeInt8S, TypeLString, TypeILWDChar} {
		parsed, err := ParseType(typ.String())
		assert.NoError(t, err)
		assert.Equal(t, typ, parsed)
	}
}

func TestDecodeValue(t *testing.T) {
	tests := []struct {
		name     string
		typ      Type
		text     string
		expected any
	}{
		{name: "real_4", typ: TypeReal4, text: "1.5", expected: float32(1.5)},
		{name: "real_8", typ: TypeReal8, text: "-2.25", expected: float64(-2.25)},
		{name: "int_4s", typ: TypeInt4S, text: "42", expected: int32(42)},
		{name: "int_8s", typ: TypeInt8S, text: "9000000000", expected: int64(9000000000)},
		{name: "lstring", typ: TypeLString, text: "H1", expected: "H1"},
		{name: "ilwd:char", typ: TypeILWDChar, text: "sngl_inspiral:event_id:1", expected: "sngl_inspiral:event_id:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := DecodeValue(tt.typ, tt.text)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestDecodeValueRejectsGarbage(t *testing.T) {
	_, err := DecodeValue(TypeInt4S, "abc")
	assert.Error(t, err)
}

func TestEncodeValue(t *testing.T) {
	tests := []struct {
		name     string
		typ      Type
		value    any
		expected string
	}{
		{name: "float32", typ: TypeReal4, value: float32(1.5), expected: "1.5"},
		{name: "float64", typ: TypeReal8, value: float64(-2.25), expected: "-2.25"},
		{name: "int32", typ: TypeInt4S, value: int32(42), expected: "42"},
		{name: "int64", typ: TypeInt8S, value: int64(9000000000), expected: "9000000000"},
		{name: "string", typ: TypeLString, value: "H1", expected: "H1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := EncodeValue(tt.typ, tt.value)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestDefaultNullValue(t *testing.T) {
	tests := []struct {
		name     string
		typ      Type
		expected any
	}{
		{name: "real_4", typ: TypeReal4, expected: float32(0)},
		{name: "real_8", typ: TypeReal8, expected: float64(0)},
		{name: "int_4s", typ: TypeInt4S, expected: int32(0)},
		{name: "int_8s", typ: TypeInt8S, expected: int64(0)},
		{name: "lstring", typ: TypeLString, expected: ""},
		{name: "ilwd:char", typ: TypeILWDChar, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := DefaultNullValue("any", tt.typ)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestStripNames(t *testing.T) {
	assert.Equal(t, "sngl_inspiral", StripTableName("sngl_inspiral:table"))
	assert.Equal(t, "sngl_inspiral", StripTableName("sngl_inspiral"))
	assert.Equal(t, "postcoh", StripTableName("ligo:postcoh:table"))
	//
	assert.Equal(t, "event_id", StripColumnName("sngl_inspiral:event_id"))
	assert.Equal(t, "event_id", StripColumnName("event_id"))
	//
	assert.Equal(t, "event_id", StripParamName("event_id:param"))
	assert.Equal(t, "event_id", StripParamName("event_id"))
}
