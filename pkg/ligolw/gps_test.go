package ligolw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGPSTime(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected GPSTime
	}{
		{name: "integer", text: "1187008882", expected: GPSTime{Seconds: 1187008882}},
		{name: "short fraction", text: "1187008882.42", expected: GPSTime{Seconds: 1187008882, Nanoseconds: 420000000}},
		{name: "full fraction", text: "1187008882.428765029", expected: GPSTime{Seconds: 1187008882, Nanoseconds: 428765029}},
		{name: "overlong fraction truncates", text: "1.0000000019", expected: GPSTime{Seconds: 1, Nanoseconds: 1}},
		{name: "surrounding whitespace", text: "\n\t100.5 ", expected: GPSTime{Seconds: 100, Nanoseconds: 500000000}},
		{name: "zero", text: "0", expected: GPSTime{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseGPSTime(tt.text)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseGPSTimeInvalid(t *testing.T) {
	for _, text := range []string{"", "abc", "1.2.3"} {
		_, err := ParseGPSTime(text)
		assert.Error(t, err, text)
	}
}

func TestGPSTimeString(t *testing.T) {
	assert.Equal(t, "1187008882", GPSTime{Seconds: 1187008882}.String())
	assert.Equal(t, "1187008882.42", GPSTime{Seconds: 1187008882, Nanoseconds: 420000000}.String())
	assert.Equal(t, "1.000000001", GPSTime{Seconds: 1, Nanoseconds: 1}.String())
}

func TestGPSTimeFloat(t *testing.T) {
	assert.InDelta(t, 1000.5, GPSTime{Seconds: 1000, Nanoseconds: 500000000}.Float(), 1e-9)
}
