package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBool(t *testing.T) {
	tests := []struct {
		input string
		value bool
		ok    bool
	}{
		{input: "y", value: true, ok: true},
		{input: "Yes", value: true, ok: true},
		{input: "TRUE", value: true, ok: true},
		{input: "t", value: true, ok: true},
		{input: "on", value: true, ok: true},
		{input: "1", value: true, ok: true},
		{input: " y ", value: true, ok: true},
		{input: "n", value: false, ok: true},
		{input: "No", value: false, ok: true},
		{input: "FALSE", value: false, ok: true},
		{input: "f", value: false, ok: true},
		{input: "off", value: false, ok: true},
		{input: "0", value: false, ok: true},
		{input: "", ok: false},
		{input: "maybe", ok: false},
		{input: "2", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			value, ok := ParseBool(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.value, value)
			}
		})
	}
}

func TestHTTPStatusError(t *testing.T) {
	err := HTTPStatusError(404, "https://example.net/latest.php")
	assert.Equal(t, "status=404 url=https://example.net/latest.php", err.Error())
}
