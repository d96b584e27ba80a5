package domain

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#12ab34", color.RGBA{R: 0x12, G: 0xab, B: 0x34, A: 0xff}},
		{"#FF0000", color.RGBA{R: 0xff, A: 0xff}},
		{"#0f0", color.RGBA{G: 0xff, A: 0xff}},
		{"red", color.RGBA{R: 0xff, A: 0xff}},
		{"DarkBlue", color.RGBA{B: 0x8b, A: 0xff}},
		{"transparent", color.RGBA{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, in := range []string{"not-a-color", "", "#12ab3", "#12ab3g", "#1234567"} {
		_, err := ParseColor(in)
		assert.Error(t, err, in)
	}
}

func TestColorHex(t *testing.T) {
	assert.Equal(t, "#12ab34", ColorHex(color.RGBA{R: 0x12, G: 0xab, B: 0x34, A: 0xff}))
}
