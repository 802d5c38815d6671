package rgbmon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    RGBColor
		wantErr bool
	}{
		{"000000", RGBColor{0, 0, 0}, false},
		{"FFFFFF", RGBColor{255, 255, 255}, false},
		{"ff00aa", RGBColor{255, 0, 170}, false},
		{"DeAdBe", RGBColor{0xDE, 0xAD, 0xBE}, false},
		{"12345", RGBColor{}, true},
		{"1234567", RGBColor{}, true},
		{"GG0000", RGBColor{}, true},
		{"", RGBColor{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	// Walk each channel through its full range with the others pinned.
	for v := 0; v <= 255; v++ {
		for _, c := range []RGBColor{
			{Red: uint8(v), Green: 0x7F, Blue: 0x01},
			{Red: 0x01, Green: uint8(v), Blue: 0x7F},
			{Red: 0x7F, Green: 0x01, Blue: uint8(v)},
		} {
			parsed, err := ParseHex(c.Hex())
			require.NoError(t, err)
			require.Equal(t, c, parsed)
		}
	}
}

func TestHexFormat(t *testing.T) {
	assert.Equal(t, "00FF0A", RGBColor{0x00, 0xFF, 0x0A}.Hex())
	assert.Equal(t, "000000", Black().String())
}

// The gradient constants the reference daemon maps CPU load with.
const (
	gradientTotal = 0xFFFFFF
	gradientStart = 4340064
	gradientEnd   = 0xFFFFFF
)

func TestRainbowDeterministic(t *testing.T) {
	for step := uint32(0); step <= 100; step += 5 {
		first := Rainbow(step, gradientTotal, gradientStart, gradientEnd)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, Rainbow(step, gradientTotal, gradientStart, gradientEnd), "step %d", step)
		}
	}
}

func TestRainbowSaturationCeiling(t *testing.T) {
	for step := uint32(0); step <= 100; step++ {
		c := Rainbow(step, gradientTotal, gradientStart, gradientEnd)
		assert.LessOrEqual(t, c.Red, uint8(235), "step %d", step)
		assert.LessOrEqual(t, c.Green, uint8(235), "step %d", step)
		assert.LessOrEqual(t, c.Blue, uint8(235), "step %d", step)
	}
}

func TestRainbowDistinctSteps(t *testing.T) {
	// Load 0 and load 100 must land on clearly different hues.
	low := Rainbow(0, gradientTotal, gradientStart, gradientEnd)
	high := Rainbow(100, gradientTotal, gradientStart, gradientEnd)
	assert.NotEqual(t, low, high)
}
