package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/divi255/rgbmon"
)

func TestTargetColor(t *testing.T) {
	m := NewMonitor(rgbmon.New(rgbmon.Config{}), MonitorOptions{LoadDiff: 1})

	// Without a default color everything goes through the gradient.
	assert.Equal(t,
		rgbmon.Rainbow(30, gradientTotal, gradientStart, gradientEnd),
		m.targetColor(30))

	idle, err := rgbmon.ParseHex("102030")
	require.NoError(t, err)
	m.SetDefaultColor(10, idle)

	assert.Equal(t, idle, m.targetColor(0))
	assert.Equal(t, idle, m.targetColor(10))
	assert.Equal(t,
		rgbmon.Rainbow(11, gradientTotal, gradientStart, gradientEnd),
		m.targetColor(11))
}

func TestParseDefaultColor(t *testing.T) {
	minLoad, color, err := parseDefaultColor("15:00FF20")
	require.NoError(t, err)
	assert.Equal(t, uint8(15), minLoad)
	assert.Equal(t, rgbmon.RGBColor{Red: 0, Green: 0xFF, Blue: 0x20}, color)

	for _, in := range []string{"", "102030", "x:102030", "300:102030", "5:10203"} {
		_, _, err := parseDefaultColor(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestAbsDiff(t *testing.T) {
	assert.Equal(t, uint8(0), absDiff(7, 7))
	assert.Equal(t, uint8(5), absDiff(2, 7))
	assert.Equal(t, uint8(5), absDiff(7, 2))
}
