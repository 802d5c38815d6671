package rgbmon

import (
	"fmt"
	"strconv"
)

// RGBColor is an immutable 8-bit-per-channel RGB triplet.
type RGBColor struct {
	Red   uint8
	Green uint8
	Blue  uint8
}

// NewRGBColor returns the color with the given channel values.
func NewRGBColor(red, green, blue uint8) RGBColor {
	return RGBColor{Red: red, Green: green, Blue: blue}
}

// Black returns the all-off color.
func Black() RGBColor {
	return RGBColor{}
}

// ParseHex parses a color from its "RRGGBB" form, case-insensitive.
func ParseHex(s string) (RGBColor, error) {
	if len(s) != 6 {
		return RGBColor{}, fmt.Errorf("rgbmon: invalid color %q: want 6 hex digits", s)
	}
	var ch [3]uint8
	for i := range ch {
		v, err := strconv.ParseUint(s[2*i:2*i+2], 16, 8)
		if err != nil {
			return RGBColor{}, fmt.Errorf("rgbmon: invalid color %q: %w", s, err)
		}
		ch[i] = uint8(v)
	}
	return RGBColor{Red: ch[0], Green: ch[1], Blue: ch[2]}, nil
}

// Hex formats the color as uppercase "RRGGBB".
func (c RGBColor) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.Red, c.Green, c.Blue)
}

func (c RGBColor) String() string {
	return c.Hex()
}

// Rainbow maps a step on a [start, end] sub-range of a gradient with total
// unit steps onto a hue-wheel color. It is a pure function: identical
// inputs always produce the identical color, and all math is float32 so
// the output matches other implementations of the same gradient bit for
// bit. Channel values never exceed 235.
func Rainbow(step, total, start, end uint32) RGBColor {
	coef := float32(total-start)/float32(total) - float32(total-end)/float32(total)
	sstep := float32(step)*coef*float32(total)/100 + float32(start)
	h := 1 - sstep/float32(total)

	// The hue sextant index. float32→uint conversion is undefined for
	// negative values in Go, so clamp first.
	hh := h * 6
	if hh < 0 {
		hh = 0
	}
	i := uint32(hh)
	f := h*6 - float32(i)
	q := 1 - f

	var r, g, b float32
	switch i % 6 {
	case 0:
		r, g, b = 1, f, 0
	case 1:
		r, g, b = q, 1, 0
	case 2:
		r, g, b = 0, 1, f
	case 3:
		r, g, b = 0, q, 1
	case 4:
		r, g, b = f, 0, 1
	case 5:
		r, g, b = 1, 0, q
	}
	return RGBColor{
		Red:   clampChannel(r * 235),
		Green: clampChannel(g * 235),
		Blue:  clampChannel(b * 235),
	}
}

func clampChannel(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
