// Package orgbtest builds wire-format controller-data payloads for tests.
package orgbtest

import "encoding/binary"

// Mode is a mode table entry of a fixture payload.
type Mode struct {
	Name      string
	NumColors int
}

// Zone is a zone table entry of a fixture payload. Matrix dimensions are
// only emitted for Type 2 (matrix) zones.
type Zone struct {
	Name   string
	Type   byte
	Height uint32
	Width  uint32
}

// Led is a LED table entry of a fixture payload.
type Led struct {
	Name  string
	Value uint32
}

// Controller describes a fixture controller to marshal into the wire
// format consumed by orgb.UnmarshalController.
type Controller struct {
	Type        uint32
	Name        string
	Vendor      string
	Description string
	Version     string
	Serial      string
	Location    string
	ActiveMode  uint32
	Modes       []Mode
	Zones       []Zone
	Leds        []Led
}

// Marshal produces the controller-data payload bytes, including the
// leading duplicate-size field.
func (c Controller) Marshal() []byte {
	var body []byte
	body = appendUint32(body, c.Type)
	for _, s := range []string{c.Name, c.Vendor, c.Description, c.Version, c.Serial, c.Location} {
		body = appendString(body, s)
	}

	body = appendUint16(body, uint16(len(c.Modes)))
	body = appendUint32(body, c.ActiveMode)
	for _, m := range c.Modes {
		body = appendString(body, m.Name)
		body = append(body, make([]byte, 36)...)
		body = appendUint16(body, uint16(m.NumColors))
		body = append(body, make([]byte, 4*m.NumColors)...)
	}

	body = appendUint16(body, uint16(len(c.Zones)))
	for _, z := range c.Zones {
		body = appendString(body, z.Name)
		block := make([]byte, 18)
		block[0] = z.Type
		body = append(body, block...)
		if z.Type == 2 {
			body = appendUint32(body, z.Height)
			body = appendUint32(body, z.Width)
			body = append(body, make([]byte, 4*int(z.Height)*int(z.Width))...)
		}
	}

	body = appendUint16(body, uint16(len(c.Leds)))
	for _, l := range c.Leds {
		body = appendString(body, l.Name)
		body = appendUint32(body, l.Value)
	}

	// Duplicate size field counts itself.
	out := appendUint32(nil, uint32(len(body)+4))
	return append(out, body...)
}

// appendString emits the length-prefixed string primitive with the
// C-string NUL terminator counted in the length, as real servers send it.
func appendString(buf []byte, s string) []byte {
	buf = appendUint16(buf, uint16(len(s)+1))
	buf = append(buf, s...)
	return append(buf, 0)
}

func appendUint16(buf []byte, v uint16) []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return append(buf, b[:]...)
}

func appendUint32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}
