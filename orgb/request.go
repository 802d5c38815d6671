package orgb

import "encoding/binary"

// VersionPayload builds the body of a protocol-version negotiation or
// controller-data request: the client's protocol version, little-endian.
func VersionPayload(version uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, version)
	return buf
}

// ClientNamePayload builds the body of a set-client-name request:
// name and version, space-delimited, NUL-terminated.
func ClientNamePayload(name, version string) []byte {
	buf := make([]byte, 0, len(name)+len(version)+2)
	buf = append(buf, name...)
	buf = append(buf, ' ')
	buf = append(buf, version...)
	buf = append(buf, 0)
	return buf
}

// ColorPayload builds the body of an update-leds request setting every LED
// of a controller to the same color: a u32 total-length field valued
// 4*ledCount+6, the u16 LED count, then ledCount (r,g,b,0x00) quadruplets.
// The fourth byte of each quadruplet is fixed padding required by the wire
// format, not an alpha channel.
func ColorPayload(ledCount uint16, red, green, blue uint8) []byte {
	buf := make([]byte, 6, 6+4*int(ledCount))
	binary.LittleEndian.PutUint32(buf[0:4], 4*uint32(ledCount)+6)
	binary.LittleEndian.PutUint16(buf[4:6], ledCount)
	for i := 0; i < int(ledCount); i++ {
		buf = append(buf, red, green, blue, 0x00)
	}
	return buf
}
