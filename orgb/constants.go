package orgb

// ProtocolVersion is the highest OpenRGB SDK protocol version this client
// understands. The server must answer version negotiation with the exact
// same value.
const ProtocolVersion uint32 = 2

// Message type codes used by this client. The SDK protocol defines many
// more; only the ones needed for enumeration and solid-color updates are
// implemented here.
const (
	CmdRequestControllerCount uint32 = 0    // payload ignored by the server
	CmdRequestControllerData  uint32 = 1    // payload: u32 client protocol version
	CmdRequestProtocolVersion uint32 = 40   // payload: u32 client protocol version
	CmdSetClientName          uint32 = 50   // no response
	CmdUpdateLEDs             uint32 = 1050 // no response
)

// HeaderSize is the size of the fixed message envelope:
// 4-byte magic, device id, message type and payload length, little-endian.
const HeaderSize = 16

// MagicTag opens every envelope in both directions.
var MagicTag = [4]byte{'O', 'R', 'G', 'B'}

// ZoneTypeMatrix is the zone type tag that carries an additional
// height/width LED mapping block in controller data.
const ZoneTypeMatrix = 2

// MaxPayloadSize caps the payload length accepted from an envelope before
// allocation. Real controller descriptors are a few KiB; anything near this
// limit means the stream is desynchronized or the server is hostile.
const MaxPayloadSize = 16 << 20
