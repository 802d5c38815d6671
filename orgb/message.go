package orgb

import (
	"bytes"
	"encoding/binary"
)

// EncodeMessage frames a request for the wire: the 16-byte envelope
// followed by the payload. A nil payload produces a zero-length body.
func EncodeMessage(deviceID, msgType uint32, payload []byte) []byte {
	msg := make([]byte, HeaderSize+len(payload))
	copy(msg[0:4], MagicTag[:])
	binary.LittleEndian.PutUint32(msg[4:8], deviceID)
	binary.LittleEndian.PutUint32(msg[8:12], msgType)
	binary.LittleEndian.PutUint32(msg[12:16], uint32(len(payload)))
	copy(msg[HeaderSize:], payload)
	return msg
}

// DecodeHeader parses and validates a response envelope. It checks the
// magic tag only; echo validation against the request is the caller's job
// since only the caller knows what it sent.
func DecodeHeader(hdr [HeaderSize]byte) (deviceID, msgType, payloadLen uint32, err error) {
	if !bytes.Equal(hdr[0:4], MagicTag[:]) {
		return 0, 0, 0, parseErrorf(0, "invalid magic tag %q", hdr[0:4])
	}
	deviceID = binary.LittleEndian.Uint32(hdr[4:8])
	msgType = binary.LittleEndian.Uint32(hdr[8:12])
	payloadLen = binary.LittleEndian.Uint32(hdr[12:16])
	if payloadLen > MaxPayloadSize {
		return 0, 0, 0, parseErrorf(12, "payload length %d exceeds limit", payloadLen)
	}
	return deviceID, msgType, payloadLen, nil
}
