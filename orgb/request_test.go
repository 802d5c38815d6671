package orgb

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestColorPayload(t *testing.T) {
	tests := []struct {
		name     string
		ledCount uint16
	}{
		{"zero leds", 0},
		{"one led", 1},
		{"three leds", 3},
		{"many leds", 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := ColorPayload(tt.ledCount, 0xAB, 0xCD, 0xEF)

			wantTotal := 6 + 4*int(tt.ledCount)
			if len(payload) != wantTotal {
				t.Fatalf("payload size = %d, want %d", len(payload), wantTotal)
			}
			// The length field value is 4*n+6, which also equals the total
			// payload size including the field itself.
			if got := binary.LittleEndian.Uint32(payload[0:4]); got != uint32(4*int(tt.ledCount)+6) {
				t.Errorf("length field = %d, want %d", got, 4*int(tt.ledCount)+6)
			}
			if got := binary.LittleEndian.Uint16(payload[4:6]); got != tt.ledCount {
				t.Errorf("led count = %d, want %d", got, tt.ledCount)
			}
			for i := 0; i < int(tt.ledCount); i++ {
				entry := payload[6+4*i : 10+4*i]
				if !bytes.Equal(entry, []byte{0xAB, 0xCD, 0xEF, 0x00}) {
					t.Fatalf("led %d entry = %v", i, entry)
				}
			}
		})
	}
}

func TestClientNamePayload(t *testing.T) {
	payload := ClientNamePayload("rgbmon", "0.1.0")
	if !bytes.Equal(payload, []byte("rgbmon 0.1.0\x00")) {
		t.Errorf("payload = %q", payload)
	}
}

func TestVersionPayload(t *testing.T) {
	if !bytes.Equal(VersionPayload(2), []byte{2, 0, 0, 0}) {
		t.Errorf("payload = %v", VersionPayload(2))
	}
}
