package rgbmon

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"

	"github.com/divi255/rgbmon/orgb"
)

// Controller is one directory entry: a lighting device exposed by the
// server. The ID is assigned by enumeration order during Load, not by the
// server. Entries are replaced wholesale on every load and never mutated
// in place.
type Controller struct {
	ID         uint32
	Name       string
	DeviceType uint32
	Metadata   ControllerMetadata
	Leds       []Led
}

// ControllerMetadata holds the free-form descriptive strings of a
// controller. No invariants beyond valid text.
type ControllerMetadata struct {
	Vendor      string
	Description string
	Version     string
	Serial      string
	Location    string
}

// Led is a named LED with an opaque hardware-specific 32-bit value.
type Led struct {
	Name  string
	Value uint32
}

// newController converts a decoded wire descriptor into a directory entry,
// stamping it with the enumeration-order id.
func newController(id uint32, w *orgb.Controller) Controller {
	c := Controller{
		ID:         id,
		Name:       w.Name,
		DeviceType: w.Type,
		Metadata: ControllerMetadata{
			Vendor:      w.Metadata.Vendor,
			Description: w.Metadata.Description,
			Version:     w.Metadata.Version,
			Serial:      w.Metadata.Serial,
			Location:    w.Metadata.Location,
		},
		Leds: make([]Led, 0, len(w.Leds)),
	}
	for _, led := range w.Leds {
		c.Leds = append(c.Leds, Led{Name: led.Name, Value: led.Value})
	}
	return c
}

// directoryFingerprint hashes the identity of every directory entry into a
// single 64-bit value. Two directories with the same controllers in the
// same order produce the same fingerprint, so a caller can tell whether a
// reload changed the controller topology.
func directoryFingerprint(dir []Controller) uint64 {
	h := xxh3.New()
	var num [4]byte
	for _, c := range dir {
		_, _ = h.WriteString(c.Name)
		_, _ = h.WriteString(c.Metadata.Serial)
		_, _ = h.WriteString(c.Metadata.Location)
		binary.LittleEndian.PutUint32(num[:], c.DeviceType)
		_, _ = h.Write(num[:])
		binary.LittleEndian.PutUint32(num[:], uint32(len(c.Leds)))
		_, _ = h.Write(num[:])
	}
	return h.Sum64()
}
