package orgb

// Controller is the decoded form of one controller-data payload. Fields
// not needed for solid-color updates (modes, zones) are parsed past but
// not retained.
type Controller struct {
	Type     uint32
	Name     string
	Metadata Metadata
	Leds     []Led
}

// Metadata holds the free-form descriptive strings of a controller.
type Metadata struct {
	Vendor      string
	Description string
	Version     string
	Serial      string
	Location    string
}

// Led is a single LED entry: a name and an opaque hardware-specific value.
type Led struct {
	Name  string
	Value uint32
}

// Layout constants of the controller-data payload. The format is not
// self-describing beyond its counts, so these offsets must match the
// server exactly.
const (
	modeFixedSize = 36 // value, flags, speed/color ranges, speed, direction, color mode
	zoneFixedSize = 18 // type, LED min/max/count, matrix map length
)

// UnmarshalController decodes one controller-data payload.
//
// The payload opens with a u32 duplicate of its own size (skipped), then
// the u32 device type, six length-prefixed strings, the mode table, the
// zone table and the LED table. Mode and zone bodies are skipped with
// fixed-offset arithmetic; only their counts matter for keeping the cursor
// aligned. Any count that would run past the end of the payload returns a
// ParseError.
func UnmarshalController(data []byte) (*Controller, error) {
	r := newReader(data)

	// Duplicate size field, unused. The envelope already carries the
	// authoritative length.
	if _, err := r.uint32(); err != nil {
		return nil, err
	}

	c := &Controller{}
	var err error
	if c.Type, err = r.uint32(); err != nil {
		return nil, err
	}
	if c.Name, err = r.readString(); err != nil {
		return nil, err
	}
	if c.Metadata.Vendor, err = r.readString(); err != nil {
		return nil, err
	}
	if c.Metadata.Description, err = r.readString(); err != nil {
		return nil, err
	}
	if c.Metadata.Version, err = r.readString(); err != nil {
		return nil, err
	}
	if c.Metadata.Serial, err = r.readString(); err != nil {
		return nil, err
	}
	if c.Metadata.Location, err = r.readString(); err != nil {
		return nil, err
	}

	if err := skipModes(r); err != nil {
		return nil, err
	}
	if err := skipZones(r); err != nil {
		return nil, err
	}

	numLeds, err := r.uint16()
	if err != nil {
		return nil, err
	}
	// Cheapest possible LED entry: empty name (2 bytes) plus the u32
	// value. Checked before allocation so a corrupt count cannot force a
	// huge make().
	if err := r.need(int(numLeds) * 6); err != nil {
		return nil, err
	}
	c.Leds = make([]Led, 0, numLeds)
	for i := 0; i < int(numLeds); i++ {
		var led Led
		if led.Name, err = r.readString(); err != nil {
			return nil, err
		}
		if led.Value, err = r.uint32(); err != nil {
			return nil, err
		}
		c.Leds = append(c.Leds, led)
	}

	if r.remaining() != 0 {
		return nil, parseErrorf(r.pos, "%d trailing bytes after controller data", r.remaining())
	}
	return c, nil
}

func skipModes(r *reader) error {
	numModes, err := r.uint16()
	if err != nil {
		return err
	}
	// Active mode index, opaque to this client.
	if _, err := r.uint32(); err != nil {
		return err
	}
	for i := 0; i < int(numModes); i++ {
		if _, err := r.readString(); err != nil {
			return err
		}
		if err := r.skip(modeFixedSize); err != nil {
			return err
		}
		numColors, err := r.uint16()
		if err != nil {
			return err
		}
		if err := r.skip(int(numColors) * 4); err != nil {
			return err
		}
	}
	return nil
}

func skipZones(r *reader) error {
	numZones, err := r.uint16()
	if err != nil {
		return err
	}
	for i := 0; i < int(numZones); i++ {
		if _, err := r.readString(); err != nil {
			return err
		}
		block, err := r.bytes(zoneFixedSize)
		if err != nil {
			return err
		}
		if block[0] != ZoneTypeMatrix {
			continue
		}
		height, err := r.uint32()
		if err != nil {
			return err
		}
		width, err := r.uint32()
		if err != nil {
			return err
		}
		// height*width comes straight off the wire; do the size math in
		// int64 so a corrupt pair cannot wrap before the bounds check.
		mapLen := int64(height) * int64(width) * 4
		if mapLen > int64(r.remaining()) {
			return parseErrorf(r.pos, "matrix map %dx%d exceeds %d remaining bytes", height, width, r.remaining())
		}
		if err := r.skip(int(mapLen)); err != nil {
			return err
		}
	}
	return nil
}
