package rgbmon

// ledSetCommand is the ephemeral batch unit of a color-set call: one
// update-leds exchange for one controller. Built from the directory
// snapshot and discarded after the call.
type ledSetCommand struct {
	controllerID uint32
	ledCount     uint16
}

// A Selector chooses which directory entries a SetColor call targets.
// Selectors resolve against the in-memory directory only; they perform no
// I/O of their own.
type Selector interface {
	apply(dir []Controller) ([]ledSetCommand, error)
	String() string
}

func command(c Controller) ledSetCommand {
	return ledSetCommand{controllerID: c.ID, ledCount: uint16(len(c.Leds))}
}

type byID uint32

// ByID selects the first controller with the given id. An empty selection
// is ErrControllerNotFound.
func ByID(id uint32) Selector { return byID(id) }

func (s byID) apply(dir []Controller) ([]ledSetCommand, error) {
	for _, c := range dir {
		if c.ID == uint32(s) {
			return []ledSetCommand{command(c)}, nil
		}
	}
	return nil, ErrControllerNotFound
}

func (s byID) String() string { return "by-id" }

type byName string

// ByName selects every controller with the given display name. An empty
// selection is ErrControllerNotFound.
func ByName(name string) Selector { return byName(name) }

func (s byName) apply(dir []Controller) ([]ledSetCommand, error) {
	var batch []ledSetCommand
	for _, c := range dir {
		if c.Name == string(s) {
			batch = append(batch, command(c))
		}
	}
	if len(batch) == 0 {
		return nil, ErrControllerNotFound
	}
	return batch, nil
}

func (s byName) String() string { return "by-name" }

type byDeviceType uint32

// ByDeviceType selects every controller with the given device-type tag.
// An empty selection is ErrControllerNotFound.
func ByDeviceType(deviceType uint32) Selector { return byDeviceType(deviceType) }

func (s byDeviceType) apply(dir []Controller) ([]ledSetCommand, error) {
	var batch []ledSetCommand
	for _, c := range dir {
		if c.DeviceType == uint32(s) {
			batch = append(batch, command(c))
		}
	}
	if len(batch) == 0 {
		return nil, ErrControllerNotFound
	}
	return batch, nil
}

func (s byDeviceType) String() string { return "by-device-type" }

type byDeviceTypeSet []uint32

// ByDeviceTypeSet selects every controller whose device type is in the
// given set. The selection succeeds when at least one type matched at
// least one controller; a set matching nothing is ErrControllerNotFound.
func ByDeviceTypeSet(deviceTypes ...uint32) Selector {
	return byDeviceTypeSet(deviceTypes)
}

func (s byDeviceTypeSet) apply(dir []Controller) ([]ledSetCommand, error) {
	var batch []ledSetCommand
	for _, t := range s {
		for _, c := range dir {
			if c.DeviceType == t {
				batch = append(batch, command(c))
			}
		}
	}
	if len(batch) == 0 {
		return nil, ErrControllerNotFound
	}
	return batch, nil
}

func (s byDeviceTypeSet) String() string { return "by-device-type-set" }

type allControllers struct{}

// AllControllers selects the entire directory. An empty directory is a
// no-op, not an error: the selection is vacuously satisfied.
func AllControllers() Selector { return allControllers{} }

func (allControllers) apply(dir []Controller) ([]ledSetCommand, error) {
	batch := make([]ledSetCommand, 0, len(dir))
	for _, c := range dir {
		batch = append(batch, command(c))
	}
	return batch, nil
}

func (allControllers) String() string { return "all" }
