package rgbmon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDirectory() []Controller {
	return []Controller{
		{ID: 0, Name: "Motherboard", DeviceType: 0, Leds: make([]Led, 12)},
		{ID: 1, Name: "GPU", DeviceType: 2, Leds: make([]Led, 1)},
		{ID: 2, Name: "RAM", DeviceType: 1, Leds: make([]Led, 8)},
		{ID: 3, Name: "RAM", DeviceType: 1, Leds: make([]Led, 8)},
	}
}

func TestByID(t *testing.T) {
	batch, err := ByID(1).apply(testDirectory())
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, uint32(1), batch[0].controllerID)
	assert.Equal(t, uint16(1), batch[0].ledCount)
}

func TestByIDNotFound(t *testing.T) {
	_, err := ByID(42).apply(testDirectory())
	assert.ErrorIs(t, err, ErrControllerNotFound)
}

func TestByName(t *testing.T) {
	batch, err := ByName("RAM").apply(testDirectory())
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, uint32(2), batch[0].controllerID)
	assert.Equal(t, uint32(3), batch[1].controllerID)

	_, err = ByName("Keyboard").apply(testDirectory())
	assert.ErrorIs(t, err, ErrControllerNotFound)
}

func TestByDeviceType(t *testing.T) {
	batch, err := ByDeviceType(1).apply(testDirectory())
	require.NoError(t, err)
	assert.Len(t, batch, 2)

	_, err = ByDeviceType(9).apply(testDirectory())
	assert.ErrorIs(t, err, ErrControllerNotFound)
}

func TestByDeviceTypeSet(t *testing.T) {
	// A partially matching set is a success covering only the matching
	// types.
	batch, err := ByDeviceTypeSet(2, 7, 9).apply(testDirectory())
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, uint32(1), batch[0].controllerID)

	_, err = ByDeviceTypeSet(7, 9).apply(testDirectory())
	assert.ErrorIs(t, err, ErrControllerNotFound)

	_, err = ByDeviceTypeSet().apply(testDirectory())
	assert.ErrorIs(t, err, ErrControllerNotFound)
}

func TestAllControllers(t *testing.T) {
	batch, err := AllControllers().apply(testDirectory())
	require.NoError(t, err)
	assert.Len(t, batch, 4)
}

func TestAllControllersEmptyDirectory(t *testing.T) {
	// Vacuously satisfied: no controllers, nothing to do, no error.
	batch, err := AllControllers().apply(nil)
	require.NoError(t, err)
	assert.Empty(t, batch)
}
