package sensors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ipmifan/ipmifan/internal/configuration"
)

func TestFileSensor_GetValue(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "temp1_input")
	assert.NoError(t, os.WriteFile(path, []byte("45000\n"), 0o644))

	sensor, err := NewSensor(configuration.SensorConfig{
		ID:   "cpu0",
		File: &configuration.FileSensorConfig{Path: path},
	})
	assert.NoError(t, err)

	// WHEN
	value, err := sensor.GetValue()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 45.0, value)
}

func TestFileSensor_GetValueMissingFile(t *testing.T) {
	// GIVEN
	sensor, err := NewSensor(configuration.SensorConfig{
		ID:   "cpu0",
		File: &configuration.FileSensorConfig{Path: "/this/path/does/not/exist"},
	})
	assert.NoError(t, err)

	// WHEN
	_, err = sensor.GetValue()

	// THEN
	assert.ErrorIs(t, err, ErrSensorUnavailable)
}

func TestFileSensor_MovingAvg(t *testing.T) {
	// GIVEN
	sensor, _ := NewSensor(configuration.SensorConfig{
		ID:   "cpu0",
		File: &configuration.FileSensorConfig{Path: "/tmp/temp1_input"},
	})

	// WHEN
	sensor.SetMovingAvg(42.5)

	// THEN
	assert.Equal(t, 42.5, sensor.GetMovingAvg())
}

func TestNewSensorWithoutType(t *testing.T) {
	// GIVEN
	config := configuration.SensorConfig{ID: "cpu0"}

	// WHEN
	_, err := NewSensor(config)

	// THEN
	assert.Error(t, err)
}
