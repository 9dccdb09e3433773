package sensors

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ipmifan/ipmifan/internal/configuration"
)

func getEchoPath() string {
	// unlikely to fail
	p, _ := exec.LookPath("echo")
	return p
}

func TestCmdSensor_GetValue(t *testing.T) {
	// GIVEN
	sensor, err := NewSensor(configuration.SensorConfig{
		ID: "hd0",
		Cmd: &configuration.CmdSensorConfig{
			Exec: getEchoPath(),
			Args: []string{"38.5"},
		},
	})
	assert.NoError(t, err)

	// WHEN
	value, err := sensor.GetValue()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 38.5, value)
}

func TestCmdSensor_GetValueUnparsableOutput(t *testing.T) {
	// GIVEN
	sensor, _ := NewSensor(configuration.SensorConfig{
		ID: "hd0",
		Cmd: &configuration.CmdSensorConfig{
			Exec: getEchoPath(),
			Args: []string{"not-a-number"},
		},
	})

	// WHEN
	_, err := sensor.GetValue()

	// THEN
	assert.ErrorIs(t, err, ErrSensorUnavailable)
}

func TestCmdSensor_GetLabel(t *testing.T) {
	// GIVEN
	sensor, _ := NewSensor(configuration.SensorConfig{
		ID: "hd0",
		Cmd: &configuration.CmdSensorConfig{
			Exec: "/usr/local/bin/hddtemp-wrapper",
		},
	})

	// WHEN
	label := sensor.GetLabel()

	// THEN
	assert.Equal(t, "Command (/usr/local/bin/hddtemp-wrapper)", label)
}
