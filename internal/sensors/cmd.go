package sensors

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/ipmifan/ipmifan/internal/configuration"
	"github.com/ipmifan/ipmifan/internal/util"
)

const cmdSensorTimeout = 2 * time.Second

// CmdSensor reads the temperature from an external helper command that
// prints the value in °C to stdout. Used for sensors that do not expose a
// sysfs file.
type CmdSensor struct {
	Config    configuration.SensorConfig `json:"configuration"`
	MovingAvg float64                    `json:"movingAvg"`
	mu        sync.Mutex
}

func (sensor *CmdSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *CmdSensor) GetLabel() string {
	return fmt.Sprintf("Command (%s)", sensor.Config.Cmd.Exec)
}

func (sensor *CmdSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor *CmdSensor) GetValue() (float64, error) {
	cmdConfig := sensor.Config.Cmd

	result, err := util.SafeCmdExecution(context.Background(), cmdConfig.Exec, cmdConfig.Args, cmdSensorTimeout)
	if err != nil {
		return 0, fmt.Errorf("sensor %s: %w: %s", sensor.GetId(), ErrSensorUnavailable, err)
	}

	temp, err := strconv.ParseFloat(result, 64)
	if err != nil {
		return 0, fmt.Errorf("sensor %s: %w: unparsable output %q", sensor.GetId(), ErrSensorUnavailable, result)
	}

	return temp, nil
}

func (sensor *CmdSensor) GetMovingAvg() float64 {
	sensor.mu.Lock()
	defer sensor.mu.Unlock()
	return sensor.MovingAvg
}

func (sensor *CmdSensor) SetMovingAvg(avg float64) {
	sensor.mu.Lock()
	defer sensor.mu.Unlock()
	sensor.MovingAvg = avg
}
