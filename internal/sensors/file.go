package sensors

import (
	"fmt"
	"sync"

	"github.com/ipmifan/ipmifan/internal/configuration"
	"github.com/ipmifan/ipmifan/internal/util"
)

// FileSensor reads a sysfs-like file containing the temperature in
// millidegrees celsius, the format used by hwmon temp*_input files.
type FileSensor struct {
	Config    configuration.SensorConfig `json:"configuration"`
	MovingAvg float64                    `json:"movingAvg"`
	mu        sync.Mutex
}

func (sensor *FileSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *FileSensor) GetLabel() string {
	return fmt.Sprintf("File (%s)", sensor.Config.File.Path)
}

func (sensor *FileSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor *FileSensor) GetValue() (float64, error) {
	millidegrees, err := util.ReadIntFromFile(sensor.Config.File.Path)
	if err != nil {
		return 0, fmt.Errorf("sensor %s: %w: %s", sensor.GetId(), ErrSensorUnavailable, err)
	}
	return float64(millidegrees) / 1000.0, nil
}

func (sensor *FileSensor) GetMovingAvg() float64 {
	sensor.mu.Lock()
	defer sensor.mu.Unlock()
	return sensor.MovingAvg
}

func (sensor *FileSensor) SetMovingAvg(avg float64) {
	sensor.mu.Lock()
	defer sensor.mu.Unlock()
	sensor.MovingAvg = avg
}
