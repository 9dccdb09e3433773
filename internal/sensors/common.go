package sensors

import (
	"errors"
	"fmt"

	"github.com/ipmifan/ipmifan/internal/configuration"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	SensorMap = cmap.New[Sensor]()

	// ErrSensorUnavailable indicates that a single sensor could not be
	// read this cycle. The zone controller excludes the affected unit
	// from aggregation and continues.
	ErrSensorUnavailable = errors.New("sensor unavailable")
)

type Sensor interface {
	GetId() string

	GetLabel() string

	GetConfig() configuration.SensorConfig

	// GetValue returns the current temperature of this sensor in °C
	GetValue() (float64, error)

	// GetMovingAvg returns the moving average of this sensor's temperature
	GetMovingAvg() float64
	SetMovingAvg(avg float64)
}

func NewSensor(config configuration.SensorConfig) (Sensor, error) {
	if config.File != nil {
		return &FileSensor{
			Config: config,
		}, nil
	}

	if config.Cmd != nil {
		return &CmdSensor{
			Config: config,
		}, nil
	}

	return nil, fmt.Errorf("no matching sensor type for sensor: %s", config.ID)
}

func GetSensor(id string) (Sensor, bool) {
	return SensorMap.Get(id)
}

func RegisterSensor(sensor Sensor) {
	SensorMap.Set(sensor.GetId(), sensor)
}
