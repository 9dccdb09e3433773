package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/asecurityteam/rolling"

	"github.com/ipmifan/ipmifan/internal/configuration"
	"github.com/ipmifan/ipmifan/internal/control"
	"github.com/ipmifan/ipmifan/internal/ipmi"
	"github.com/ipmifan/ipmifan/internal/journal"
	"github.com/ipmifan/ipmifan/internal/sensors"
	"github.com/ipmifan/ipmifan/internal/ui"
	"github.com/ipmifan/ipmifan/internal/util"
)

// statsWindowSize is the number of aggregated readings kept for the
// moving average exposed via API and metrics.
const statsWindowSize = 100

// ZoneSnapshot is a point-in-time view of a zone's control state.
type ZoneSnapshot struct {
	Zone             string  `json:"zone"`
	Temperature      float64 `json:"temperature"`
	TemperatureValid bool    `json:"temperatureValid"`
	MovingAvg        float64 `json:"movingAvg"`
	Level            int     `json:"level"`
	LevelValid       bool    `json:"levelValid"`
	CommandFailures  int     `json:"commandFailures"`
}

// ZoneController drives the fans of a single BMC zone based on its
// sensor temperatures.
type ZoneController interface {
	// Run executes the control loop until the context is cancelled.
	Run(ctx context.Context) error
	Name() string
	Snapshot() ZoneSnapshot
}

type zoneController struct {
	name    string
	zone    ipmi.Zone
	config  configuration.ZoneConfig
	sensors []sensors.Sensor
	curve   *control.StepCurve
	gate    *control.HysteresisGate
	ipmi    ipmi.Ipmi
	guard   *StandbyGuard
	journal journal.Journal

	statsMu     sync.Mutex
	statsWindow *rolling.PointPolicy

	mu              sync.Mutex
	lastTemp        float64
	tempValid       bool
	lastLevel       int
	levelApplied    bool
	commandFailures int
}

// NewZoneController creates a controller for one zone. guard may be nil
// for zones without a standby guard.
func NewZoneController(
	name string,
	zone ipmi.Zone,
	config configuration.ZoneConfig,
	zoneSensors []sensors.Sensor,
	fanControl ipmi.Ipmi,
	guard *StandbyGuard,
	eventJournal journal.Journal,
) ZoneController {
	return &zoneController{
		name:        name,
		zone:        zone,
		config:      config,
		sensors:     zoneSensors,
		curve:       control.NewStepCurve(config),
		gate:        control.NewHysteresisGate(config.Sensitivity),
		ipmi:        fanControl,
		guard:       guard,
		journal:     eventJournal,
		statsWindow: rolling.NewPointPolicy(rolling.NewWindow(statsWindowSize)),
	}
}

func (c *zoneController) Name() string {
	return c.name
}

func (c *zoneController) Run(ctx context.Context) error {
	ui.Info("Starting %s zone controller with %d sensor(s), polling every %s", c.name, len(c.sensors), c.config.PollingInterval)

	tick := time.NewTicker(c.config.PollingInterval)
	defer tick.Stop()

	// run the first cycle right away instead of waiting a full interval
	c.cycle(ctx)

	for {
		select {
		case <-ctx.Done():
			ui.Info("Stopping %s zone controller", c.name)
			return nil
		case <-tick.C:
			c.cycle(ctx)
		}
	}
}

func (c *zoneController) cycle(ctx context.Context) {
	if c.guard != nil {
		if err := c.guard.Run(ctx); err != nil {
			ui.Warning("Standby guard of %s zone: %v", c.name, err)
		}
	}

	readings := c.sample()

	temperature, err := control.Aggregate(readings, c.config.Aggregate)
	if err != nil {
		if errors.Is(err, control.ErrNoReadings) {
			ui.Error("All sensors of %s zone failed, keeping the current fan level", c.name)
			return
		}
		ui.Error("Could not aggregate %s zone temperatures: %v", c.name, err)
		return
	}

	c.mu.Lock()
	c.lastTemp = temperature
	c.tempValid = true
	c.mu.Unlock()

	c.statsMu.Lock()
	c.statsWindow.Append(temperature)
	c.statsMu.Unlock()

	if !c.gate.ShouldReact(temperature) {
		return
	}

	level := c.curve.Evaluate(temperature)

	c.mu.Lock()
	unchanged := c.levelApplied && level == c.lastLevel
	c.mu.Unlock()

	if unchanged {
		// the temperature moved but stayed within the same step, track
		// the drift without touching the fans
		c.gate.Commit(temperature)
		return
	}

	if err := c.ipmi.SetFanLevel(ctx, c.zone, level); err != nil {
		// keep the gate baseline untouched so the next cycle retries
		ui.Warning("Could not set %s zone fan level to %d: %v", c.name, level, err)
		c.journal.RecordCommandFailure(c.name, err)
		c.mu.Lock()
		c.commandFailures++
		c.mu.Unlock()
		return
	}

	ui.Info("%s zone: %.2f°C -> level %d", c.name, temperature, level)
	c.journal.RecordLevelChange(c.name, temperature, level)
	c.gate.Commit(temperature)

	c.mu.Lock()
	c.lastLevel = level
	c.levelApplied = true
	c.mu.Unlock()
}

// sample reads all zone sensors, skipping failed ones. Each successful
// reading also updates the sensor's moving average.
func (c *zoneController) sample() []float64 {
	readings := make([]float64, 0, len(c.sensors))
	for _, sensor := range c.sensors {
		value, err := sensor.GetValue()
		if err != nil {
			ui.Warning("Sensor %s of %s zone unavailable: %v", sensor.GetId(), c.name, err)
			continue
		}
		updateSensorMovingAvg(sensor, c.config.PollingInterval, value)
		readings = append(readings, value)
	}
	return readings
}

func (c *zoneController) Snapshot() ZoneSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	movingAvg := 0.0
	if c.tempValid {
		c.statsMu.Lock()
		movingAvg = c.statsWindow.Reduce(rolling.Avg)
		c.statsMu.Unlock()
	}

	return ZoneSnapshot{
		Zone:             c.name,
		Temperature:      c.lastTemp,
		TemperatureValid: c.tempValid,
		MovingAvg:        movingAvg,
		Level:            c.lastLevel,
		LevelValid:       c.levelApplied,
		CommandFailures:  c.commandFailures,
	}
}

func (c *zoneController) String() string {
	return fmt.Sprintf("ZoneController(%s)", c.name)
}

// movingAvgWindow is the time span covered by the per-sensor moving average.
const movingAvgWindow = 2 * time.Minute

func updateSensorMovingAvg(sensor sensors.Sensor, pollingInterval time.Duration, value float64) {
	samples := int(movingAvgWindow / pollingInterval)
	if samples < 1 {
		samples = 1
	}
	sensor.SetMovingAvg(util.UpdateSimpleMovingAvg(sensor.GetMovingAvg(), samples, value))
}
