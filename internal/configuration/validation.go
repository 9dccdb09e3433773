package configuration

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	if !config.CpuZone.Enabled && !config.HdZone.Enabled {
		return errors.New("neither cpuZone nor hdZone is enabled, nothing to do")
	}

	if err := validateIpmi(&config.Ipmi); err != nil {
		return err
	}

	if config.CpuZone.Enabled {
		if err := validateZone("cpuZone", &config.CpuZone); err != nil {
			return err
		}
	}

	if config.HdZone.Enabled {
		if err := validateZone("hdZone", &config.HdZone.ZoneConfig); err != nil {
			return err
		}
		if err := validateHdZone(&config.HdZone); err != nil {
			return err
		}
	}

	return nil
}

func validateIpmi(config *IpmiConfig) error {
	if len(config.Command) <= 0 {
		return errors.New("ipmi: no ipmitool command path provided")
	}
	if config.FanModeDelay < 0 {
		return fmt.Errorf("ipmi: negative fanModeDelay (%s)", config.FanModeDelay)
	}
	if config.FanLevelDelay < 0 {
		return fmt.Errorf("ipmi: negative fanLevelDelay (%s)", config.FanLevelDelay)
	}
	return nil
}

func validateZone(name string, zone *ZoneConfig) error {
	if zone.Count < 1 {
		return fmt.Errorf("%s: count must be >= 1", name)
	}
	if zone.Steps < 2 {
		return fmt.Errorf("%s: steps must be >= 2", name)
	}
	if zone.Sensitivity <= 0 {
		return fmt.Errorf("%s: sensitivity must be > 0", name)
	}
	if zone.PollingInterval <= 0 {
		return fmt.Errorf("%s: pollingInterval must be > 0", name)
	}
	if zone.MinTemp >= zone.MaxTemp {
		return fmt.Errorf("%s: minTemp (%.1f) must be below maxTemp (%.1f)", name, zone.MinTemp, zone.MaxTemp)
	}
	if zone.MinLevel < 0 || zone.MinLevel > zone.MaxLevel || zone.MaxLevel > 100 {
		return fmt.Errorf("%s: levels must satisfy 0 <= minLevel <= maxLevel <= 100", name)
	}

	supported := []AggregateFunction{AggregateMinimum, AggregateAverage, AggregateMaximum}
	if !slices.Contains(supported, zone.Aggregate) {
		return fmt.Errorf("%s: unsupported aggregate function '%s', use one of: minimum | average | maximum", name, zone.Aggregate)
	}

	// Sensors may be omitted entirely, in which case default hwmon paths
	// are generated during path resolution.
	if len(zone.Sensors) > 0 && len(zone.Sensors) != zone.Count {
		return fmt.Errorf("%s: inconsistent count (%d) and number of sensors (%d)", name, zone.Count, len(zone.Sensors))
	}

	for _, sensor := range zone.Sensors {
		if err := validateSensor(name, sensor); err != nil {
			return err
		}
	}

	return nil
}

func validateSensor(zoneName string, sensor SensorConfig) error {
	if len(sensor.ID) <= 0 {
		return fmt.Errorf("%s: sensor without id", zoneName)
	}

	subConfigs := 0
	if sensor.File != nil {
		subConfigs++
	}
	if sensor.Cmd != nil {
		subConfigs++
	}
	if subConfigs > 1 {
		return fmt.Errorf("sensor %s: only one sensor type can be used per sensor definition block", sensor.ID)
	}
	if subConfigs <= 0 {
		return fmt.Errorf("sensor %s: sub-configuration for sensor is missing, use one of: file | cmd", sensor.ID)
	}

	if sensor.File != nil && len(sensor.File.Path) <= 0 {
		return fmt.Errorf("sensor %s: no file path provided", sensor.ID)
	}
	if sensor.Cmd != nil && len(sensor.Cmd.Exec) <= 0 {
		return fmt.Errorf("sensor %s: no executable provided", sensor.ID)
	}

	return nil
}

func validateHdZone(zone *HdZoneConfig) error {
	if len(zone.Disks) <= 0 {
		return errors.New("hdZone: no disks configured")
	}
	if len(zone.Disks) != zone.Count {
		return fmt.Errorf("hdZone: inconsistent count (%d) and number of disks (%d)", zone.Count, len(zone.Disks))
	}
	for _, disk := range zone.Disks {
		if len(disk.Device) <= 0 {
			return errors.New("hdZone: disk without device path")
		}
	}

	guard := zone.StandbyGuard
	if guard.Enabled {
		if guard.Limit < 0 {
			return fmt.Errorf("hdZone: standbyGuard limit must not be negative (%d)", guard.Limit)
		}
		if guard.Limit > len(zone.Disks) {
			return fmt.Errorf("hdZone: standbyGuard limit (%d) exceeds disk count (%d)", guard.Limit, len(zone.Disks))
		}
		if len(guard.SmartctlPath) <= 0 {
			return errors.New("hdZone: standbyGuard requires a smartctl path")
		}
	}

	return nil
}
