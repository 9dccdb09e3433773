package configuration

import "time"

type ZoneConfig struct {
	Enabled bool `json:"enabled"`
	// Number of physical units (CPU packages or disks) feeding this zone.
	Count int `json:"count"`
	// Reducer applied across the unit temperatures of this zone.
	Aggregate AggregateFunction `json:"aggregate"`
	// Number of discrete steps between minLevel and maxLevel.
	Steps int `json:"steps"`
	// Minimum temperature change (°C) required to trigger a level recalculation.
	Sensitivity float64 `json:"sensitivity"`
	// Time between two temperature samples.
	PollingInterval time.Duration `json:"pollingInterval"`

	MinTemp float64 `json:"minTemp"`
	MaxTemp float64 `json:"maxTemp"`

	MinLevel int `json:"minLevel"`
	MaxLevel int `json:"maxLevel"`

	Sensors []SensorConfig `json:"sensors"`
}

type HdZoneConfig struct {
	ZoneConfig `mapstructure:",squash"`

	// Disk devices of the zone, preferably in /dev/disk/by-id form.
	Disks []DiskConfig `json:"disks"`

	StandbyGuard StandbyGuardConfig `json:"standbyGuard"`
}

type DiskConfig struct {
	Device string `json:"device"`
}

type StandbyGuardConfig struct {
	Enabled bool `json:"enabled"`
	// Number of disks in standby that triggers forcing the rest of the
	// array into standby.
	Limit int `json:"limit"`
	// Full path of the smartctl binary.
	SmartctlPath string `json:"smartctlPath"`
}
