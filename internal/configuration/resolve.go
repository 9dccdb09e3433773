package configuration

import (
	"fmt"
	"path/filepath"

	"github.com/ipmifan/ipmifan/internal/util"
)

const (
	coretempPathPattern = "/sys/devices/platform/coretemp.%d/hwmon/hwmon*/temp1_input"
	diskHwmonPattern    = "/sys/class/block/%s/device/hwmon/hwmon*/temp1_input"
)

// ResolveSensorPaths expands glob patterns in file sensor paths and generates
// default hwmon paths for zones that do not configure sensors explicitly.
// Any unresolvable path is a configuration error, the daemon must not start
// with sensors that cannot be read.
func (c *Configuration) ResolveSensorPaths() error {
	if c.CpuZone.Enabled {
		if len(c.CpuZone.Sensors) == 0 {
			c.CpuZone.Sensors = defaultCpuSensors(c.CpuZone.Count)
		}
		if err := resolveZoneSensors(&c.CpuZone); err != nil {
			return err
		}
	}

	if c.HdZone.Enabled {
		if len(c.HdZone.Sensors) == 0 {
			generated, err := defaultHdSensors(c.HdZone.Disks)
			if err != nil {
				return err
			}
			c.HdZone.Sensors = generated
		}
		if err := resolveZoneSensors(&c.HdZone.ZoneConfig); err != nil {
			return err
		}
	}

	return nil
}

func resolveZoneSensors(zone *ZoneConfig) error {
	for i := range zone.Sensors {
		sensor := &zone.Sensors[i]
		if sensor.File == nil {
			continue
		}

		resolved, err := util.ExpandGlob(sensor.File.Path)
		if err != nil {
			return fmt.Errorf("sensor %s: cannot resolve path %s: %w", sensor.ID, sensor.File.Path, err)
		}
		sensor.File.Path = resolved
	}
	return nil
}

// defaultCpuSensors generates one coretemp hwmon path per CPU package.
func defaultCpuSensors(count int) []SensorConfig {
	sensors := make([]SensorConfig, 0, count)
	for i := 0; i < count; i++ {
		sensors = append(sensors, SensorConfig{
			ID: fmt.Sprintf("cpu%d", i),
			File: &FileSensorConfig{
				Path: fmt.Sprintf(coretempPathPattern, i),
			},
		})
	}
	return sensors
}

// defaultHdSensors derives one drivetemp hwmon path per configured disk
// device by resolving its /dev/disk/by-id symlink to the kernel block name.
func defaultHdSensors(disks []DiskConfig) ([]SensorConfig, error) {
	sensors := make([]SensorConfig, 0, len(disks))
	for _, disk := range disks {
		resolved, err := filepath.EvalSymlinks(disk.Device)
		if err != nil {
			return nil, fmt.Errorf("disk %s: cannot resolve device: %w", disk.Device, err)
		}
		name := filepath.Base(resolved)

		sensors = append(sensors, SensorConfig{
			ID: name,
			File: &FileSensorConfig{
				Path: fmt.Sprintf(diskHwmonPattern, name),
			},
		})
	}
	return sensors, nil
}
