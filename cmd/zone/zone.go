package zone

import (
	"github.com/spf13/cobra"

	"github.com/ipmifan/ipmifan/internal/configuration"
	"github.com/ipmifan/ipmifan/internal/ui"
)

var Command = &cobra.Command{
	Use:              "zone",
	Short:            "Fan zone related commands",
	Long:             ``,
	TraverseChildren: true,
}

type namedZone struct {
	Name   string
	Config configuration.ZoneConfig
}

// enabledZones loads and validates the configuration and returns all
// enabled zones in a fixed order.
func enabledZones() []namedZone {
	configPath := configuration.DetectConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	if err := configuration.Validate(); err != nil {
		ui.Fatal(err.Error())
	}

	return currentZones()
}

func currentZones() []namedZone {
	var zones []namedZone
	if configuration.CurrentConfig.CpuZone.Enabled {
		zones = append(zones, namedZone{Name: "cpu", Config: configuration.CurrentConfig.CpuZone})
	}
	if configuration.CurrentConfig.HdZone.Enabled {
		zones = append(zones, namedZone{Name: "hd", Config: configuration.CurrentConfig.HdZone.ZoneConfig})
	}
	return zones
}
