package fan

import (
	"github.com/spf13/cobra"

	"github.com/ipmifan/ipmifan/internal/configuration"
	"github.com/ipmifan/ipmifan/internal/ipmi"
	"github.com/ipmifan/ipmifan/internal/ui"
)

var Command = &cobra.Command{
	Use:              "fan",
	Short:            "Manual fan control commands",
	Long:             ``,
	TraverseChildren: true,
}

func loadIpmi() ipmi.Ipmi {
	configPath := configuration.DetectConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	if err := configuration.Validate(); err != nil {
		ui.Fatal(err.Error())
	}

	return ipmi.NewIpmi(configuration.CurrentConfig.Ipmi)
}
