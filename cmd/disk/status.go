package disk

import (
	"bytes"
	"context"

	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"

	"github.com/ipmifan/ipmifan/cmd/global"
	"github.com/ipmifan/ipmifan/internal/configuration"
	"github.com/ipmifan/ipmifan/internal/disks"
	"github.com/ipmifan/ipmifan/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the power state of all configured disks",
	Long:  `Queries smartctl without waking up sleeping disks.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := configuration.DetectConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()
		if err := configuration.Validate(); err != nil {
			ui.Fatal(err.Error())
		}

		hdZone := configuration.CurrentConfig.HdZone
		if len(hdZone.Disks) == 0 {
			ui.Warning("No disks configured")
			return nil
		}

		smart := disks.NewSmartctl(hdZone.StandbyGuard.SmartctlPath)

		var rows [][]string
		for _, diskConfig := range hdZone.Disks {
			state, err := smart.ReadPowerState(context.Background(), diskConfig.Device)
			stateText := state.String()
			if err != nil {
				stateText = "N/A"
			}
			rows = append(rows, []string{diskConfig.Device, stateText})
		}

		tab := table.Table{
			Headers: []string{"Device", "Power State"},
			Rows:    rows,
		}
		var buf bytes.Buffer
		tableErr := tab.WriteTable(&buf, &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		})
		if tableErr != nil {
			panic(tableErr)
		}
		ui.Printfln(buf.String())
		return nil
	},
}

func init() {
	Command.AddCommand(statusCmd)
}
