package zone

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"

	"github.com/ipmifan/ipmifan/cmd/global"
	"github.com/ipmifan/ipmifan/internal/configuration"
	"github.com/ipmifan/ipmifan/internal/control"
	"github.com/ipmifan/ipmifan/internal/sensors"
	"github.com/ipmifan/ipmifan/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Read all zone sensors once and show the resulting fan levels",
	RunE: func(cmd *cobra.Command, args []string) error {
		enabledZones()
		if err := configuration.CurrentConfig.ResolveSensorPaths(); err != nil {
			ui.Fatal("Could not resolve sensor paths: %v", err)
		}

		for idx, zone := range currentZones() {
			if idx > 0 {
				ui.Printfln("")
			}

			ui.Printfln("> %s zone", zone.Name)

			var readings []float64
			var rows [][]string
			for _, sensorConfig := range zone.Config.Sensors {
				sensor, err := sensors.NewSensor(sensorConfig)
				if err != nil {
					ui.Fatal("Unable to process sensor configuration: %s", sensorConfig.ID)
				}

				valueText := "N/A"
				value, err := sensor.GetValue()
				if err == nil {
					readings = append(readings, value)
					valueText = fmt.Sprintf("%.1f", value)
				}

				rows = append(rows, []string{sensor.GetId(), sensor.GetLabel(), valueText})
			}

			tab := table.Table{
				Headers: []string{"ID", "Sensor", "Temp °C"},
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

			temperature, err := control.Aggregate(readings, zone.Config.Aggregate)
			if err != nil {
				ui.Warning("No readable sensors in %s zone", zone.Name)
				continue
			}

			level := control.NewStepCurve(zone.Config).Evaluate(temperature)
			ui.Printfln("%s(%s) = %.2f°C -> level %s",
				zone.Config.Aggregate,
				strconv.Itoa(len(readings))+" sensor(s)",
				temperature,
				strconv.Itoa(level))
		}

		return nil
	},
}

func init() {
	Command.AddCommand(statusCmd)
}
