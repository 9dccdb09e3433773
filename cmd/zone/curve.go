package zone

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"

	"github.com/ipmifan/ipmifan/cmd/global"
	"github.com/ipmifan/ipmifan/internal/control"
	"github.com/ipmifan/ipmifan/internal/ui"
)

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Print the temperature to fan level mapping of each zone",
	RunE: func(cmd *cobra.Command, args []string) error {
		for idx, zone := range enabledZones() {
			if idx > 0 {
				ui.Printfln("")
				ui.Printfln("")
			}

			curve := control.NewStepCurve(zone.Config)

			ui.Printfln("> %s zone", zone.Name)

			var rows [][]string
			for _, point := range curve.Table() {
				rows = append(rows, []string{
					strconv.Itoa(point.Gain),
					fmt.Sprintf("%.1f", point.Temperature),
					strconv.Itoa(point.Level),
				})
			}

			tab := table.Table{
				Headers: []string{"Gain", "Temp °C", "Level"},
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

			values := make([]float64, 0)
			for temp := zone.Config.MinTemp - 2; temp <= zone.Config.MaxTemp+2; temp += 0.25 {
				values = append(values, float64(curve.Evaluate(temp)))
			}

			caption := "Level / °C"
			graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
			ui.Printfln(graph)
		}

		return nil
	},
}

func init() {
	Command.AddCommand(curveCmd)
}
