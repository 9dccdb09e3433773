package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"

	"github.com/ipmifan/ipmifan/cmd/global"
	"github.com/ipmifan/ipmifan/internal/hwmon"
	"github.com/ipmifan/ipmifan/internal/ui"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect temperature sensors",
	Long:  `Detects all hwmon temperature sensors and prints them as a list`,
	Run: func(cmd *cobra.Command, args []string) {
		chips := hwmon.GetChips()

		// === Print detected devices ===
		tableConfig := &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		}

		for _, chip := range chips {
			if len(chip.Name) <= 0 {
				continue
			}

			ui.Printfln("> %s", chip.Name)

			var sensorRows [][]string
			for _, sensor := range chip.Sensors {
				_, file := filepath.Split(sensor.Input)
				labelAndFile := fmt.Sprintf("%s (%s)", sensor.Label, file)

				sensorRows = append(sensorRows, []string{
					"", strconv.Itoa(sensor.Index), labelAndFile, fmt.Sprintf("%.1f", sensor.Value),
				})
			}

			sensorTable := table.Table{
				Headers: []string{"Sensors", "Index", "Label", "Value"},
				Rows:    sensorRows,
			}

			var buf bytes.Buffer
			if tableErr := sensorTable.WriteTable(&buf, tableConfig); tableErr != nil {
				ui.Fatal("Error printing table: %v", tableErr)
			}
			ui.Printfln(buf.String())
		}
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
