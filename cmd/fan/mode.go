package fan

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ipmifan/ipmifan/internal/ipmi"
	"github.com/ipmifan/ipmifan/internal/ui"
)

var modeCmd = &cobra.Command{
	Use:   "mode [mode]",
	Short: "Show or set the BMC fan control mode",
	Long: `Without an argument the current fan control mode is printed.
With an argument (standard, full, optimal, heavyio) the mode is changed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fanControl := loadIpmi()
		ctx := context.Background()

		if len(args) == 0 {
			mode, err := fanControl.GetFanMode(ctx)
			if err != nil {
				return err
			}
			ui.Printfln("%s", mode)
			return nil
		}

		mode, err := parseFanMode(args[0])
		if err != nil {
			return err
		}
		if err := fanControl.SetFanMode(ctx, mode); err != nil {
			return err
		}
		ui.Success("Fan mode set to %s", mode)
		return nil
	},
}

func parseFanMode(value string) (ipmi.FanMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "standard":
		return ipmi.FanModeStandard, nil
	case "full":
		return ipmi.FanModeFull, nil
	case "optimal":
		return ipmi.FanModeOptimal, nil
	case "heavyio":
		return ipmi.FanModeHeavyIO, nil
	}

	number, err := strconv.Atoi(value)
	if err == nil {
		switch mode := ipmi.FanMode(number); mode {
		case ipmi.FanModeStandard, ipmi.FanModeFull, ipmi.FanModeOptimal, ipmi.FanModeHeavyIO:
			return mode, nil
		}
	}

	return 0, fmt.Errorf("unknown fan mode: %s", value)
}

func init() {
	Command.AddCommand(modeCmd)
}
