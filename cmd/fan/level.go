package fan

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ipmifan/ipmifan/internal/ipmi"
	"github.com/ipmifan/ipmifan/internal/ui"
)

var levelCmd = &cobra.Command{
	Use:   "level <zone> <level>",
	Short: "Set the fan duty level of a zone manually",
	Long: `Sets the duty level (0..100) of the cpu or hd zone. The level only
sticks while the BMC is in FULL mode and the daemon is not running.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		zone, err := parseZone(args[0])
		if err != nil {
			return err
		}

		level, err := strconv.Atoi(args[1])
		if err != nil || level < 0 || level > 100 {
			return fmt.Errorf("level must be a number between 0 and 100: %s", args[1])
		}

		fanControl := loadIpmi()
		if err := fanControl.SetFanLevel(context.Background(), zone, level); err != nil {
			return err
		}
		ui.Success("%s zone set to level %d", zone, level)
		return nil
	},
}

func parseZone(value string) (ipmi.Zone, error) {
	switch value {
	case "cpu":
		return ipmi.ZoneCpu, nil
	case "hd":
		return ipmi.ZoneHd, nil
	}
	return 0, fmt.Errorf("unknown zone: %s (expected cpu or hd)", value)
}

func init() {
	Command.AddCommand(levelCmd)
}
