package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ipmifan/ipmifan/internal/ui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ipmifan",
	Long:  `All software has versions. This is ipmifan's`,
	Run: func(cmd *cobra.Command, args []string) {
		ui.Printfln("0.1.0")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
