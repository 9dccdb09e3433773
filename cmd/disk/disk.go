package disk

import (
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "disk",
	Short:            "Disk related commands",
	Long:             ``,
	TraverseChildren: true,
}
