package cmd

import (
	"github.com/spf13/cobra"
)

var circuitCmd = &cobra.Command{
	Use:   "circuit",
	Short: "Size and protect a final circuit",
	Long: `Commands for sizing a final circuit and coordinating its protection.

Available subcommands:
  size      - full chain: derate, size the cable, pick the device, verdict
  derate    - derating factors for the installation conditions only
  voltdrop  - voltage drop for an explicit conductor size
  device    - protective device selection for an explicit conductor size`,
}

func init() {
	rootCmd.AddCommand(circuitCmd)
}
