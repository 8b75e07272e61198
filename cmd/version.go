package cmd

import (
	"fmt"

	"github.com/circuitworks/gocable/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gocable version %s\n", version.Version)
		fmt.Printf("  build time: %s\n", version.BuildTime)
		fmt.Printf("  git commit: %s\n", version.GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
