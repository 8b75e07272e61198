package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/circuitworks/gocable/internal/bs7671"
	"github.com/circuitworks/gocable/internal/version"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "gocable",
	Short: "Cable Sizing and Protection Coordination Tool",
	Long: `gocable - Go Cable Sizing Tool

A CLI tool for sizing low-voltage cables and coordinating their
protective devices to the IET Wiring Regulations (BS 7671).

This tool helps electrical designers perform:
  - Current-carrying capacity derating for installation conditions
  - Smallest-compliant conductor size selection
  - Voltage drop verification per circuit class
  - Protective device, curve and breaking capacity selection
  - Compliance verdicts with remediation advice

All calculations follow ` + bs7671.Edition + ` tables.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gocable v%-47s║\n", version.Version)
		fmt.Println("  ║   Go Cable Sizing & Protection Coordination               ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for sizing low-voltage cables and selecting their")
		fmt.Printf("  protective devices per %s.\n", bs7671.Edition)
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Derating for grouping, ambient, insulation and burial")
		fmt.Println("    • Smallest compliant conductor from the standard ladder")
		fmt.Println("    • Voltage drop check against the circuit-class limit")
		fmt.Println("    • Device rating, curve, breaking capacity and RCD selection")
		fmt.Println()
		fmt.Println("  Use 'gocable --help' to see available commands.")
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.gocable.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace the ladder search and device selection")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// initConfig loads site defaults from the config file and environment.
// Values only apply where the corresponding flag was not set explicitly.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".gocable")
	}

	viper.SetEnvPrefix("GOCABLE")
	viper.AutomaticEnv()

	viper.SetDefault("ambient", 30.0)
	viper.SetDefault("method", "A")
	viper.SetDefault("pf", 0.95)
	viper.SetDefault("earthing", "TN-C-S")

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "path", viper.ConfigFileUsed())
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))
}
