package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/circuitworks/gocable/internal/bs7671"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Print the standard ladders and limits",
	Long: `Print the public reference values the engine works from: nominal
voltages, the conductor size ladder, the device rating ladder, breaking
capacity tiers and per-class voltage drop limits.

Downstream calculators depend on these exact values.`,
	Run: runTables,
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}

func runTables(cmd *cobra.Command, args []string) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     REFERENCE VALUES - %s\n", bs7671.Edition)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Nominal Voltage (1φ):\t%.0f V\n", bs7671.VoltageSinglePhase)
	fmt.Fprintf(w, "  Nominal Voltage (3φ):\t%.0f V\n", bs7671.VoltageThreePhase)
	fmt.Fprintf(w, "  Conductor Operating Temp:\t%.0f °C\n", bs7671.ConductorOperatingTemp)
	fmt.Fprintf(w, "  Disconnection Time:\t%.1f s\n", bs7671.DisconnectionTime)
	w.Flush()
	fmt.Println()

	fmt.Println("CONDUCTOR SIZES (mm²):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	fmt.Print("  ")
	for i, size := range bs7671.StandardSizes() {
		if i > 0 {
			fmt.Print(", ")
		}
		fmt.Printf("%g", size)
	}
	fmt.Println()
	fmt.Println()

	fmt.Println("DEVICE RATINGS (A):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	fmt.Print("  ")
	for i, rating := range bs7671.StandardDeviceRatings() {
		if i > 0 {
			fmt.Print(", ")
		}
		fmt.Printf("%g", rating)
	}
	fmt.Println()
	fmt.Println()

	fmt.Println("BREAKING CAPACITY TIERS (kA):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	fmt.Print("  ")
	for i, tier := range bs7671.BreakingCapacityTiers() {
		if i > 0 {
			fmt.Print(", ")
		}
		fmt.Printf("%g", tier)
	}
	fmt.Println()
	fmt.Println()

	fmt.Println("VOLTAGE DROP LIMITS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, class := range []bs7671.CircuitClass{bs7671.ClassLighting, bs7671.ClassPower, bs7671.ClassMotor} {
		limit, err := bs7671.MaxVoltageDropPercent(class)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "  %s:\t%.1f %%\n", class, limit)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("CAPACITY TABLE (A, copper, 70°C thermoplastic):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	methods := []bs7671.InstallMethod{bs7671.MethodA, bs7671.MethodB, bs7671.MethodC, bs7671.MethodD, bs7671.MethodE}
	fmt.Fprint(w, "  mm²")
	for _, m := range methods {
		fmt.Fprintf(w, "\t%s", m)
	}
	fmt.Fprintln(w)
	for _, size := range bs7671.StandardSizes() {
		fmt.Fprintf(w, "  %g", size)
		for _, m := range methods {
			capacity, err := bs7671.CapacityFor(size, m)
			if err != nil {
				fmt.Fprint(w, "\t—")
				continue
			}
			fmt.Fprintf(w, "\t%g", capacity)
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	fmt.Println()
}
