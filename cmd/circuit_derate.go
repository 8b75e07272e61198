package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/circuitworks/gocable/internal/circuit"
	"github.com/circuitworks/gocable/internal/derating"
)

var (
	derateAmbient    float64
	derateGrouped    int
	derateInsulation float64
	derateBuried     bool
	derateSoil       float64
)

var circuitDerateCmd = &cobra.Command{
	Use:   "derate",
	Short: "Compute derating factors for installation conditions",
	Long: `Compute the rating factors for grouping, ambient temperature,
thermal insulation and burial, and their combined product applied to a
cable's tabulated current-carrying capacity.

Examples:
  # Four grouped circuits in a 40°C ceiling void
  gocable circuit derate --group 4 --ambient 40

  # Half the run buried in thermal insulation
  gocable circuit derate --insulation 0.5

  # Buried direct in wet ground
  gocable circuit derate --buried --soil 0.8`,
	Run: runCircuitDerate,
}

func init() {
	circuitCmd.AddCommand(circuitDerateCmd)

	circuitDerateCmd.Flags().Float64Var(&derateAmbient, "ambient", 30, "Ambient temperature (°C)")
	circuitDerateCmd.Flags().IntVarP(&derateGrouped, "group", "g", 1, "Number of grouped circuits")
	circuitDerateCmd.Flags().Float64Var(&derateInsulation, "insulation", 0, "Fraction of run in thermal insulation (0–1)")
	circuitDerateCmd.Flags().BoolVar(&derateBuried, "buried", false, "Run is buried direct in ground")
	circuitDerateCmd.Flags().Float64Var(&derateSoil, "soil", 2.5, "Soil thermal resistivity (K·m/W), with --buried")
}

func runCircuitDerate(cmd *cobra.Command, args []string) {
	if !cmd.Flags().Changed("ambient") {
		derateAmbient = viper.GetFloat64("ambient")
	}

	spec := &circuit.Spec{
		AmbientTemp:        derateAmbient,
		Grouped:            derateGrouped,
		InsulationFraction: derateInsulation,
		Buried:             derateBuried,
		SoilResistivity:    derateSoil,
	}

	factors, err := derating.Derate(spec)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("          DERATING FACTORS FOR INSTALLATION CONDITIONS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Grouping (Cg, %d circuits):\t%.2f\n", derateGrouped, factors.Grouping)
	fmt.Fprintf(w, "  Ambient (Ca, %.0f °C):\t%.2f\n", derateAmbient, factors.Ambient)
	fmt.Fprintf(w, "  Thermal Insulation (Ci):\t%.2f\n", factors.Insulation)
	fmt.Fprintf(w, "  Burial (Cs):\t%.2f\n", factors.Burial)
	w.Flush()
	fmt.Println()
	fmt.Printf("  ╔═══════════════════════════════════╗\n")
	fmt.Printf("  ║  OVERALL FACTOR = %.3f           \n", factors.Overall)
	fmt.Printf("  ╚═══════════════════════════════════╝\n")
	fmt.Println()
	fmt.Printf("  A cable rated It carries It × %.3f under these conditions.\n", factors.Overall)
	fmt.Println()
}
