package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/circuitworks/gocable/internal/bs7671"
	"github.com/circuitworks/gocable/internal/circuit"
	"github.com/circuitworks/gocable/internal/voltdrop"
)

var (
	vdSize     float64
	vdCurrent  float64
	vdLength   float64
	vdPhases   int
	vdPF       float64
	vdMaterial string
	vdClass    string
	vdXRatio   float64
)

var circuitVoltdropCmd = &cobra.Command{
	Use:   "voltdrop",
	Short: "Voltage drop for an explicit conductor size",
	Long: `Compute the voltage drop, drop percentage and terminal voltage for a
given conductor size, and check it against the circuit-class limit.

The reactance is modelled as a fixed fraction of the effective
resistance; override the fraction with --xratio when tabulated per-size
reactance data is available.

Examples:
  # 6mm² copper, 32A over 50m, single-phase
  gocable circuit voltdrop --size 6 --current 32 --length 50

  # Three-phase motor feeder with explicit reactance fraction
  gocable circuit voltdrop --size 25 -i 60 -l 110 -p 3 --class motor --xratio 0.1`,
	Run: runCircuitVoltdrop,
}

func init() {
	circuitCmd.AddCommand(circuitVoltdropCmd)

	circuitVoltdropCmd.Flags().Float64VarP(&vdSize, "size", "s", 0, "Conductor size (mm²) [required]")
	circuitVoltdropCmd.Flags().Float64VarP(&vdCurrent, "current", "i", 0, "Design current Ib (A) [required]")
	circuitVoltdropCmd.Flags().Float64VarP(&vdLength, "length", "l", 0, "Route length (m) [required]")
	circuitVoltdropCmd.Flags().IntVarP(&vdPhases, "phases", "p", 1, "Phase count (1 or 3)")
	circuitVoltdropCmd.Flags().Float64Var(&vdPF, "pf", 0.95, "Power factor cos φ, lagging")
	circuitVoltdropCmd.Flags().StringVar(&vdMaterial, "material", "copper", "Conductor material (copper, aluminium)")
	circuitVoltdropCmd.Flags().StringVar(&vdClass, "class", "power", "Circuit class (lighting, power, motor)")
	circuitVoltdropCmd.Flags().Float64Var(&vdXRatio, "xratio", bs7671.DefaultReactanceRatio, "Reactance as a fraction of resistance")

	circuitVoltdropCmd.MarkFlagRequired("size")
	circuitVoltdropCmd.MarkFlagRequired("current")
	circuitVoltdropCmd.MarkFlagRequired("length")
}

func runCircuitVoltdrop(cmd *cobra.Command, args []string) {
	if !cmd.Flags().Changed("pf") {
		vdPF = viper.GetFloat64("pf")
	}

	spec := &circuit.Spec{
		DesignCurrent: vdCurrent,
		Length:        vdLength,
		Phases:        vdPhases,
		PowerFactor:   vdPF,
		Material:      bs7671.Material(vdMaterial),
		Class:         bs7671.CircuitClass(vdClass),
		Method:        bs7671.MethodA,
		AmbientTemp:   30,
		Grouped:       1,
		Earthing:      circuit.EarthingTNCS,
	}
	if err := spec.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	model := &voltdrop.Model{ReactanceRatio: vdXRatio}
	outcome, err := model.DropFor(vdSize, spec)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("                 VOLTAGE DROP CALCULATION")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Conductor:\t%g mm² %s\n", vdSize, spec.Material)
	fmt.Fprintf(w, "  Load:\t%.1f A over %.0f m, %d-phase, cos φ = %.2f\n", spec.DesignCurrent, spec.Length, spec.Phases, spec.PowerFactor)
	fmt.Fprintf(w, "  Nominal Voltage:\t%.0f V\n", outcome.Nominal)
	fmt.Fprintf(w, "  Reactance Fraction:\t%.2f\n", vdXRatio)
	w.Flush()
	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Voltage Drop:\t%.2f V\n", outcome.Drop)
	fmt.Fprintf(w, "  Drop Percentage:\t%.2f %%\n", outcome.Percent)
	fmt.Fprintf(w, "  Terminal Voltage:\t%.1f V\n", outcome.Terminal)
	fmt.Fprintf(w, "  Class Limit:\t%.1f %% (%s)\n", outcome.Limit, spec.Class)
	w.Flush()
	fmt.Println()

	if outcome.WithinLimit {
		fmt.Printf("  Within limits: %.2f %% ≤ %.1f %% ✓\n", outcome.Percent, outcome.Limit)
	} else {
		fmt.Printf("  Exceeds limit: %.2f %% > %.1f %% ✗\n", outcome.Percent, outcome.Limit)
	}
	fmt.Println()
}
