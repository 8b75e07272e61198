package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/circuitworks/gocable/internal/bs7671"
	"github.com/circuitworks/gocable/internal/chart"
	"github.com/circuitworks/gocable/internal/circuit"
	"github.com/circuitworks/gocable/internal/compliance"
	"github.com/circuitworks/gocable/internal/voltdrop"
)

var (
	// Load inputs
	sizeCurrent float64
	sizeLength  float64
	sizePhases  int
	sizePF      float64

	// Cable and circuit
	sizeMaterial string
	sizeClass    string
	sizeMethod   string

	// Installation conditions
	sizeAmbient    float64
	sizeGrouped    int
	sizeInsulation float64
	sizeBuried     bool
	sizeSoil       float64

	// Supply and protection context
	sizeEarthing string
	sizeInrush   bool
	sizeFault    float64
	sizeZs       float64

	// Diagram options
	sizeShowDiagram bool
	sizeExportFile  string
)

var circuitSizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Find the smallest compliant cable and its protective device",
	Long: `Run the full sizing chain for a proposed circuit: derate the
tabulated capacity for the installation conditions, search the standard
conductor ladder for the smallest size meeting both capacity and
voltage-drop limits, then select a coordinated protective device.

The checks follow ` + bs7671.Edition + `:
  - Regulation 433.1.1: coordination of conductor and device
  - Regulation 525.1 / Appendix 4: voltage drop limits
  - Tables 4B1/4C1 basis: rating factors for real conditions

Examples:
  # 32A single-phase power circuit, 50m run, conduit in insulated wall
  gocable circuit size --current 32 --length 50 --class power --method A

  # Grouped three-phase motor circuit in 40°C plant room
  gocable circuit size -i 24 -l 85 -p 3 --class motor --ambient 40 --group 4

  # Buried distribution run with measured earth loop impedance
  gocable circuit size -i 63 -l 120 --method D --buried --soil 1.2 --zs 0.8`,
	Run: runCircuitSize,
}

func init() {
	circuitCmd.AddCommand(circuitSizeCmd)

	// Load flags
	circuitSizeCmd.Flags().Float64VarP(&sizeCurrent, "current", "i", 0, "Design current Ib (A) [required]")
	circuitSizeCmd.Flags().Float64VarP(&sizeLength, "length", "l", 0, "Route length (m) [required]")
	circuitSizeCmd.Flags().IntVarP(&sizePhases, "phases", "p", 1, "Phase count (1 or 3)")
	circuitSizeCmd.Flags().Float64Var(&sizePF, "pf", 0.95, "Power factor cos φ, lagging")

	// Cable flags
	circuitSizeCmd.Flags().StringVar(&sizeMaterial, "material", "copper", "Conductor material (copper, aluminium)")
	circuitSizeCmd.Flags().StringVar(&sizeClass, "class", "power", "Circuit class (lighting, power, motor)")
	circuitSizeCmd.Flags().StringVarP(&sizeMethod, "method", "m", "A", "Installation method (A, B, C, D, E)")

	// Installation condition flags
	circuitSizeCmd.Flags().Float64Var(&sizeAmbient, "ambient", 30, "Ambient temperature (°C)")
	circuitSizeCmd.Flags().IntVarP(&sizeGrouped, "group", "g", 1, "Number of grouped circuits")
	circuitSizeCmd.Flags().Float64Var(&sizeInsulation, "insulation", 0, "Fraction of run in thermal insulation (0–1)")
	circuitSizeCmd.Flags().BoolVar(&sizeBuried, "buried", false, "Run is buried direct in ground")
	circuitSizeCmd.Flags().Float64Var(&sizeSoil, "soil", 2.5, "Soil thermal resistivity (K·m/W), with --buried")

	// Supply flags
	circuitSizeCmd.Flags().StringVar(&sizeEarthing, "earthing", "TN-C-S", "Earthing arrangement (TN-S, TN-C-S, TT)")
	circuitSizeCmd.Flags().BoolVar(&sizeInrush, "inrush", false, "Declared high-inrush load")
	circuitSizeCmd.Flags().Float64Var(&sizeFault, "fault", 6, "Prospective fault level at origin (kA)")
	circuitSizeCmd.Flags().Float64Var(&sizeZs, "zs", 0, "Measured earth loop impedance (Ω), 0 = not measured")

	circuitSizeCmd.MarkFlagRequired("current")
	circuitSizeCmd.MarkFlagRequired("length")

	// Diagram options
	circuitSizeCmd.Flags().BoolVar(&sizeShowDiagram, "diagram", false, "Show ASCII voltage-drop profile")
	circuitSizeCmd.Flags().StringVarP(&sizeExportFile, "output", "o", "", "Export drop profile to file (png, svg, pdf)")
}

// applySizeDefaults fills flags the user did not set from the config
// file / environment defaults.
func applySizeDefaults(cmd *cobra.Command) {
	if !cmd.Flags().Changed("ambient") {
		sizeAmbient = viper.GetFloat64("ambient")
	}
	if !cmd.Flags().Changed("method") {
		sizeMethod = viper.GetString("method")
	}
	if !cmd.Flags().Changed("pf") {
		sizePF = viper.GetFloat64("pf")
	}
	if !cmd.Flags().Changed("earthing") {
		sizeEarthing = viper.GetString("earthing")
	}
}

func runCircuitSize(cmd *cobra.Command, args []string) {
	applySizeDefaults(cmd)

	spec := &circuit.Spec{
		DesignCurrent:      sizeCurrent,
		Length:             sizeLength,
		Phases:             sizePhases,
		PowerFactor:        sizePF,
		Material:           bs7671.Material(sizeMaterial),
		Class:              bs7671.CircuitClass(sizeClass),
		Method:             bs7671.InstallMethod(sizeMethod),
		AmbientTemp:        sizeAmbient,
		Grouped:            sizeGrouped,
		InsulationFraction: sizeInsulation,
		Buried:             sizeBuried,
		SoilResistivity:    sizeSoil,
		Earthing:           circuit.Earthing(sizeEarthing),
		HighInrush:         sizeInrush,
		FaultLevel:         sizeFault,
		EarthLoopImpedance: sizeZs,
	}

	result, err := compliance.Assess(spec)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	printSizeReport(result)

	if sizeShowDiagram || sizeExportFile != "" {
		selected := 0.0
		if !result.Cable.Degraded {
			selected = result.Cable.Size
		}
		profile := buildDropProfile(spec, selected, result.Cable.Drop.Limit)
		if sizeShowDiagram {
			fmt.Println(chart.DrawASCIIProfile(profile))
		}
		if sizeExportFile != "" {
			if err := chart.ExportProfile(profile, sizeExportFile); err != nil {
				fmt.Printf("Error exporting profile: %v\n", err)
			} else {
				fmt.Printf("Drop profile exported to: %s\n", sizeExportFile)
			}
		}
	}
}

func printSizeReport(result *compliance.Result) {
	spec := result.Spec

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     CABLE SIZING & PROTECTION - %s\n", bs7671.Edition)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Design Current (Ib):\t%.1f A\n", spec.DesignCurrent)
	fmt.Fprintf(w, "  Route Length:\t%.0f m\n", spec.Length)
	fmt.Fprintf(w, "  Phases:\t%d (%.0f V nominal)\n", spec.Phases, spec.NominalVoltage())
	fmt.Fprintf(w, "  Power Factor:\t%.2f\n", spec.PowerFactor)
	fmt.Fprintf(w, "  Conductor:\t%s\n", spec.Material)
	fmt.Fprintf(w, "  Circuit Class:\t%s\n", spec.Class)
	fmt.Fprintf(w, "  Installation Method:\t%s\n", spec.Method)
	fmt.Fprintf(w, "  Ambient:\t%.0f °C\n", spec.AmbientTemp)
	fmt.Fprintf(w, "  Grouped Circuits:\t%d\n", spec.Grouped)
	if spec.InsulationFraction > 0 {
		fmt.Fprintf(w, "  In Thermal Insulation:\t%.0f%% of run\n", spec.InsulationFraction*100)
	}
	if spec.Buried {
		fmt.Fprintf(w, "  Buried, Soil Resistivity:\t%.1f K·m/W\n", spec.SoilResistivity)
	}
	fmt.Fprintf(w, "  Earthing:\t%s\n", spec.Earthing)
	fmt.Fprintf(w, "  Fault Level:\t%.1f kA\n", spec.FaultLevel)
	if spec.EarthLoopImpedance > 0 {
		fmt.Fprintf(w, "  Measured Zs:\t%.3f Ω\n", spec.EarthLoopImpedance)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("DERATING FACTORS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Grouping (Cg):\t%.2f\n", result.Factors.Grouping)
	fmt.Fprintf(w, "  Ambient (Ca):\t%.2f\n", result.Factors.Ambient)
	fmt.Fprintf(w, "  Thermal Insulation (Ci):\t%.2f\n", result.Factors.Insulation)
	fmt.Fprintf(w, "  Burial (Cs):\t%.2f\n", result.Factors.Burial)
	fmt.Fprintf(w, "  Overall:\t%.3f\n", result.Factors.Overall)
	w.Flush()
	fmt.Println()

	fmt.Println("CABLE SELECTION:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Required Ampacity:\t%.1f A\n", result.Cable.RequiredAmpacity)
	fmt.Fprintf(w, "  Tabulated Capacity:\t%.1f A\n", result.Cable.Capacity)
	fmt.Fprintf(w, "  Derated Capacity (Iz):\t%.1f A\n", result.Cable.DeratedCapacity)
	w.Flush()
	fmt.Println()
	if result.Cable.Degraded {
		fmt.Println("  ╔═════════════════════════════════════════╗")
		fmt.Println("  ║  NO COMPLIANT SIZE - LARGEST RETURNED   ║")
		fmt.Println("  ╚═════════════════════════════════════════╝")
		fmt.Printf("  Largest standard size: %g mm²\n", result.Cable.Size)
	} else {
		fmt.Printf("  ╔═════════════════════════════════════════╗\n")
		fmt.Printf("  ║  SELECTED CABLE = %g mm²              \n", result.Cable.Size)
		fmt.Printf("  ╚═════════════════════════════════════════╝\n")
	}
	fmt.Println()

	fmt.Println("VOLTAGE DROP:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Drop:\t%.2f V\n", result.Cable.Drop.Drop)
	fmt.Fprintf(w, "  Drop Percentage:\t%.2f %% (limit %.1f %%)\n", result.Cable.Drop.Percent, result.Cable.Drop.Limit)
	fmt.Fprintf(w, "  Terminal Voltage:\t%.1f V\n", result.Cable.Drop.Terminal)
	w.Flush()
	fmt.Println()

	fmt.Println("PROTECTIVE DEVICE:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Rating (In):\t%.0f A\n", result.Device.Rating)
	fmt.Fprintf(w, "  Curve:\t%s\n", result.Device.Curve)
	fmt.Fprintf(w, "  Breaking Capacity:\t%.0f kA\n", result.Device.BreakingCapacity)
	fmt.Fprintf(w, "  Max Zs (0.4 s):\t%.3f Ω\n", result.Device.MaxZs)
	if result.Device.RCDRequired {
		fmt.Fprintf(w, "  RCD:\t%.0f mA type %s\n", result.Device.RCDRating, result.Device.RCDType)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("COMPLIANCE:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Current-Carrying Capacity:\t%s\n", verdict(result.CapacityOK))
	fmt.Fprintf(w, "  Voltage Drop:\t%s\n", verdict(result.VoltageDropOK))
	fmt.Fprintf(w, "  Device Coordination:\t%s\n", verdict(result.CoordinationOK))
	if result.ZsChecked {
		fmt.Fprintf(w, "  Earth Loop Impedance:\t%s\n", verdict(result.ZsOK))
	}
	w.Flush()
	fmt.Println()

	if result.Pass {
		fmt.Println("  ╔═════════════════════════════════════════╗")
		fmt.Println("  ║  CIRCUIT COMPLIANT                      ║")
		fmt.Println("  ╚═════════════════════════════════════════╝")
	} else {
		fmt.Println("  ╔═════════════════════════════════════════╗")
		fmt.Println("  ║  CIRCUIT NOT COMPLIANT                  ║")
		fmt.Println("  ╚═════════════════════════════════════════╝")
	}
	fmt.Println()
	fmt.Printf("  Reference: %s\n", result.Citation)
	fmt.Println()

	if len(result.Recommendations) > 0 {
		fmt.Println("RECOMMENDATIONS:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		for _, rec := range result.Recommendations {
			fmt.Printf("  • %s\n", rec)
		}
		fmt.Println()
	}
}

func verdict(ok bool) string {
	if ok {
		return "PASS ✓"
	}
	return "FAIL ✗"
}

// buildDropProfile evaluates the voltage drop at every ladder size so
// the chart shows where the limit line is crossed.
func buildDropProfile(spec *circuit.Spec, selected float64, limit float64) chart.ProfileData {
	model := voltdrop.NewModel()
	sizes, err := bs7671.SizesFor(spec.Material)
	if err != nil {
		return chart.ProfileData{}
	}

	profile := chart.ProfileData{
		Limit:    limit,
		Selected: selected,
		Class:    string(spec.Class),
	}
	for _, size := range sizes {
		outcome, err := model.DropFor(size, spec)
		if err != nil {
			continue
		}
		profile.Sizes = append(profile.Sizes, size)
		profile.Percents = append(profile.Percents, outcome.Percent)
	}
	return profile
}
