package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/circuitworks/gocable/internal/bs7671"
	"github.com/circuitworks/gocable/internal/circuit"
	"github.com/circuitworks/gocable/internal/derating"
	"github.com/circuitworks/gocable/internal/protection"
	"github.com/circuitworks/gocable/internal/sizing"
)

var (
	devSize     float64
	devCurrent  float64
	devClass    string
	devMethod   string
	devAmbient  float64
	devGrouped  int
	devEarthing string
	devInrush   bool
	devFault    float64
)

var circuitDeviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Select a protective device for an explicit conductor size",
	Long: `Select the protective device rating, curve and breaking capacity for
an already-chosen conductor size, coordinated with its derated capacity.

Examples:
  # Device for a 6mm² power circuit carrying 32A
  gocable circuit device --size 6 --current 32

  # Motor feeder on a TT supply with 10kA fault level
  gocable circuit device --size 16 -i 45 --class motor --earthing TT --fault 10`,
	Run: runCircuitDevice,
}

func init() {
	circuitCmd.AddCommand(circuitDeviceCmd)

	circuitDeviceCmd.Flags().Float64VarP(&devSize, "size", "s", 0, "Conductor size (mm²) [required]")
	circuitDeviceCmd.Flags().Float64VarP(&devCurrent, "current", "i", 0, "Design current Ib (A) [required]")
	circuitDeviceCmd.Flags().StringVar(&devClass, "class", "power", "Circuit class (lighting, power, motor)")
	circuitDeviceCmd.Flags().StringVarP(&devMethod, "method", "m", "A", "Installation method (A, B, C, D, E)")
	circuitDeviceCmd.Flags().Float64Var(&devAmbient, "ambient", 30, "Ambient temperature (°C)")
	circuitDeviceCmd.Flags().IntVarP(&devGrouped, "group", "g", 1, "Number of grouped circuits")
	circuitDeviceCmd.Flags().StringVar(&devEarthing, "earthing", "TN-C-S", "Earthing arrangement (TN-S, TN-C-S, TT)")
	circuitDeviceCmd.Flags().BoolVar(&devInrush, "inrush", false, "Declared high-inrush load")
	circuitDeviceCmd.Flags().Float64Var(&devFault, "fault", 6, "Prospective fault level at origin (kA)")

	circuitDeviceCmd.MarkFlagRequired("size")
	circuitDeviceCmd.MarkFlagRequired("current")
}

func runCircuitDevice(cmd *cobra.Command, args []string) {
	if !cmd.Flags().Changed("ambient") {
		devAmbient = viper.GetFloat64("ambient")
	}
	if !cmd.Flags().Changed("method") {
		devMethod = viper.GetString("method")
	}
	if !cmd.Flags().Changed("earthing") {
		devEarthing = viper.GetString("earthing")
	}

	spec := &circuit.Spec{
		DesignCurrent: devCurrent,
		Length:        1, // not used for device selection
		Phases:        1,
		PowerFactor:   0.95,
		Material:      bs7671.MaterialCopper,
		Class:         bs7671.CircuitClass(devClass),
		Method:        bs7671.InstallMethod(devMethod),
		AmbientTemp:   devAmbient,
		Grouped:       devGrouped,
		Earthing:      circuit.Earthing(devEarthing),
		HighInrush:    devInrush,
		FaultLevel:    devFault,
	}
	if err := spec.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	factors, err := derating.Derate(spec)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	capacity, err := bs7671.CapacityFor(devSize, spec.Method)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	cable := &sizing.Candidate{
		Size:            devSize,
		Capacity:        capacity,
		DeratedCapacity: capacity * factors.Overall,
		CapacityOK:      capacity*factors.Overall >= devCurrent,
	}

	device, err := protection.SelectDevice(cable, spec)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("               PROTECTIVE DEVICE SELECTION")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Cable:\t%g mm², derated capacity %.1f A\n", cable.Size, cable.DeratedCapacity)
	fmt.Fprintf(w, "  Design Current (Ib):\t%.1f A\n", devCurrent)
	fmt.Fprintf(w, "  Fault Level:\t%.1f kA\n", devFault)
	w.Flush()
	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Rating (In):\t%.0f A\n", device.Rating)
	fmt.Fprintf(w, "  Curve:\t%s\n", device.Curve)
	fmt.Fprintf(w, "  Breaking Capacity:\t%.0f kA\n", device.BreakingCapacity)
	fmt.Fprintf(w, "  Max Zs (0.4 s):\t%.3f Ω\n", device.MaxZs)
	if device.RCDRequired {
		fmt.Fprintf(w, "  RCD:\t%.0f mA type %s\n", device.RCDRating, device.RCDType)
	}
	w.Flush()
	fmt.Println()

	if device.RatingDegraded {
		fmt.Println("  WARNING: no standard rating fits between Ib and the cable's")
		fmt.Println("  derated capacity; largest standard rating returned.")
	}
	if device.BreakingDegraded {
		fmt.Println("  WARNING: fault level exceeds the largest breaking capacity tier;")
		fmt.Println("  largest tier returned.")
	}
	if device.RatingDegraded || device.BreakingDegraded {
		fmt.Println()
	}
}
