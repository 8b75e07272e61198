// Package compliance runs the full sizing chain and assembles the
// verdict: per-constraint checks, a regulation citation, and targeted
// remediation advice.
package compliance

import (
	"fmt"

	"github.com/circuitworks/gocable/internal/bs7671"
	"github.com/circuitworks/gocable/internal/circuit"
	"github.com/circuitworks/gocable/internal/derating"
	"github.com/circuitworks/gocable/internal/protection"
	"github.com/circuitworks/gocable/internal/sizing"
	"github.com/circuitworks/gocable/internal/voltdrop"
)

// Result aggregates one pass through the chain. A degraded or failing
// circuit still produces a Result — "no compliant size exists" is an
// answer, not an error.
type Result struct {
	Spec    *circuit.Spec
	Factors *derating.Factors
	Cable   *sizing.Candidate
	Device  *protection.Device

	CapacityOK     bool
	VoltageDropOK  bool
	CoordinationOK bool
	ZsChecked      bool // a measured earth loop impedance was supplied
	ZsOK           bool

	Pass            bool
	Citation        string
	Recommendations []string
}

// Assess validates the spec and runs the whole chain: derating, ladder
// search, device selection, evaluation. The only error returns are
// validation failures and table misses, raised before or during the
// search; a completed search always yields a Result.
func Assess(spec *circuit.Spec) (*Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	factors, err := derating.Derate(spec)
	if err != nil {
		return nil, err
	}
	model := voltdrop.NewModel()
	cable, err := sizing.SelectCable(spec, factors, model)
	if err != nil {
		return nil, err
	}
	device, err := protection.SelectDevice(cable, spec)
	if err != nil {
		return nil, err
	}

	return Evaluate(cable, device, factors, spec), nil
}

// Evaluate combines the capacity, voltage-drop and coordination checks
// into a single verdict with remediation advice for each failure.
func Evaluate(cable *sizing.Candidate, device *protection.Device, factors *derating.Factors, spec *circuit.Spec) *Result {
	r := &Result{
		Spec:    spec,
		Factors: factors,
		Cable:   cable,
		Device:  device,
		Citation: fmt.Sprintf("%s Regulations 433.1.1, 525.1 & Appendix 4",
			bs7671.Edition),
	}

	r.CapacityOK = cable.CapacityOK
	r.VoltageDropOK = cable.Drop.WithinLimit
	r.CoordinationOK = !device.RatingDegraded && !device.BreakingDegraded &&
		device.Rating >= spec.DesignCurrent && device.Rating <= cable.DeratedCapacity &&
		device.BreakingCapacity >= spec.FaultLevel

	if spec.EarthLoopImpedance > 0 {
		r.ZsChecked = true
		r.ZsOK = spec.EarthLoopImpedance <= device.MaxZs
	}

	r.Pass = r.CapacityOK && r.VoltageDropOK && r.CoordinationOK && (!r.ZsChecked || r.ZsOK)
	r.Recommendations = recommend(r)
	return r
}

func recommend(r *Result) []string {
	var recs []string
	spec, cable, device := r.Spec, r.Cable, r.Device

	if !r.CapacityOK {
		recs = append(recs, fmt.Sprintf(
			"No standard size carries the required %.1f A under these conditions; use a higher-rated installation method (e.g. clipped direct or free air), reduce grouping, or split the load across parallel circuits.",
			cable.RequiredAmpacity))
	}
	if !r.VoltageDropOK {
		recs = append(recs, fmt.Sprintf(
			"Voltage drop %.2f%% exceeds the %.1f%% limit for %s circuits over a %.0f m run; shorten the route, increase the conductor size, or supply the load closer to the origin.",
			cable.Drop.Percent, cable.Drop.Limit, spec.Class, spec.Length))
	}
	if device.RatingDegraded {
		recs = append(recs, fmt.Sprintf(
			"No standard device rating lies between the %.1f A design current and the cable's %.1f A derated capacity; select a larger cable so a standard rating can protect both.",
			spec.DesignCurrent, cable.DeratedCapacity))
	}
	if device.BreakingDegraded {
		recs = append(recs, fmt.Sprintf(
			"Prospective fault level %.1f kA exceeds the largest standard breaking capacity (%.0f kA); fit current-limiting devices upstream or reduce the fault level at the origin.",
			spec.FaultLevel, device.BreakingCapacity))
	}
	if r.ZsChecked && !r.ZsOK {
		recs = append(recs, fmt.Sprintf(
			"Measured earth loop impedance %.3f Ω exceeds the %.3f Ω maximum for a %g A curve %s device; improve the earth path or use a lower trip-multiple curve.",
			spec.EarthLoopImpedance, device.MaxZs, device.Rating, device.Curve))
	}

	// Advisory, not a failure: heavy grouping dominates the derating and
	// is usually the cheapest condition to change.
	if !r.Pass && r.Factors.Grouping <= 0.60 {
		recs = append(recs, fmt.Sprintf(
			"Grouping factor %.2f for %d circuits dominates the derating; separating the circuits would restore most of the tabulated capacity.",
			r.Factors.Grouping, spec.Grouped))
	}
	return recs
}
