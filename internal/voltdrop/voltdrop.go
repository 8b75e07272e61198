// Package voltdrop computes the voltage drop along a conductor run
// under load, in absolute terms and as a percentage of nominal supply
// voltage.
package voltdrop

import (
	"math"

	"github.com/circuitworks/gocable/internal/bs7671"
	"github.com/circuitworks/gocable/internal/circuit"
)

// Model holds the tunable parts of the drop calculation. The reactance
// of a conductor is approximated as a fixed fraction of its effective
// resistance; callers with tabulated per-size reactance data can set
// ReactanceRatio accordingly.
type Model struct {
	ReactanceRatio float64
}

// NewModel returns a Model with the default reactance fraction.
func NewModel() *Model {
	return &Model{ReactanceRatio: bs7671.DefaultReactanceRatio}
}

// Outcome is the voltage drop result for one candidate size. Numeric
// fields are pre-rounded for presentation.
type Outcome struct {
	Drop        float64 // V
	Percent     float64 // of nominal supply voltage
	Terminal    float64 // V remaining at the load
	Nominal     float64 // V, supply voltage used
	Limit       float64 // %, the class limit applied
	WithinLimit bool
}

// DropFor evaluates the voltage drop for a candidate conductor size.
//
// The tabulated 20°C resistance is corrected to the conductor operating
// temperature with the linear coefficient, then combined with the
// power factor:
//
//	single-phase: ΔU = 2 × Ib × L × (R·cosφ + X·sinφ)
//	three-phase:  ΔU = √3 × Ib × L × (R·cosφ + X·sinφ)
//
// with sinφ = √(1 − cos²φ) (lagging load assumed).
func (m *Model) DropFor(size float64, spec *circuit.Spec) (*Outcome, error) {
	r20, err := bs7671.ResistancePerMetre(size, spec.Material)
	if err != nil {
		return nil, err
	}
	limit, err := bs7671.MaxVoltageDropPercent(spec.Class)
	if err != nil {
		return nil, err
	}

	// mΩ/m at 20°C → Ω/m at operating temperature
	rEff := r20 / 1000 * (1 + bs7671.TempCoefficient*(bs7671.ConductorOperatingTemp-bs7671.ReferenceTemp))
	xEff := rEff * m.ReactanceRatio

	cosPhi := spec.PowerFactor
	sinPhi := math.Sqrt(1 - cosPhi*cosPhi)
	zPerMetre := rEff*cosPhi + xEff*sinPhi

	multiplier := 2.0
	if spec.Phases == 3 {
		multiplier = math.Sqrt(3)
	}

	nominal := spec.NominalVoltage()
	drop := multiplier * spec.DesignCurrent * spec.Length * zPerMetre
	percent := drop / nominal * 100

	return &Outcome{
		Drop:        round(drop, 2),
		Percent:     round(percent, 2),
		Terminal:    round(nominal-drop, 1),
		Nominal:     nominal,
		Limit:       limit,
		WithinLimit: percent <= limit,
	}, nil
}

func round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
