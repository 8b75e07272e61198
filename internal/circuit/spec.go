package circuit

import (
	"fmt"
	"math"

	"github.com/circuitworks/gocable/internal/bs7671"
)

// Earthing is the supply earthing arrangement.
type Earthing string

const (
	EarthingTNS  Earthing = "TN-S"   // separate supply earth conductor
	EarthingTNCS Earthing = "TN-C-S" // combined neutral/earth to the origin (PME)
	EarthingTT   Earthing = "TT"     // dedicated local earth electrode
)

// MaxRouteLength is the practical ceiling on a single circuit run in
// metres. Longer runs need distribution design, not a bigger cable.
const MaxRouteLength = 1000.0

// Spec describes a proposed circuit. All fields are set by the caller
// before Validate; the engines treat a validated Spec as immutable.
type Spec struct {
	DesignCurrent float64 // Ib, amperes
	Length        float64 // route length, metres
	Phases        int     // 1 or 3
	PowerFactor   float64 // cos φ, lagging assumed

	Material bs7671.Material
	Class    bs7671.CircuitClass
	Method   bs7671.InstallMethod

	// Installation conditions
	AmbientTemp        float64 // °C
	Grouped            int     // number of circuits grouped together, ≥1
	InsulationFraction float64 // fraction of the run enclosed in thermal insulation
	Buried             bool
	SoilResistivity    float64 // K·m/W, required when Buried

	// Supply and protection context
	Earthing           Earthing
	HighInrush         bool    // declared high-inrush load (transformers, DOL starts)
	FaultLevel         float64 // prospective fault current at the origin, kA
	EarthLoopImpedance float64 // measured Zs in ohms; 0 means not measured
}

// ValidationError reports an input that fails its domain constraint.
// Validation is fail-fast: the first violation halts the pipeline
// before any search begins.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func invalidf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// Validate checks every field against its stated domain. A nil return
// guarantees the engines can run without further input checks.
func (s *Spec) Validate() error {
	for name, v := range map[string]float64{
		"design current":       s.DesignCurrent,
		"route length":         s.Length,
		"power factor":         s.PowerFactor,
		"ambient temperature":  s.AmbientTemp,
		"fault level":          s.FaultLevel,
		"soil resistivity":     s.SoilResistivity,
		"earth loop impedance": s.EarthLoopImpedance,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalidf("%s must be a finite number", name)
		}
	}
	if s.DesignCurrent <= 0 {
		return invalidf("design current must be positive, got %.2f A", s.DesignCurrent)
	}
	if s.Length <= 0 {
		return invalidf("route length must be positive, got %.2f m", s.Length)
	}
	if s.Length > MaxRouteLength {
		return invalidf("route length %.0f m exceeds the %.0f m practical ceiling", s.Length, MaxRouteLength)
	}
	if s.Phases != 1 && s.Phases != 3 {
		return invalidf("phase count must be 1 or 3, got %d", s.Phases)
	}
	if s.PowerFactor <= 0.1 || s.PowerFactor > 1.0 {
		return invalidf("power factor must be in (0.1, 1.0], got %.2f", s.PowerFactor)
	}
	if s.Material != bs7671.MaterialCopper && s.Material != bs7671.MaterialAluminium {
		return invalidf("conductor material must be copper or aluminium, got %q", s.Material)
	}
	if !bs7671.KnownClass(s.Class) {
		return invalidf("unknown circuit class %q", s.Class)
	}
	if !bs7671.KnownMethod(s.Method) {
		return invalidf("unknown installation method %q", s.Method)
	}
	if s.AmbientTemp < bs7671.AmbientTempMin || s.AmbientTemp > bs7671.AmbientTempMax {
		return invalidf("ambient temperature %.1f°C outside tabulated range %.0f–%.0f°C", s.AmbientTemp, bs7671.AmbientTempMin, bs7671.AmbientTempMax)
	}
	if s.Grouped < 1 {
		return invalidf("grouped circuit count must be at least 1, got %d", s.Grouped)
	}
	if s.InsulationFraction < 0 || s.InsulationFraction > 1 {
		return invalidf("insulated length fraction must be in [0,1], got %.2f", s.InsulationFraction)
	}
	if s.Buried && s.SoilResistivity <= 0 {
		return invalidf("buried circuits require a positive soil thermal resistivity, got %.2f K·m/W", s.SoilResistivity)
	}
	switch s.Earthing {
	case EarthingTNS, EarthingTNCS, EarthingTT:
	default:
		return invalidf("unknown earthing arrangement %q", s.Earthing)
	}
	if s.FaultLevel < 0 {
		return invalidf("prospective fault level must not be negative, got %.2f kA", s.FaultLevel)
	}
	if s.EarthLoopImpedance < 0 {
		return invalidf("earth loop impedance must not be negative, got %.3f Ω", s.EarthLoopImpedance)
	}
	return nil
}

// NominalVoltage returns the nominal supply voltage for the circuit's
// phase configuration. The Spec must have been validated.
func (s *Spec) NominalVoltage() float64 {
	if s.Phases == 3 {
		return bs7671.VoltageThreePhase
	}
	return bs7671.VoltageSinglePhase
}
