// Package derating combines installation-condition rating factors into
// the overall coefficient applied to a cable's tabulated capacity.
package derating

import (
	"github.com/circuitworks/gocable/internal/bs7671"
	"github.com/circuitworks/gocable/internal/circuit"
)

// Factors holds the four rating factors and their product. Overall is
// always the product of the other four; only Burial may exceed unity.
type Factors struct {
	Grouping   float64 // Cg
	Ambient    float64 // Ca
	Insulation float64 // Ci
	Burial     float64 // Cs, 1.0 when the run is not buried
	Overall    float64
}

// Derate computes the combined derating coefficient for a circuit.
// The spec must already be validated; table misses here indicate
// conditions outside the capability of the assumed insulation class.
func Derate(spec *circuit.Spec) (*Factors, error) {
	grouping, err := bs7671.GroupingFactor(spec.Grouped)
	if err != nil {
		return nil, err
	}
	ambient, err := bs7671.AmbientFactor(spec.AmbientTemp)
	if err != nil {
		return nil, err
	}
	insulation, err := bs7671.InsulationFactor(spec.InsulationFraction)
	if err != nil {
		return nil, err
	}
	burial := 1.0
	if spec.Buried {
		burial, err = bs7671.BurialFactor(spec.SoilResistivity)
		if err != nil {
			return nil, err
		}
	}

	return &Factors{
		Grouping:   grouping,
		Ambient:    ambient,
		Insulation: insulation,
		Burial:     burial,
		Overall:    grouping * ambient * insulation * burial,
	}, nil
}
