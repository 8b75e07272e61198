// Package sizing searches the standard conductor ladder for the
// smallest size that satisfies both thermal capacity and voltage drop.
package sizing

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/circuitworks/gocable/internal/bs7671"
	"github.com/circuitworks/gocable/internal/circuit"
	"github.com/circuitworks/gocable/internal/derating"
	"github.com/circuitworks/gocable/internal/voltdrop"
)

// Candidate is the outcome of the ladder search. When no size in the
// ladder satisfies every constraint the largest standard size is
// returned with Degraded set; the search never fails silently.
type Candidate struct {
	Size             float64 // mm²
	Capacity         float64 // A, tabulated for the installation method
	DeratedCapacity  float64 // A, capacity × overall derating factor
	RequiredAmpacity float64 // A, design current / overall derating factor

	Drop *voltdrop.Outcome

	CapacityOK bool // derated capacity covers the design current
	Degraded   bool // fallback to the largest size, not a compliant pick
}

// SelectCable finds the smallest standard size meeting both the thermal
// and voltage-drop constraints.
//
// The scan is two-pass over one ascending ladder: the first size whose
// tabulated capacity covers the required ampacity is the capacity
// candidate, and the scan continues upward from it until the voltage
// drop is also inside the class limit. Smallest adequate size wins.
func SelectCable(spec *circuit.Spec, factors *derating.Factors, model *voltdrop.Model) (*Candidate, error) {
	sizes, err := bs7671.SizesFor(spec.Material)
	if err != nil {
		return nil, err
	}

	required := spec.DesignCurrent / factors.Overall

	for _, size := range sizes {
		capacity, err := bs7671.CapacityFor(size, spec.Method)
		if err != nil {
			return nil, err
		}
		if capacity < required {
			slog.Debug("size rejected on capacity",
				"size", size, "capacity", capacity, "required", required)
			continue
		}

		outcome, err := model.DropFor(size, spec)
		if err != nil {
			return nil, err
		}
		if !outcome.WithinLimit {
			slog.Debug("size rejected on voltage drop",
				"size", size, "percent", outcome.Percent, "limit", outcome.Limit)
			continue
		}

		slog.Debug("size selected", "size", size, "capacity", capacity)
		return &Candidate{
			Size:             size,
			Capacity:         capacity,
			DeratedCapacity:  round(capacity*factors.Overall, 1),
			RequiredAmpacity: round(required, 1),
			Drop:             outcome,
			CapacityOK:       true,
		}, nil
	}

	// Nothing on the ladder satisfies both constraints. Fall back to the
	// largest standard size, flagged, so the caller sees exactly how far
	// short the best available conductor is.
	return largestFallback(sizes, spec, factors, required, model)
}

func largestFallback(sizes []float64, spec *circuit.Spec, factors *derating.Factors, required float64, model *voltdrop.Model) (*Candidate, error) {
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no conductor sizes tabulated for %s", spec.Material)
	}
	largest := sizes[len(sizes)-1]
	capacity, err := bs7671.CapacityFor(largest, spec.Method)
	if err != nil {
		return nil, err
	}
	outcome, err := model.DropFor(largest, spec)
	if err != nil {
		return nil, err
	}

	slog.Debug("no compliant size, falling back to largest",
		"size", largest, "capacity", capacity, "required", required)
	return &Candidate{
		Size:             largest,
		Capacity:         capacity,
		DeratedCapacity:  round(capacity*factors.Overall, 1),
		RequiredAmpacity: round(required, 1),
		Drop:             outcome,
		CapacityOK:       capacity*factors.Overall >= required,
		Degraded:         true,
	}, nil
}

func round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
