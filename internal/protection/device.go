// Package protection selects a protective device coordinated with the
// chosen cable: rated for the load, within the cable's capacity, and
// able to interrupt the prospective fault current.
package protection

import (
	"log/slog"
	"math"

	"github.com/circuitworks/gocable/internal/bs7671"
	"github.com/circuitworks/gocable/internal/circuit"
	"github.com/circuitworks/gocable/internal/sizing"
)

// RCD sensitivity ratings in mA. Circuits on a dedicated local earth
// electrode (TT) get the 100 mA time-delayed device; all other cases
// requiring residual protection get the 30 mA instantaneous device.
const (
	RCDRatingTT      = 100.0
	RCDRatingDefault = 30.0
)

// Device is the selected protective device. Degraded flags mark the
// explicit fallbacks: the largest standard rating or breaking tier was
// taken because nothing on the ladder qualified.
type Device struct {
	Rating           float64      // In, A
	Curve            bs7671.Curve
	BreakingCapacity float64 // kA
	MaxZs            float64 // Ω, maximum earth loop impedance for 0.4 s disconnection

	RCDRequired bool
	RCDRating   float64 // mA
	RCDType     string  // "S" time-delayed, "A" general

	RatingDegraded   bool // no rating fits between design current and cable capacity
	BreakingDegraded bool // fault level exceeds the largest breaking tier
}

// SelectDevice picks the device protecting both load and cable.
//
// Rating: smallest standard In with Ib ≤ In ≤ Iz (the cable's derated
// capacity); if none qualifies the largest standard rating is returned
// flagged. Curve: D for motors and declared high-inrush loads, B for
// lighting, C otherwise. Breaking capacity: smallest standard tier
// covering the prospective fault level, largest tier flagged when even
// that is exceeded.
func SelectDevice(cable *sizing.Candidate, spec *circuit.Spec) (*Device, error) {
	curve := curveFor(spec)

	rating, ratingDegraded := selectRating(spec.DesignCurrent, cable.DeratedCapacity)
	breaking, breakingDegraded := selectBreaking(spec.FaultLevel)

	maxZs, err := bs7671.MaxEarthLoopImpedance(rating, curve, bs7671.VoltageSinglePhase)
	if err != nil {
		return nil, err
	}

	dev := &Device{
		Rating:           rating,
		Curve:            curve,
		BreakingCapacity: breaking,
		MaxZs:            round(maxZs, 3),
		RatingDegraded:   ratingDegraded,
		BreakingDegraded: breakingDegraded,
	}

	// Residual protection: socket-outlet (power) circuits always, and
	// any circuit on a TT supply where the loop impedance alone cannot
	// guarantee disconnection.
	if spec.Class == bs7671.ClassPower || spec.Earthing == circuit.EarthingTT {
		dev.RCDRequired = true
		if spec.Earthing == circuit.EarthingTT {
			dev.RCDRating = RCDRatingTT
			dev.RCDType = "S"
		} else {
			dev.RCDRating = RCDRatingDefault
			dev.RCDType = "A"
		}
	}

	slog.Debug("device selected",
		"rating", dev.Rating, "curve", dev.Curve, "breaking", dev.BreakingCapacity,
		"ratingDegraded", dev.RatingDegraded, "breakingDegraded", dev.BreakingDegraded)
	return dev, nil
}

func curveFor(spec *circuit.Spec) bs7671.Curve {
	switch {
	case spec.Class == bs7671.ClassMotor || spec.HighInrush:
		return bs7671.CurveD
	case spec.Class == bs7671.ClassLighting:
		return bs7671.CurveB
	default:
		return bs7671.CurveC
	}
}

func selectRating(designCurrent, cableCapacity float64) (rating float64, degraded bool) {
	ratings := bs7671.StandardDeviceRatings()
	for _, in := range ratings {
		if in >= designCurrent && in <= cableCapacity {
			return in, false
		}
	}
	return ratings[len(ratings)-1], true
}

func selectBreaking(faultLevel float64) (tier float64, degraded bool) {
	tiers := bs7671.BreakingCapacityTiers()
	for _, kA := range tiers {
		if kA >= faultLevel {
			return kA, false
		}
	}
	return tiers[len(tiers)-1], true
}

func round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
