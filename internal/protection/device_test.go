package protection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circuitworks/gocable/internal/bs7671"
	"github.com/circuitworks/gocable/internal/circuit"
	"github.com/circuitworks/gocable/internal/sizing"
)

func deviceSpec() *circuit.Spec {
	return &circuit.Spec{
		DesignCurrent: 32,
		Length:        50,
		Phases:        1,
		PowerFactor:   0.9,
		Material:      bs7671.MaterialCopper,
		Class:         bs7671.ClassPower,
		Method:        bs7671.MethodA,
		AmbientTemp:   30,
		Grouped:       1,
		Earthing:      circuit.EarthingTNCS,
		FaultLevel:    6,
	}
}

func cableWithCapacity(size, derated float64) *sizing.Candidate {
	return &sizing.Candidate{
		Size:            size,
		Capacity:        derated,
		DeratedCapacity: derated,
		CapacityOK:      true,
	}
}

func TestRatingBracketsLoadAndCable(t *testing.T) {
	spec := deviceSpec()
	spec.DesignCurrent = 27

	dev, err := SelectDevice(cableWithCapacity(10, 43), spec)
	require.NoError(t, err)
	assert.Equal(t, 32.0, dev.Rating, "smallest rating ≥ 27A and ≤ 43A")
	assert.False(t, dev.RatingDegraded)
	assert.GreaterOrEqual(t, dev.Rating, spec.DesignCurrent)
	assert.LessOrEqual(t, dev.Rating, 43.0)
}

func TestRatingExactFit(t *testing.T) {
	// 6mm² under method A carries exactly 32A; a 32A device protects
	// both load and cable with no margin to spare.
	dev, err := SelectDevice(cableWithCapacity(6, 32), deviceSpec())
	require.NoError(t, err)
	assert.Equal(t, 32.0, dev.Rating)
	assert.False(t, dev.RatingDegraded)
}

func TestRatingDegradedWhenNoBracketExists(t *testing.T) {
	spec := deviceSpec()
	spec.DesignCurrent = 30

	// Derated capacity 25A: no standard rating lies in [30, 25].
	dev, err := SelectDevice(cableWithCapacity(4, 25), spec)
	require.NoError(t, err)
	assert.True(t, dev.RatingDegraded)
	assert.Equal(t, 125.0, dev.Rating, "largest standard rating returned, flagged")
}

func TestCurveSelection(t *testing.T) {
	lighting := deviceSpec()
	lighting.Class = bs7671.ClassLighting
	dev, err := SelectDevice(cableWithCapacity(6, 32), lighting)
	require.NoError(t, err)
	assert.Equal(t, bs7671.CurveB, dev.Curve)

	motor := deviceSpec()
	motor.Class = bs7671.ClassMotor
	dev, err = SelectDevice(cableWithCapacity(6, 32), motor)
	require.NoError(t, err)
	assert.Equal(t, bs7671.CurveD, dev.Curve)

	inrush := deviceSpec()
	inrush.HighInrush = true
	dev, err = SelectDevice(cableWithCapacity(6, 32), inrush)
	require.NoError(t, err)
	assert.Equal(t, bs7671.CurveD, dev.Curve)

	dev, err = SelectDevice(cableWithCapacity(6, 32), deviceSpec())
	require.NoError(t, err)
	assert.Equal(t, bs7671.CurveC, dev.Curve, "power circuits default to the middle curve")
}

func TestBreakingCapacityTier(t *testing.T) {
	spec := deviceSpec()
	spec.FaultLevel = 8.5

	dev, err := SelectDevice(cableWithCapacity(6, 32), spec)
	require.NoError(t, err)
	assert.Equal(t, 10.0, dev.BreakingCapacity, "smallest tier covering 8.5kA")
	assert.False(t, dev.BreakingDegraded)
}

// A fault level beyond the largest tier returns the largest tier with
// the flag set, never an error.
func TestBreakingCapacityDegraded(t *testing.T) {
	spec := deviceSpec()
	spec.FaultLevel = 80

	dev, err := SelectDevice(cableWithCapacity(6, 32), spec)
	require.NoError(t, err)
	assert.Equal(t, 50.0, dev.BreakingCapacity)
	assert.True(t, dev.BreakingDegraded)
}

func TestMaxZs(t *testing.T) {
	dev, err := SelectDevice(cableWithCapacity(6, 32), deviceSpec())
	require.NoError(t, err)
	// Curve C at 32A: 230 / (10 × 32)
	assert.InDelta(t, 0.719, dev.MaxZs, 0.001)
}

func TestRCDSelection(t *testing.T) {
	// Power circuits always get residual protection.
	dev, err := SelectDevice(cableWithCapacity(6, 32), deviceSpec())
	require.NoError(t, err)
	assert.True(t, dev.RCDRequired)
	assert.Equal(t, RCDRatingDefault, dev.RCDRating)
	assert.Equal(t, "A", dev.RCDType)

	// TT supplies get the time-delayed 100mA device regardless of class.
	tt := deviceSpec()
	tt.Class = bs7671.ClassMotor
	tt.Earthing = circuit.EarthingTT
	dev, err = SelectDevice(cableWithCapacity(6, 32), tt)
	require.NoError(t, err)
	assert.True(t, dev.RCDRequired)
	assert.Equal(t, RCDRatingTT, dev.RCDRating)
	assert.Equal(t, "S", dev.RCDType)

	// Lighting on TN needs none.
	lighting := deviceSpec()
	lighting.Class = bs7671.ClassLighting
	dev, err = SelectDevice(cableWithCapacity(6, 32), lighting)
	require.NoError(t, err)
	assert.False(t, dev.RCDRequired)
}
