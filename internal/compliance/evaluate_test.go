package compliance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circuitworks/gocable/internal/bs7671"
	"github.com/circuitworks/gocable/internal/circuit"
)

func assessSpec() *circuit.Spec {
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

// 32A single-phase power circuit over 50m: 6mm² copper, 32A curve C
// device, everything inside limits.
func TestAssessCompliantCircuit(t *testing.T) {
	result, err := Assess(assessSpec())
	require.NoError(t, err)

	assert.True(t, result.Pass)
	assert.True(t, result.CapacityOK)
	assert.True(t, result.VoltageDropOK)
	assert.True(t, result.CoordinationOK)
	assert.False(t, result.ZsChecked)
	assert.Empty(t, result.Recommendations)

	assert.Equal(t, 6.0, result.Cable.Size)
	assert.InDelta(t, 4.81, result.Cable.Drop.Percent, 0.01)
	assert.Equal(t, 32.0, result.Device.Rating)
	assert.Equal(t, bs7671.CurveC, result.Device.Curve)

	assert.Contains(t, result.Citation, bs7671.Edition)
}

func TestAssessValidationFailsFast(t *testing.T) {
	spec := assessSpec()
	spec.DesignCurrent = 0

	result, err := Assess(spec)
	assert.Nil(t, result, "no partial result on validation failure")
	var validationErr *circuit.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestAssessIdempotent(t *testing.T) {
	first, err := Assess(assessSpec())
	require.NoError(t, err)
	second, err := Assess(assessSpec())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAssessDeviceCoordination(t *testing.T) {
	for _, current := range []float64{6, 16, 27, 40, 63} {
		spec := assessSpec()
		spec.DesignCurrent = current
		spec.Length = 15

		result, err := Assess(spec)
		require.NoError(t, err)
		if result.Device.RatingDegraded {
			continue
		}
		assert.GreaterOrEqual(t, result.Device.Rating, current)
		assert.LessOrEqual(t, result.Device.Rating, result.Cable.DeratedCapacity)
	}
}

func TestAssessVoltageDropFailureRecommends(t *testing.T) {
	spec := assessSpec()
	spec.Method = bs7671.MethodC
	spec.DesignCurrent = 300
	spec.Length = 600

	result, err := Assess(spec)
	require.NoError(t, err, "a degraded circuit is a result, not an error")

	assert.False(t, result.Pass)
	assert.True(t, result.CapacityOK)
	assert.False(t, result.VoltageDropOK)
	assert.True(t, result.Cable.Degraded)

	require.NotEmpty(t, result.Recommendations)
	joined := strings.Join(result.Recommendations, " ")
	assert.Contains(t, joined, "Voltage drop")
}

func TestAssessCapacityFailureRecommends(t *testing.T) {
	spec := assessSpec()
	spec.DesignCurrent = 400
	spec.Length = 10

	result, err := Assess(spec)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	assert.False(t, result.CapacityOK)
	joined := strings.Join(result.Recommendations, " ")
	assert.Contains(t, joined, "installation method")
}

func TestAssessFaultLevelBeyondTiers(t *testing.T) {
	spec := assessSpec()
	spec.FaultLevel = 80

	result, err := Assess(spec)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	assert.False(t, result.CoordinationOK)
	assert.True(t, result.Device.BreakingDegraded)
	assert.Equal(t, 50.0, result.Device.BreakingCapacity)
	joined := strings.Join(result.Recommendations, " ")
	assert.Contains(t, joined, "breaking capacity")
}

func TestAssessEarthLoopCheck(t *testing.T) {
	spec := assessSpec()
	spec.EarthLoopImpedance = 0.5 // below the 0.719Ω curve C maximum

	result, err := Assess(spec)
	require.NoError(t, err)
	assert.True(t, result.ZsChecked)
	assert.True(t, result.ZsOK)
	assert.True(t, result.Pass)

	spec.EarthLoopImpedance = 1.5
	result, err = Assess(spec)
	require.NoError(t, err)
	assert.True(t, result.ZsChecked)
	assert.False(t, result.ZsOK)
	assert.False(t, result.Pass)
	joined := strings.Join(result.Recommendations, " ")
	assert.Contains(t, joined, "earth loop impedance")
}

func TestAssessGroupingAdvice(t *testing.T) {
	spec := assessSpec()
	spec.Grouped = 6      // Cg = 0.57
	spec.DesignCurrent = 300
	spec.Method = bs7671.MethodA
	spec.Length = 5

	result, err := Assess(spec)
	require.NoError(t, err)
	require.False(t, result.Pass)
	joined := strings.Join(result.Recommendations, " ")
	assert.Contains(t, joined, "Grouping factor")
}
