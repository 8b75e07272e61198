package derating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circuitworks/gocable/internal/bs7671"
	"github.com/circuitworks/gocable/internal/circuit"
)

func baseSpec() *circuit.Spec {
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
	}
}

func TestDerateReferenceConditions(t *testing.T) {
	factors, err := Derate(baseSpec())
	require.NoError(t, err)
	assert.Equal(t, 1.0, factors.Grouping)
	assert.Equal(t, 1.0, factors.Ambient)
	assert.Equal(t, 1.0, factors.Insulation)
	assert.Equal(t, 1.0, factors.Burial)
	assert.Equal(t, 1.0, factors.Overall)
}

func TestDerateOverallIsProduct(t *testing.T) {
	spec := baseSpec()
	spec.Grouped = 4
	spec.AmbientTemp = 40
	spec.InsulationFraction = 0.5
	spec.Buried = true
	spec.SoilResistivity = 0.8

	factors, err := Derate(spec)
	require.NoError(t, err)
	product := factors.Grouping * factors.Ambient * factors.Insulation * factors.Burial
	assert.InDelta(t, product, factors.Overall, 1e-12)
	assert.Greater(t, factors.Overall, 0.0)
}

func TestDerateBounds(t *testing.T) {
	// Only burial in wet soil may lift the overall factor above unity,
	// and never beyond the guaranteed ceiling.
	spec := baseSpec()
	spec.Buried = true
	spec.SoilResistivity = 0.5

	factors, err := Derate(spec)
	require.NoError(t, err)
	assert.Greater(t, factors.Overall, 1.0)
	assert.LessOrEqual(t, factors.Overall, bs7671.MaxOverallDerating)
}

func TestDerateNotBuriedIgnoresSoil(t *testing.T) {
	spec := baseSpec()
	spec.SoilResistivity = 0.5 // set but not buried

	factors, err := Derate(spec)
	require.NoError(t, err)
	assert.Equal(t, 1.0, factors.Burial)
}

func TestDerateInvalidConditions(t *testing.T) {
	var lookupErr *bs7671.LookupError

	zeroGroup := baseSpec()
	zeroGroup.Grouped = 0
	_, err := Derate(zeroGroup)
	require.ErrorAs(t, err, &lookupErr)

	hotAmbient := baseSpec()
	hotAmbient.AmbientTemp = 75
	_, err = Derate(hotAmbient)
	require.ErrorAs(t, err, &lookupErr)

	buriedNoSoil := baseSpec()
	buriedNoSoil.Buried = true
	buriedNoSoil.SoilResistivity = 0
	_, err = Derate(buriedNoSoil)
	require.ErrorAs(t, err, &lookupErr)
}
