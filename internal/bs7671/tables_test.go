package bs7671

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardSizesAscending(t *testing.T) {
	sizes := StandardSizes()
	require.NotEmpty(t, sizes)
	for i := 1; i < len(sizes); i++ {
		assert.Greater(t, sizes[i], sizes[i-1], "ladder must ascend at index %d", i)
	}
}

func TestCapacityFor(t *testing.T) {
	// 1.5mm² enclosed in an insulated wall carries 13.5A; a 20A load
	// must not fit on it.
	capacity, err := CapacityFor(1.5, MethodA)
	require.NoError(t, err)
	assert.Equal(t, 13.5, capacity)

	// Capacity rises with the installation method's cooling.
	clipped, err := CapacityFor(1.5, MethodC)
	require.NoError(t, err)
	assert.Greater(t, clipped, capacity)
}

func TestCapacityMonotonicInSize(t *testing.T) {
	for _, method := range []InstallMethod{MethodA, MethodB, MethodC, MethodD, MethodE} {
		prev := 0.0
		for _, size := range StandardSizes() {
			capacity, err := CapacityFor(size, method)
			require.NoError(t, err)
			assert.Greater(t, capacity, prev, "method %s size %g", method, size)
			prev = capacity
		}
	}
}

func TestCapacityLookupMiss(t *testing.T) {
	_, err := CapacityFor(2.0, MethodA) // not a standard size
	var lookupErr *LookupError
	require.ErrorAs(t, err, &lookupErr)

	_, err = CapacityFor(1.5, InstallMethod("Z"))
	require.ErrorAs(t, err, &lookupErr)
}

func TestResistancePerMetre(t *testing.T) {
	r, err := ResistancePerMetre(6, MaterialCopper)
	require.NoError(t, err)
	assert.Equal(t, 3.08, r)

	// Aluminium resists more than copper at the same size.
	rCu, err := ResistancePerMetre(25, MaterialCopper)
	require.NoError(t, err)
	rAl, err := ResistancePerMetre(25, MaterialAluminium)
	require.NoError(t, err)
	assert.Greater(t, rAl, rCu)
}

func TestAluminiumSmallSizesAbsent(t *testing.T) {
	_, err := ResistancePerMetre(2.5, MaterialAluminium)
	var lookupErr *LookupError
	require.ErrorAs(t, err, &lookupErr)

	sizes, err := SizesFor(MaterialAluminium)
	require.NoError(t, err)
	assert.Equal(t, 16.0, sizes[0], "aluminium ladder starts at 16mm²")
}

func TestImpedanceForDerivesReactance(t *testing.T) {
	z, err := ImpedanceFor(10, MaterialCopper)
	require.NoError(t, err)
	assert.InDelta(t, z.Resistance*DefaultReactanceRatio, z.Reactance, 1e-12)
}

func TestDeviceLadders(t *testing.T) {
	ratings := StandardDeviceRatings()
	assert.Equal(t, 6.0, ratings[0])
	assert.Equal(t, 125.0, ratings[len(ratings)-1])

	tiers := BreakingCapacityTiers()
	assert.Equal(t, 6.0, tiers[0])
	assert.Equal(t, 50.0, tiers[len(tiers)-1])
}

func TestMaxVoltageDropPercent(t *testing.T) {
	lighting, err := MaxVoltageDropPercent(ClassLighting)
	require.NoError(t, err)
	power, err := MaxVoltageDropPercent(ClassPower)
	require.NoError(t, err)
	assert.Equal(t, 3.0, lighting)
	assert.Equal(t, 5.0, power)
	assert.Less(t, lighting, power, "lighting circuits use the tighter limit")

	_, err = MaxVoltageDropPercent(CircuitClass("heating"))
	var lookupErr *LookupError
	require.ErrorAs(t, err, &lookupErr)
}

func TestMaxEarthLoopImpedance(t *testing.T) {
	// Curve B 32A: Zs = 230 / (5 × 32)
	zs, err := MaxEarthLoopImpedance(32, CurveB, VoltageSinglePhase)
	require.NoError(t, err)
	assert.InDelta(t, 1.4375, zs, 1e-9)

	// Higher trip multiples demand a lower loop impedance.
	zsC, err := MaxEarthLoopImpedance(32, CurveC, VoltageSinglePhase)
	require.NoError(t, err)
	zsD, err := MaxEarthLoopImpedance(32, CurveD, VoltageSinglePhase)
	require.NoError(t, err)
	assert.Greater(t, zs, zsC)
	assert.Greater(t, zsC, zsD)

	_, err = MaxEarthLoopImpedance(0, CurveB, VoltageSinglePhase)
	assert.Error(t, err)
	_, err = MaxEarthLoopImpedance(32, Curve("K"), VoltageSinglePhase)
	assert.Error(t, err)
}
