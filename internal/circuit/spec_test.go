package circuit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circuitworks/gocable/internal/bs7671"
)

func validSpec() *Spec {
	return &Spec{
		DesignCurrent: 32,
		Length:        50,
		Phases:        1,
		PowerFactor:   0.9,
		Material:      bs7671.MaterialCopper,
		Class:         bs7671.ClassPower,
		Method:        bs7671.MethodA,
		AmbientTemp:   30,
		Grouped:       1,
		Earthing:      EarthingTNCS,
		FaultLevel:    6,
	}
}

func TestValidateAccepts(t *testing.T) {
	require.NoError(t, validSpec().Validate())

	buried := validSpec()
	buried.Buried = true
	buried.SoilResistivity = 1.2
	require.NoError(t, buried.Validate())

	threePhase := validSpec()
	threePhase.Phases = 3
	require.NoError(t, threePhase.Validate())
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Spec)
	}{
		{"zero current", func(s *Spec) { s.DesignCurrent = 0 }},
		{"negative current", func(s *Spec) { s.DesignCurrent = -5 }},
		{"zero length", func(s *Spec) { s.Length = 0 }},
		{"length beyond ceiling", func(s *Spec) { s.Length = 1200 }},
		{"two phases", func(s *Spec) { s.Phases = 2 }},
		{"power factor too low", func(s *Spec) { s.PowerFactor = 0.1 }},
		{"power factor above one", func(s *Spec) { s.PowerFactor = 1.05 }},
		{"unknown material", func(s *Spec) { s.Material = "silver" }},
		{"unknown class", func(s *Spec) { s.Class = "heating" }},
		{"unknown method", func(s *Spec) { s.Method = "Z" }},
		{"ambient above range", func(s *Spec) { s.AmbientTemp = 70 }},
		{"ambient below range", func(s *Spec) { s.AmbientTemp = 5 }},
		{"zero grouped circuits", func(s *Spec) { s.Grouped = 0 }},
		{"insulation fraction above one", func(s *Spec) { s.InsulationFraction = 1.5 }},
		{"buried without resistivity", func(s *Spec) { s.Buried = true; s.SoilResistivity = 0 }},
		{"unknown earthing", func(s *Spec) { s.Earthing = "IT" }},
		{"negative fault level", func(s *Spec) { s.FaultLevel = -1 }},
		{"negative loop impedance", func(s *Spec) { s.EarthLoopImpedance = -0.5 }},
		{"NaN current", func(s *Spec) { s.DesignCurrent = math.NaN() }},
		{"infinite length", func(s *Spec) { s.Length = math.Inf(1) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := validSpec()
			tc.mutate(spec)
			err := spec.Validate()
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestNominalVoltage(t *testing.T) {
	spec := validSpec()
	assert.Equal(t, bs7671.VoltageSinglePhase, spec.NominalVoltage())
	spec.Phases = 3
	assert.Equal(t, bs7671.VoltageThreePhase, spec.NominalVoltage())
}
