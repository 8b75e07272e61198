package bs7671

// Derating factor step tables. Each lookup returns the rating factor Cg,
// Ca, Ci or Cs applied to the tabulated current-carrying capacity.

// groupingSteps maps number of grouped circuits to the grouping factor
// Cg (Table 4C1 basis). Non-increasing; counts beyond the last entry
// clamp to its factor.
var groupingSteps = []struct {
	circuits int
	factor   float64
}{
	{1, 1.00},
	{2, 0.80},
	{3, 0.70},
	{4, 0.65},
	{5, 0.60},
	{6, 0.57},
	{7, 0.54},
	{8, 0.52},
	{9, 0.50},
	{10, 0.48},
	{12, 0.45},
	{14, 0.43},
	{16, 0.41},
	{18, 0.39},
	{20, 0.38},
}

// GroupingFactor returns the factor for a number of grouped circuits.
// Zero or negative circuit counts are not tabulated.
func GroupingFactor(circuits int) (float64, error) {
	if circuits < 1 {
		return 0, lookupErrorf("no grouping factor for %d circuits", circuits)
	}
	factor := groupingSteps[len(groupingSteps)-1].factor
	for _, step := range groupingSteps {
		if circuits <= step.circuits {
			factor = step.factor
			break
		}
	}
	return factor, nil
}

// ambientBands maps ambient temperature to the correction factor Ca for
// 70°C thermoplastic insulation (Table 4B1 basis). Each band is the
// factor applied up to and including its upper temperature.
var ambientBands = []struct {
	upTo   float64 // °C
	factor float64
}{
	{30, 1.00},
	{35, 0.94},
	{40, 0.87},
	{45, 0.79},
	{50, 0.71},
	{55, 0.61},
	{60, 0.50},
}

const (
	// AmbientTempMin and AmbientTempMax bound the tabulated ambient
	// range for 70°C thermoplastic insulation. Above AmbientTempMax the
	// insulation rating is exceeded; the tables must not be extrapolated.
	AmbientTempMin = 10.0
	AmbientTempMax = 60.0
)

// AmbientFactor returns the ambient temperature correction factor.
// Temperatures outside the tabulated 10–60°C range are not defined for
// the 70°C insulation class.
func AmbientFactor(ambient float64) (float64, error) {
	if ambient < AmbientTempMin || ambient > AmbientTempMax {
		return 0, lookupErrorf("ambient temperature %.1f°C outside tabulated range %.0f–%.0f°C for 70°C insulation", ambient, AmbientTempMin, AmbientTempMax)
	}
	for _, band := range ambientBands {
		if ambient <= band.upTo {
			return band.factor, nil
		}
	}
	// Unreachable: the range guard above bounds ambient to the last band.
	return ambientBands[len(ambientBands)-1].factor, nil
}

// InsulationFactor returns the factor Ci for the fraction of the run
// enclosed in thermal insulation (Regulation 523.9 basis). Four tiers
// from unenclosed to fully surrounded.
func InsulationFactor(fraction float64) (float64, error) {
	if fraction < 0 || fraction > 1 {
		return 0, lookupErrorf("insulated length fraction %.2f outside [0,1]", fraction)
	}
	switch {
	case fraction == 0:
		return 1.00, nil
	case fraction <= 0.25:
		return 0.89, nil
	case fraction <= 0.75:
		return 0.68, nil
	default:
		return 0.50, nil
	}
}

// burialBands maps soil thermal resistivity in K·m/W to the correction
// factor Cs for buried cables (Table 4B3 basis). The tables assume
// 2.5 K·m/W; wetter soil conducts heat better and rates above unity.
var burialBands = []struct {
	upTo   float64 // K·m/W
	factor float64
}{
	{1.0, 1.18},
	{1.5, 1.10},
	{2.5, 1.00},
	{3.0, 0.96},
}

// BurialFactor returns the soil correction factor for a buried run.
// Resistivities beyond the last band clamp to the driest tabulated soil.
func BurialFactor(resistivity float64) (float64, error) {
	if resistivity <= 0 {
		return 0, lookupErrorf("no burial factor for soil resistivity %.2f K·m/W", resistivity)
	}
	for _, band := range burialBands {
		if resistivity <= band.upTo {
			return band.factor, nil
		}
	}
	return 0.90, nil
}
