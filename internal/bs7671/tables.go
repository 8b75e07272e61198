package bs7671

import "fmt"

// LookupError reports a request for a size/material/method combination
// absent from the tables. A missing key is never silently defaulted;
// the two explicit degraded fallbacks live in the sizing and protection
// packages, not here.
type LookupError struct {
	msg string
}

func (e *LookupError) Error() string {
	return e.msg
}

func lookupErrorf(format string, args ...any) *LookupError {
	return &LookupError{msg: fmt.Sprintf(format, args...)}
}

// standardSizes is the standard conductor cross-section ladder in mm²,
// ascending (BS EN 60228).
var standardSizes = []float64{
	1, 1.5, 2.5, 4, 6, 10, 16, 25, 35, 50, 70, 95, 120, 150, 185, 240, 300,
}

// StandardSizes returns the conductor size ladder in ascending order.
func StandardSizes() []float64 {
	out := make([]float64, len(standardSizes))
	copy(out, standardSizes)
	return out
}

// currentCapacity tabulates current-carrying capacity in amperes by
// installation method and conductor size, for 70°C thermoplastic
// insulated copper conductors (Table 4D2A basis).
var currentCapacity = map[InstallMethod]map[float64]float64{
	MethodA: {
		1: 11, 1.5: 13.5, 2.5: 18.5, 4: 25, 6: 32, 10: 43, 16: 57,
		25: 75, 35: 92, 50: 110, 70: 139, 95: 167, 120: 192, 150: 219,
		185: 248, 240: 291, 300: 334,
	},
	MethodB: {
		1: 13, 1.5: 16.5, 2.5: 23, 4: 30, 6: 38, 10: 52, 16: 69,
		25: 90, 35: 111, 50: 133, 70: 168, 95: 201, 120: 232, 150: 258,
		185: 294, 240: 344, 300: 394,
	},
	MethodC: {
		1: 15, 1.5: 19.5, 2.5: 27, 4: 36, 6: 46, 10: 63, 16: 85,
		25: 112, 35: 138, 50: 168, 70: 213, 95: 258, 120: 299, 150: 344,
		185: 392, 240: 461, 300: 530,
	},
	MethodD: {
		1: 17.5, 1.5: 22, 2.5: 29, 4: 37, 6: 46, 10: 60, 16: 78,
		25: 99, 35: 119, 50: 140, 70: 173, 95: 204, 120: 231, 150: 261,
		185: 292, 240: 336, 300: 379,
	},
	MethodE: {
		1: 17, 1.5: 22, 2.5: 30, 4: 40, 6: 51, 10: 70, 16: 94,
		25: 119, 35: 148, 50: 180, 70: 232, 95: 282, 120: 328, 150: 379,
		185: 434, 240: 514, 300: 593,
	},
}

// CapacityFor returns the tabulated (underated) current-carrying capacity
// in amperes for a conductor size and installation method.
func CapacityFor(size float64, method InstallMethod) (float64, error) {
	col, ok := currentCapacity[method]
	if !ok {
		return 0, lookupErrorf("no capacity table for installation method %q", method)
	}
	capacity, ok := col[size]
	if !ok {
		return 0, lookupErrorf("no capacity entry for %.1f mm² under method %s", size, method)
	}
	return capacity, nil
}

// KnownMethod reports whether an installation method is tabulated.
func KnownMethod(method InstallMethod) bool {
	_, ok := currentCapacity[method]
	return ok
}

// resistance20 tabulates conductor resistance in mΩ/m at 20°C
// (BS EN 60228 class 1/2 values). Aluminium is manufactured from
// 16 mm² upward; smaller aluminium sizes are deliberately absent.
var resistance20 = map[Material]map[float64]float64{
	MaterialCopper: {
		1: 18.1, 1.5: 12.1, 2.5: 7.41, 4: 4.61, 6: 3.08, 10: 1.83,
		16: 1.15, 25: 0.727, 35: 0.524, 50: 0.387, 70: 0.268, 95: 0.193,
		120: 0.153, 150: 0.124, 185: 0.0991, 240: 0.0754, 300: 0.0601,
	},
	MaterialAluminium: {
		16: 1.91, 25: 1.20, 35: 0.868, 50: 0.641, 70: 0.443, 95: 0.320,
		120: 0.253, 150: 0.206, 185: 0.164, 240: 0.125, 300: 0.100,
	},
}

// Impedance is a per-metre conductor impedance in mΩ/m.
type Impedance struct {
	Resistance float64 // mΩ/m at 20°C
	Reactance  float64 // mΩ/m, derived via DefaultReactanceRatio
}

// ResistancePerMetre returns the tabulated conductor resistance in mΩ/m
// at the 20°C reference temperature.
func ResistancePerMetre(size float64, material Material) (float64, error) {
	col, ok := resistance20[material]
	if !ok {
		return 0, lookupErrorf("no impedance table for material %q", material)
	}
	r, ok := col[size]
	if !ok {
		return 0, lookupErrorf("no impedance entry for %.1f mm² %s", size, material)
	}
	return r, nil
}

// ImpedanceFor returns the per-metre impedance for a size and material,
// with reactance at the default fixed fraction of resistance.
func ImpedanceFor(size float64, material Material) (Impedance, error) {
	r, err := ResistancePerMetre(size, material)
	if err != nil {
		return Impedance{}, err
	}
	return Impedance{Resistance: r, Reactance: r * DefaultReactanceRatio}, nil
}

// SizesFor returns the portion of the size ladder tabulated for a
// material, ascending. Copper covers the full ladder; aluminium starts
// at 16 mm².
func SizesFor(material Material) ([]float64, error) {
	col, ok := resistance20[material]
	if !ok {
		return nil, lookupErrorf("no impedance table for material %q", material)
	}
	out := make([]float64, 0, len(standardSizes))
	for _, size := range standardSizes {
		if _, tabulated := col[size]; tabulated {
			out = append(out, size)
		}
	}
	return out, nil
}

// deviceRatings is the standard circuit-breaker rating ladder in amperes
// (BS EN 60898), ascending.
var deviceRatings = []float64{6, 10, 16, 20, 25, 32, 40, 50, 63, 80, 100, 125}

// StandardDeviceRatings returns the protective-device rating ladder in
// ascending order.
func StandardDeviceRatings() []float64 {
	out := make([]float64, len(deviceRatings))
	copy(out, deviceRatings)
	return out
}

// breakingTiers is the standard rated breaking capacity ladder in kA,
// ascending.
var breakingTiers = []float64{6, 10, 15, 25, 36, 50}

// BreakingCapacityTiers returns the breaking-capacity ladder in kA,
// ascending.
func BreakingCapacityTiers() []float64 {
	out := make([]float64, len(breakingTiers))
	copy(out, breakingTiers)
	return out
}

// voltageDropLimits gives the maximum permitted voltage drop as a
// percentage of nominal supply voltage per circuit class (Appendix 4,
// Table 4Ab: 3% lighting, 5% other uses).
var voltageDropLimits = map[CircuitClass]float64{
	ClassLighting: 3,
	ClassPower:    5,
	ClassMotor:    5,
}

// MaxVoltageDropPercent returns the permitted voltage drop percentage
// for a circuit class.
func MaxVoltageDropPercent(class CircuitClass) (float64, error) {
	limit, ok := voltageDropLimits[class]
	if !ok {
		return 0, lookupErrorf("no voltage drop limit for circuit class %q", class)
	}
	return limit, nil
}

// KnownClass reports whether a circuit class is tabulated.
func KnownClass(class CircuitClass) bool {
	_, ok := voltageDropLimits[class]
	return ok
}

// tripMultiples gives the instantaneous trip threshold as a multiple of
// rated current per curve (upper bound of the BS EN 60898 band, the
// value that governs maximum Zs).
var tripMultiples = map[Curve]float64{
	CurveB: 5,
	CurveC: 10,
	CurveD: 20,
}

// TripMultiple returns the instantaneous trip multiple for a curve.
func TripMultiple(curve Curve) (float64, error) {
	m, ok := tripMultiples[curve]
	if !ok {
		return 0, lookupErrorf("no trip multiple for curve %q", curve)
	}
	return m, nil
}

// MaxEarthLoopImpedance returns the maximum earth fault loop impedance
// in ohms for a device rating and curve at the given nominal voltage to
// earth, such that the device trips instantaneously within the 0.4 s
// disconnection bound (Table 41.3 basis: Zs = U0 / (k × In)).
func MaxEarthLoopImpedance(rating float64, curve Curve, voltage float64) (float64, error) {
	if rating <= 0 {
		return 0, lookupErrorf("no maximum Zs for device rating %.1f A", rating)
	}
	if voltage <= 0 {
		return 0, lookupErrorf("no maximum Zs for nominal voltage %.1f V", voltage)
	}
	multiple, err := TripMultiple(curve)
	if err != nil {
		return 0, err
	}
	return voltage / (multiple * rating), nil
}
