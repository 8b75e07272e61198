package bs7671

// BS 7671 (IET Wiring Regulations) reference constants.
//
// All tabulated data in this package encodes the edition named below.
// Downstream calculators depend on these exact values; they are code
// constants, not configuration.

// Edition is the regulation edition the tables in this package encode.
const Edition = "BS 7671:2018+A2:2022"

const (
	// Nominal supply voltages (Regulation 110 / Appendix 2)
	VoltageSinglePhase = 230.0 // V, line to neutral
	VoltageThreePhase  = 400.0 // V, line to line

	// Conductor thermal model (Appendix 4, 70°C thermoplastic insulation)
	ConductorOperatingTemp = 70.0  // °C, maximum conductor operating temperature
	ReferenceTemp          = 20.0  // °C, temperature of tabulated resistance
	TempCoefficient        = 0.004 // per °C, linear resistance correction above 20°C

	// DefaultReactanceRatio is the simplified reactance model: X is taken
	// as a fixed fraction of the effective resistance. Real per-size
	// reactance tables exist in Appendix 4; callers that need them can
	// override the ratio on the voltage-drop model.
	DefaultReactanceRatio = 0.08

	// MaxOverallDerating bounds the combined rating factor. Only the
	// buried-in-wet-soil factor may exceed unity (Table 4B3).
	MaxOverallDerating = 1.18

	// DisconnectionTime is the fault disconnection bound assumed by the
	// maximum earth-loop-impedance figures (Regulation 411.3.2.2).
	DisconnectionTime = 0.4 // s
)

// Conductor material of a cable.
type Material string

const (
	MaterialCopper    Material = "copper"
	MaterialAluminium Material = "aluminium"
)

// InstallMethod is a reference installation method from Table 4A2.
type InstallMethod string

const (
	MethodA InstallMethod = "A" // enclosed in conduit in a thermally insulated wall
	MethodB InstallMethod = "B" // enclosed in conduit or trunking on a wall
	MethodC InstallMethod = "C" // clipped direct
	MethodD InstallMethod = "D" // buried direct in ground
	MethodE InstallMethod = "E" // free air / perforated cable tray
)

// CircuitClass determines the permitted voltage drop (Appendix 4, Table 4Ab).
type CircuitClass string

const (
	ClassLighting CircuitClass = "lighting"
	ClassPower    CircuitClass = "power"
	ClassMotor    CircuitClass = "motor"
)

// Curve is a circuit-breaker time-current characteristic (BS EN 60898).
type Curve string

const (
	CurveB Curve = "B" // trips at 3–5 × In; final lighting circuits
	CurveC Curve = "C" // trips at 5–10 × In; general purpose
	CurveD Curve = "D" // trips at 10–20 × In; motors and high-inrush loads
)
