package domain

import "time"

// Category thresholds partition [0,100] into four contiguous bands,
// closed-below open-above: LOW [0,25), MODERATE [25,50), HIGH [50,75),
// EXTREME [75,100]. Exported so report and UI collaborators render
// consistent color-coding.
const (
	DefaultModerateThreshold = 25.0
	DefaultHighThreshold     = 50.0
	DefaultExtremeThreshold  = 75.0
)

// CategoryThresholds holds the lower bounds of the MODERATE, HIGH, and
// EXTREME bands.
type CategoryThresholds struct {
	Moderate float64 `json:"moderate"`
	High     float64 `json:"high"`
	Extreme  float64 `json:"extreme"`
}

// ModelConfig carries every tunable constant of the risk model. The defaults
// below are calibration values, not physics; they are loaded once at startup
// and passed by reference into the pipeline so recalibration never requires a
// code change.
type ModelConfig struct {
	// FlareScale multiplies flare severities. 1.0 pins M1.0 at severity 1.0
	// on the tenfold-per-letter ladder (X9.0 → 90).
	FlareScale float64

	// CME speeds at or below the floor (km/s) score zero; above it, severity
	// rises by one point per SpeedStep km/s, capped at the ceiling.
	CMESpeedFloor   float64
	CMESpeedCeiling float64
	CMESpeedStep    float64

	// KpScale rescales the 0-9 Kp index into the numeric range of the other
	// two event types.
	KpScale float64

	// WindowMargin expands the mission window on both sides; events shortly
	// before launch or after return still carry residual risk.
	WindowMargin time.Duration

	// SecondaryWeight is the weight applied to non-peak severities in the
	// per-type reduction: score = max + SecondaryWeight × sum(others).
	SecondaryWeight float64

	// Baseline is the quiet-environment score present even with no events.
	Baseline float64

	// Per-type hazard weights. Storms and flares are weighted above CMEs:
	// particle and geomagnetic effects dominate crew dose relative to the
	// mostly equipment-facing CME disturbance.
	FlareWeight float64
	CMEWeight   float64
	StormWeight float64

	// Orbit exposure multipliers and shielding attenuation factors.
	OrbitMultipliers map[OrbitType]float64
	ShieldingFactors map[ShieldingLevel]float64

	// ReferenceDays anchors the sub-linear duration factor:
	// factor = sqrt(days / ReferenceDays), 1.0 at the reference mission.
	ReferenceDays float64

	Thresholds CategoryThresholds
}

// DefaultModelConfig returns the shipped calibration.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		FlareScale:      1.0,
		CMESpeedFloor:   400,
		CMESpeedCeiling: 3000,
		CMESpeedStep:    100,
		KpScale:         5.0,
		WindowMargin:    72 * time.Hour,
		SecondaryWeight: 0.1,
		Baseline:        10.0,
		FlareWeight:     0.5,
		CMEWeight:       0.3,
		StormWeight:     0.6,
		OrbitMultipliers: map[OrbitType]float64{
			OrbitLEO:       1.0,
			OrbitGEO:       1.3,
			OrbitLunar:     1.6,
			OrbitDeepSpace: 2.0,
		},
		ShieldingFactors: map[ShieldingLevel]float64{
			ShieldingNone:     1.0,
			ShieldingLight:    0.8,
			ShieldingModerate: 0.6,
			ShieldingHeavy:    0.4,
		},
		ReferenceDays: 30,
		Thresholds: CategoryThresholds{
			Moderate: DefaultModerateThreshold,
			High:     DefaultHighThreshold,
			Extreme:  DefaultExtremeThreshold,
		},
	}
}

// weightFor returns the hazard weight for an event type.
func (c ModelConfig) weightFor(t EventType) float64 {
	switch t {
	case EventFlare:
		return c.FlareWeight
	case EventCME:
		return c.CMEWeight
	case EventGeomagneticStorm:
		return c.StormWeight
	default:
		return 0
	}
}
