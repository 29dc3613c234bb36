package domain

import "math"

// Compose combines per-type aggregates with the mission modifiers into the
// pre-clamp risk value. The environmental score is the quiet baseline plus
// the weighted per-type aggregates; orbit exposure, shielding attenuation,
// and the sub-linear duration factor all scale it multiplicatively:
//
//	raw = (baseline + Σ weight_t × score_t) × orbit × shielding × duration
//
// Clamping happens in the facade so intermediate values stay available for
// diagnostics. Returns the modifiers actually applied for the breakdown.
func Compose(cfg ModelConfig, aggregates map[EventType]AggregateSeverity, mission MissionParameters) (float64, Modifiers) {
	environmental := cfg.Baseline
	for _, t := range EventTypes {
		environmental += cfg.weightFor(t) * aggregates[t].Score
	}

	mods := Modifiers{
		OrbitMultiplier: cfg.OrbitMultipliers[mission.Orbit],
		ShieldingFactor: cfg.ShieldingFactors[mission.Shielding],
		DurationDays:    mission.DurationDays(),
		Baseline:        cfg.Baseline,
	}
	mods.DurationFactor = durationFactor(cfg, mods.DurationDays)

	return environmental * mods.OrbitMultiplier * mods.ShieldingFactor * mods.DurationFactor, mods
}

// durationFactor grows monotonically but sub-linearly with mission length:
// each additional day adds exposure with diminishing marginal risk. 1.0 at
// the reference mission length.
func durationFactor(cfg ModelConfig, days float64) float64 {
	if days <= 0 || cfg.ReferenceDays <= 0 {
		return 0
	}
	return math.Sqrt(days / cfg.ReferenceDays)
}
