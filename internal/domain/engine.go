package domain

// Engine is the risk assessment facade: normalize → aggregate → compose →
// clamp → categorize in one synchronous call. It holds no mutable state
// beyond its configuration, builds every data structure fresh per call, and
// is safe for concurrent use.
type Engine struct {
	cfg ModelConfig
}

// NewEngine creates an engine with the given calibration.
func NewEngine(cfg ModelConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the calibration in use.
func (e *Engine) Config() ModelConfig {
	return e.cfg
}

// Assess runs the full pipeline for one mission over an already-materialized
// event list. An empty list is valid: the result degrades to the
// environment-baseline risk driven by orbit, shielding, and duration alone.
// Invalid mission parameters fail fast; malformed events are normalized to
// zero severity and reported in the result's warnings. Inputs are never
// mutated.
func (e *Engine) Assess(mission MissionParameters, events []SpaceWeatherEvent) (RiskResult, error) {
	if err := mission.Validate(); err != nil {
		return RiskResult{}, err
	}

	normalized, warnings := NormalizeAll(e.cfg, events)
	window := mission.Window()
	aggregates := Aggregate(e.cfg, normalized, window)
	raw, mods := Compose(e.cfg, aggregates, mission)

	// A mission can be maximally at risk but never negatively so.
	percentage := raw
	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}

	category, err := Categorize(e.cfg.Thresholds, percentage)
	if err != nil {
		return RiskResult{}, err
	}

	return RiskResult{
		Percentage: percentage,
		Category:   category,
		Breakdown: Breakdown{
			Aggregates: aggregates,
			Modifiers:  mods,
			RawScore:   raw,
		},
		Events:      FilterWindow(e.cfg, normalized, window),
		Warnings:    warnings,
		GeneratedAt: clock.Now().UTC(),
	}, nil
}
