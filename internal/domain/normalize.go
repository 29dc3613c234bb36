package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// flareLetterExponent orders the X-ray class letters; each step up is a
// tenfold flux increase. Exponents are relative to M so that with
// FlareScale 1.0 an M1.0 flare normalizes to severity 1.0.
var flareLetterExponent = map[byte]int{
	'A': -3,
	'B': -2,
	'C': -1,
	'M': 0,
	'X': 1,
}

// Normalize converts one raw event into a severity-scored event. Severity is
// a pure function of the magnitude: deterministic, no I/O, never fails. A
// malformed magnitude yields severity 0 and a non-nil warning so one bad
// record cannot void the assessment.
func Normalize(cfg ModelConfig, event SpaceWeatherEvent) (NormalizedEvent, *Warning) {
	var (
		severity float64
		reason   string
	)

	switch event.EventType {
	case EventFlare:
		severity, reason = flareSeverity(cfg, event.ClassType)
	case EventCME:
		severity, reason = cmeSeverity(cfg, event.Speed)
	case EventGeomagneticStorm:
		severity, reason = stormSeverity(cfg, event.KpIndex)
	default:
		reason = fmt.Sprintf("unrecognized event type %q", event.EventType)
	}

	normalized := NormalizedEvent{Event: event, Severity: severity}
	if reason == "" {
		return normalized, nil
	}
	return normalized, &Warning{
		EventID:   event.ID,
		EventType: event.EventType,
		Reason:    reason,
	}
}

// NormalizeAll normalizes a batch, accumulating warnings for malformed
// records. Input order is preserved.
func NormalizeAll(cfg ModelConfig, events []SpaceWeatherEvent) ([]NormalizedEvent, []Warning) {
	normalized := make([]NormalizedEvent, 0, len(events))
	var warnings []Warning
	for _, event := range events {
		n, w := Normalize(cfg, event)
		normalized = append(normalized, n)
		if w != nil {
			warnings = append(warnings, *w)
		}
	}
	return normalized, warnings
}

// flareSeverity parses a flare class like "M5.0" into letter base ×
// coefficient. A bare letter ("X") means coefficient 1.0, matching DONKI
// notifications that omit it.
func flareSeverity(cfg ModelConfig, classType string) (float64, string) {
	classType = strings.TrimSpace(strings.ToUpper(classType))
	if classType == "" {
		return 0, "empty flare class"
	}

	exponent, ok := flareLetterExponent[classType[0]]
	if !ok {
		return 0, fmt.Sprintf("unparseable flare class %q", classType)
	}

	coefficient := 1.0
	if rest := classType[1:]; rest != "" {
		v, err := strconv.ParseFloat(rest, 64)
		if err != nil || v < 0 {
			return 0, fmt.Sprintf("unparseable flare class %q", classType)
		}
		coefficient = v
	}

	return math.Pow(10, float64(exponent)) * coefficient * cfg.FlareScale, ""
}

// cmeSeverity scales speed linearly above the quiescent floor. Sub-floor
// speeds are valid quiet-sun observations, not malformed records; they score
// zero without a warning. Speeds above the ceiling are capped to bound
// outlier analyses.
func cmeSeverity(cfg ModelConfig, speed float64) (float64, string) {
	if speed < 0 || math.IsNaN(speed) {
		return 0, fmt.Sprintf("invalid CME speed %g km/s", speed)
	}
	if speed <= cfg.CMESpeedFloor {
		return 0, ""
	}
	if speed > cfg.CMESpeedCeiling {
		speed = cfg.CMESpeedCeiling
	}
	return (speed - cfg.CMESpeedFloor) / cfg.CMESpeedStep, ""
}

// stormSeverity rescales the bounded 0-9 Kp index for cross-type
// comparability. Out-of-range readings are malformed.
func stormSeverity(cfg ModelConfig, kp float64) (float64, string) {
	if kp < 0 || kp > 9 || math.IsNaN(kp) {
		return 0, fmt.Sprintf("Kp index %g outside the 0-9 scale", kp)
	}
	return kp * cfg.KpScale, ""
}
