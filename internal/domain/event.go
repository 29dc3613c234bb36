package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// EventType identifies the kind of space-weather notification.
type EventType string

const (
	EventFlare            EventType = "flare"
	EventCME              EventType = "cme"
	EventGeomagneticStorm EventType = "geomagnetic_storm"
)

// EventTypes lists all known event types in a fixed order, used when building
// per-type aggregates so results are stable regardless of input ordering.
var EventTypes = []EventType{EventFlare, EventCME, EventGeomagneticStorm}

// SpaceWeatherEvent is one observed event as delivered by the feed adapter.
// Exactly one magnitude field is meaningful per event type: ClassType for
// flares, Speed for CMEs, KpIndex for geomagnetic storms. Events are
// immutable and read-only to the engine.
type SpaceWeatherEvent struct {
	ID        string    `json:"id"`
	EventType EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	ClassType string  `json:"class_type,omitempty"` // flare X-ray class, e.g. "X2.1"
	Speed     float64 `json:"speed,omitempty"`      // CME plane-of-sky speed in km/s
	KpIndex   float64 `json:"kp_index,omitempty"`   // planetary Kp index, 0-9
}

// Magnitude returns the raw magnitude as a display string for logs and warnings.
func (e SpaceWeatherEvent) Magnitude() string {
	switch e.EventType {
	case EventFlare:
		return e.ClassType
	case EventCME:
		return fmt.Sprintf("%g km/s", e.Speed)
	case EventGeomagneticStorm:
		return fmt.Sprintf("Kp %g", e.KpIndex)
	default:
		return ""
	}
}

// NormalizedEvent carries an event together with its unit-less severity score.
// Severity is a pure function of the event's magnitude; comparable across
// events of the same type, cross-type only after aggregation.
type NormalizedEvent struct {
	Event    SpaceWeatherEvent `json:"event"`
	Severity float64           `json:"severity"`
}

// Warning records a malformed event that was normalized to zero severity
// instead of aborting the assessment.
type Warning struct {
	EventID   string    `json:"event_id"`
	EventType EventType `json:"event_type"`
	Reason    string    `json:"reason"`
}

// AggregateSeverity summarizes all qualifying events of one type inside the
// mission window. Score is monotonically non-decreasing in any contributing
// event's severity. PeakEvent references the single highest-severity
// contributor for explainability; nil when the group is empty.
type AggregateSeverity struct {
	EventType         EventType          `json:"event_type"`
	Score             float64            `json:"score"`
	ContributingCount int                `json:"contributing_count"`
	PeakEvent         *SpaceWeatherEvent `json:"peak_event,omitempty"`
}

// Modifiers records the mission factors actually applied during composition,
// kept in the breakdown for auditability.
type Modifiers struct {
	OrbitMultiplier float64 `json:"orbit_multiplier"`
	ShieldingFactor float64 `json:"shielding_factor"`
	DurationFactor  float64 `json:"duration_factor"`
	DurationDays    float64 `json:"duration_days"`
	Baseline        float64 `json:"baseline"`
}

// Breakdown explains how the percentage was produced.
type Breakdown struct {
	Aggregates map[EventType]AggregateSeverity `json:"aggregates"`
	Modifiers  Modifiers                       `json:"modifiers"`
	RawScore   float64                         `json:"raw_score"` // pre-clamp composer output
}

// RiskResult is the final assessment output. Created fresh per call, never
// mutated, safe to serialize for downstream report and visualization
// consumers.
type RiskResult struct {
	Percentage  float64           `json:"percentage"` // clamped to [0,100]
	Category    Category          `json:"category"`
	Breakdown   Breakdown         `json:"breakdown"`
	Events      []NormalizedEvent `json:"events"` // window-filtered, sorted by timestamp
	Warnings    []Warning         `json:"warnings,omitempty"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// NewEventID produces a deterministic ID from an event's key fields.
// Reprocessing the same notification yields the same ID, so repeated
// assessments over a replayed feed stay byte-identical.
func NewEventID(eventType EventType, timestamp time.Time, magnitude string) string {
	input := fmt.Sprintf("%s|%s|%s", eventType, timestamp.UTC().Format(time.RFC3339), magnitude)
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	if eventType == "" {
		return short
	}
	return string(eventType) + "-" + short
}
