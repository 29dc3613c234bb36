package domain

import (
	"fmt"
	"strings"
	"time"
)

// OrbitType enumerates supported mission orbits. Each carries a fixed
// exposure multiplier reflecting how much natural magnetospheric and
// atmospheric shielding the orbit loses; see ModelConfig.OrbitMultipliers.
type OrbitType string

const (
	OrbitLEO       OrbitType = "LEO"
	OrbitGEO       OrbitType = "GEO"
	OrbitLunar     OrbitType = "LUNAR"
	OrbitDeepSpace OrbitType = "DEEP_SPACE"
)

// ShieldingLevel enumerates spacecraft shielding configurations. Each carries
// a fixed attenuation factor in (0,1]; 1.0 means no shielding benefit.
type ShieldingLevel string

const (
	ShieldingNone     ShieldingLevel = "NONE"
	ShieldingLight    ShieldingLevel = "LIGHT"
	ShieldingModerate ShieldingLevel = "MODERATE"
	ShieldingHeavy    ShieldingLevel = "HEAVY"
)

// ParseOrbitType converts a user-supplied string to an OrbitType,
// case-insensitively. Unknown values are an invalid-mission condition.
func ParseOrbitType(s string) (OrbitType, error) {
	switch OrbitType(strings.ToUpper(strings.TrimSpace(s))) {
	case OrbitLEO:
		return OrbitLEO, nil
	case OrbitGEO:
		return OrbitGEO, nil
	case OrbitLunar:
		return OrbitLunar, nil
	case OrbitDeepSpace:
		return OrbitDeepSpace, nil
	default:
		return "", &InvalidMissionError{Field: "orbit_type", Detail: fmt.Sprintf("unrecognized orbit type %q (expected LEO, GEO, LUNAR, or DEEP_SPACE)", s)}
	}
}

// ParseShieldingLevel converts a user-supplied string to a ShieldingLevel,
// case-insensitively.
func ParseShieldingLevel(s string) (ShieldingLevel, error) {
	switch ShieldingLevel(strings.ToUpper(strings.TrimSpace(s))) {
	case ShieldingNone:
		return ShieldingNone, nil
	case ShieldingLight:
		return ShieldingLight, nil
	case ShieldingModerate:
		return ShieldingModerate, nil
	case ShieldingHeavy:
		return ShieldingHeavy, nil
	default:
		return "", &InvalidMissionError{Field: "shielding_level", Detail: fmt.Sprintf("unrecognized shielding level %q (expected NONE, LIGHT, MODERATE, or HEAVY)", s)}
	}
}

// DateRange is a half-open-tolerant time window; both endpoints inclusive.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the range, endpoints included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Expand widens the range by margin on both sides.
func (r DateRange) Expand(margin time.Duration) DateRange {
	return DateRange{Start: r.Start.Add(-margin), End: r.End.Add(margin)}
}

// MissionParameters describes one assessment request. Immutable once built.
type MissionParameters struct {
	StartDate time.Time      `json:"start_date"`
	EndDate   time.Time      `json:"end_date"`
	Orbit     OrbitType      `json:"orbit_type"`
	Shielding ShieldingLevel `json:"shielding_level"`
}

// Validate checks the fatal parameter conditions: an inverted date range or
// an unrecognized orbit/shielding value. Silent defaulting would misrepresent
// risk, so these abort the assessment.
func (m MissionParameters) Validate() error {
	if m.StartDate.IsZero() || m.EndDate.IsZero() {
		return &InvalidMissionError{Field: "dates", Detail: "start and end dates are required"}
	}
	if m.EndDate.Before(m.StartDate) {
		return &InvalidMissionError{
			Field:  "dates",
			Detail: fmt.Sprintf("end date %s is before start date %s", m.EndDate.Format(time.RFC3339), m.StartDate.Format(time.RFC3339)),
		}
	}
	if _, err := ParseOrbitType(string(m.Orbit)); err != nil {
		return err
	}
	if _, err := ParseShieldingLevel(string(m.Shielding)); err != nil {
		return err
	}
	return nil
}

// Window returns the mission date range.
func (m MissionParameters) Window() DateRange {
	return DateRange{Start: m.StartDate, End: m.EndDate}
}

// DurationDays returns the mission length in (fractional) days.
func (m MissionParameters) DurationDays() float64 {
	return m.EndDate.Sub(m.StartDate).Hours() / 24
}
