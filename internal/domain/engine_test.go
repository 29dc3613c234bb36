package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frozenClock(t *testing.T) {
	t.Helper()
	SetClock(clockwork.NewFakeClockAt(time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { SetClock(nil) })
}

func missionOver(days int, orbit OrbitType, shielding ShieldingLevel) MissionParameters {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return MissionParameters{
		StartDate: start,
		EndDate:   start.AddDate(0, 0, days),
		Orbit:     orbit,
		Shielding: shielding,
	}
}

func midWindow(m MissionParameters) time.Time {
	return m.StartDate.Add(m.EndDate.Sub(m.StartDate) / 2)
}

func TestAssessEmptyEventList(t *testing.T) {
	frozenClock(t)
	engine := NewEngine(DefaultModelConfig())
	mission := missionOver(30, OrbitLEO, ShieldingNone)

	result, err := engine.Assess(mission, nil)
	require.NoError(t, err)

	// Baseline-only: 10 × 1.0 × 1.0 × sqrt(30/30).
	assert.InDelta(t, 10.0, result.Percentage, 1e-9)
	assert.Equal(t, CategoryLow, result.Category)
	assert.Empty(t, result.Events)
	assert.Empty(t, result.Warnings)
	for _, agg := range result.Breakdown.Aggregates {
		assert.Zero(t, agg.Score)
	}
}

func TestAssessMildFlareHeavyShielding(t *testing.T) {
	frozenClock(t)
	engine := NewEngine(DefaultModelConfig())
	mission := missionOver(10, OrbitLEO, ShieldingHeavy)

	events := []SpaceWeatherEvent{
		{ID: "flare-1", EventType: EventFlare, Timestamp: midWindow(mission), ClassType: "M1.0"},
	}

	result, err := engine.Assess(mission, events)
	require.NoError(t, err)

	// Baseline plus a mild flare, heavily attenuated: well inside LOW.
	assert.Equal(t, CategoryLow, result.Category)
	assert.InDelta(t, 2.4249, result.Percentage, 0.001)
	assert.Equal(t, 1, result.Breakdown.Aggregates[EventFlare].ContributingCount)
}

func TestAssessDeepSpaceStormAndFlare(t *testing.T) {
	frozenClock(t)
	engine := NewEngine(DefaultModelConfig())
	mission := missionOver(180, OrbitDeepSpace, ShieldingNone)

	events := []SpaceWeatherEvent{
		{ID: "flare-1", EventType: EventFlare, Timestamp: midWindow(mission), ClassType: "X9.0"},
		{ID: "gst-1", EventType: EventGeomagneticStorm, Timestamp: midWindow(mission), KpIndex: 8},
	}

	result, err := engine.Assess(mission, events)
	require.NoError(t, err)

	assert.Equal(t, CategoryExtreme, result.Category)
	assert.InDelta(t, 100.0, result.Percentage, 1e-9, "clamped at the ceiling")
	assert.Greater(t, result.Breakdown.RawScore, 100.0, "pre-clamp value kept for diagnostics")
}

func TestAssessSubFloorCMEs(t *testing.T) {
	frozenClock(t)
	engine := NewEngine(DefaultModelConfig())
	mission := missionOver(30, OrbitLEO, ShieldingNone)

	events := []SpaceWeatherEvent{
		{ID: "cme-1", EventType: EventCME, Timestamp: midWindow(mission), Speed: 320},
		{ID: "cme-2", EventType: EventCME, Timestamp: midWindow(mission).Add(time.Hour), Speed: 290},
	}

	result, err := engine.Assess(mission, events)
	require.NoError(t, err)

	agg := result.Breakdown.Aggregates[EventCME]
	assert.Zero(t, agg.Score)
	assert.Equal(t, 2, agg.ContributingCount)
	assert.InDelta(t, 10.0, result.Percentage, 1e-9, "score unaffected by sub-floor CMEs")
}

func TestAssessMalformedEventWarns(t *testing.T) {
	frozenClock(t)
	engine := NewEngine(DefaultModelConfig())
	mission := missionOver(30, OrbitLEO, ShieldingNone)

	events := []SpaceWeatherEvent{
		{ID: "flare-bad", EventType: EventFlare, Timestamp: midWindow(mission), ClassType: "Z1.0"},
		{ID: "flare-good", EventType: EventFlare, Timestamp: midWindow(mission), ClassType: "C5.0"},
	}

	result, err := engine.Assess(mission, events)
	require.NoError(t, err, "one bad record must not void the assessment")

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "flare-bad", result.Warnings[0].EventID)
	assert.Equal(t, 2, result.Breakdown.Aggregates[EventFlare].ContributingCount)
	assert.InDelta(t, 0.5, result.Breakdown.Aggregates[EventFlare].Score, 1e-9)
}

func TestAssessMonotonicity(t *testing.T) {
	frozenClock(t)
	engine := NewEngine(DefaultModelConfig())
	mission := missionOver(30, OrbitGEO, ShieldingModerate)
	ts := midWindow(mission)

	weak := []SpaceWeatherEvent{{ID: "gst-1", EventType: EventGeomagneticStorm, Timestamp: ts, KpIndex: 4}}
	strong := []SpaceWeatherEvent{{ID: "gst-1", EventType: EventGeomagneticStorm, Timestamp: ts, KpIndex: 7}}

	weakResult, err := engine.Assess(mission, weak)
	require.NoError(t, err)
	strongResult, err := engine.Assess(mission, strong)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, strongResult.Percentage, weakResult.Percentage,
		"strengthening an event must never decrease the percentage")
}

func TestAssessPercentageAlwaysBounded(t *testing.T) {
	frozenClock(t)
	engine := NewEngine(DefaultModelConfig())
	mission := missionOver(3650, OrbitDeepSpace, ShieldingNone)

	events := []SpaceWeatherEvent{
		{ID: "flare-absurd", EventType: EventFlare, Timestamp: midWindow(mission), ClassType: "X999999"},
		{ID: "cme-absurd", EventType: EventCME, Timestamp: midWindow(mission), Speed: 1e12},
		{ID: "gst-max", EventType: EventGeomagneticStorm, Timestamp: midWindow(mission), KpIndex: 9},
	}

	result, err := engine.Assess(mission, events)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.Percentage, 0.0)
	assert.LessOrEqual(t, result.Percentage, 100.0)
}

func TestAssessIdempotent(t *testing.T) {
	frozenClock(t)
	engine := NewEngine(DefaultModelConfig())
	mission := missionOver(45, OrbitLunar, ShieldingLight)

	events := []SpaceWeatherEvent{
		{ID: "flare-1", EventType: EventFlare, Timestamp: midWindow(mission), ClassType: "M3.2"},
		{ID: "cme-1", EventType: EventCME, Timestamp: midWindow(mission).Add(6 * time.Hour), Speed: 850},
		{ID: "gst-1", EventType: EventGeomagneticStorm, Timestamp: midWindow(mission).Add(12 * time.Hour), KpIndex: 6},
	}

	first, err := engine.Assess(mission, events)
	require.NoError(t, err)
	second, err := engine.Assess(mission, events)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated assessment differs (-first +second):\n%s", diff)
	}

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON, "serialized results must be byte-identical")
}

func TestAssessInvalidMissionFailsFast(t *testing.T) {
	engine := NewEngine(DefaultModelConfig())
	mission := missionOver(30, OrbitLEO, ShieldingNone)
	mission.EndDate = mission.StartDate.AddDate(0, 0, -5)

	_, err := engine.Assess(mission, nil)

	var invalidErr *InvalidMissionError
	require.ErrorAs(t, err, &invalidErr)
}

func TestAssessDoesNotMutateInputs(t *testing.T) {
	frozenClock(t)
	engine := NewEngine(DefaultModelConfig())
	mission := missionOver(30, OrbitLEO, ShieldingNone)

	events := []SpaceWeatherEvent{
		{ID: "flare-1", EventType: EventFlare, Timestamp: midWindow(mission), ClassType: "M1.0"},
	}
	snapshot := make([]SpaceWeatherEvent, len(events))
	copy(snapshot, events)

	_, err := engine.Assess(mission, events)
	require.NoError(t, err)

	assert.Equal(t, snapshot, events)
}
