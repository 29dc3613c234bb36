package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlareSeverity(t *testing.T) {
	cfg := DefaultModelConfig()

	tests := []struct {
		name      string
		classType string
		expected  float64
		malformed bool
	}{
		{"M1 reference", "M1.0", 1.0, false},
		{"M5", "M5.0", 5.0, false},
		{"X2.1", "X2.1", 21.0, false},
		{"X9", "X9.0", 90.0, false},
		{"C1", "C1.0", 0.1, false},
		{"B3", "B3.0", 0.03, false},
		{"A1", "A1.0", 0.001, false},
		{"bare letter", "X", 10.0, false},
		{"lowercase", "m2.0", 2.0, false},
		{"whitespace", " M1.5 ", 1.5, false},
		{"unknown letter", "Z1.0", 0, true},
		{"garbage coefficient", "Mfive", 0, true},
		{"negative coefficient", "M-2.0", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := SpaceWeatherEvent{EventType: EventFlare, ClassType: tt.classType}
			n, warning := Normalize(cfg, event)

			assert.InDelta(t, tt.expected, n.Severity, 1e-9)
			if tt.malformed {
				require.NotNil(t, warning)
				assert.Equal(t, EventFlare, warning.EventType)
			} else {
				assert.Nil(t, warning)
			}
		})
	}
}

func TestCMESeverity(t *testing.T) {
	cfg := DefaultModelConfig()

	tests := []struct {
		name      string
		speed     float64
		expected  float64
		malformed bool
	}{
		{"quiescent", 350, 0, false},
		{"exactly at floor", 400, 0, false},
		{"above floor", 500, 1.0, false},
		{"fast", 1400, 10.0, false},
		{"at ceiling", 3000, 26.0, false},
		{"capped outlier", 9000, 26.0, false},
		{"zero speed", 0, 0, false},
		{"negative speed", -5, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := SpaceWeatherEvent{EventType: EventCME, Speed: tt.speed}
			n, warning := Normalize(cfg, event)

			assert.InDelta(t, tt.expected, n.Severity, 1e-9)
			if tt.malformed {
				require.NotNil(t, warning)
			} else {
				assert.Nil(t, warning)
			}
		})
	}
}

func TestStormSeverity(t *testing.T) {
	cfg := DefaultModelConfig()

	tests := []struct {
		name      string
		kp        float64
		expected  float64
		malformed bool
	}{
		{"quiet", 0, 0, false},
		{"moderate", 4, 20.0, false},
		{"severe", 8, 40.0, false},
		{"maximum", 9, 45.0, false},
		{"above scale", 9.5, 0, true},
		{"negative", -1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := SpaceWeatherEvent{EventType: EventGeomagneticStorm, KpIndex: tt.kp}
			n, warning := Normalize(cfg, event)

			assert.InDelta(t, tt.expected, n.Severity, 1e-9)
			if tt.malformed {
				require.NotNil(t, warning)
			} else {
				assert.Nil(t, warning)
			}
		})
	}
}

func TestNormalizeUnknownEventType(t *testing.T) {
	cfg := DefaultModelConfig()
	n, warning := Normalize(cfg, SpaceWeatherEvent{EventType: "solar_wind"})

	assert.Zero(t, n.Severity)
	require.NotNil(t, warning)
	assert.Contains(t, warning.Reason, "unrecognized event type")
}

func TestNormalizeIsPure(t *testing.T) {
	cfg := DefaultModelConfig()
	event := SpaceWeatherEvent{
		ID:        "flare-abc",
		EventType: EventFlare,
		Timestamp: time.Date(2025, 6, 25, 10, 0, 0, 0, time.UTC),
		ClassType: "X3.0",
	}

	first, _ := Normalize(cfg, event)
	second, _ := Normalize(cfg, event)

	assert.Equal(t, first, second)
	assert.Equal(t, event, first.Event, "input event must not be mutated")
}

func TestNormalizeAll(t *testing.T) {
	cfg := DefaultModelConfig()
	events := []SpaceWeatherEvent{
		{ID: "flare-1", EventType: EventFlare, ClassType: "M2.0"},
		{ID: "flare-2", EventType: EventFlare, ClassType: "Z1.0"},
		{ID: "gst-1", EventType: EventGeomagneticStorm, KpIndex: 5},
	}

	normalized, warnings := NormalizeAll(cfg, events)

	require.Len(t, normalized, 3, "malformed records stay in the list at severity 0")
	assert.InDelta(t, 2.0, normalized[0].Severity, 1e-9)
	assert.Zero(t, normalized[1].Severity)
	assert.InDelta(t, 25.0, normalized[2].Severity, 1e-9)

	require.Len(t, warnings, 1)
	assert.Equal(t, "flare-2", warnings[0].EventID)
	assert.Contains(t, warnings[0].Reason, "Z1.0")
}
