package donki

import (
	"fmt"
	"strings"
	"time"

	"github.com/astromedai/mission-risk-service/internal/domain"
)

// Notification DTOs mirroring the DONKI API JSON. The same shapes are
// accepted from local file drops, so they are exported for the file adapter.

// FlareRecord is one FLR notification.
type FlareRecord struct {
	FlareID   string `json:"flrID"`
	ClassType string `json:"classType"`
	BeginTime string `json:"beginTime"`
	PeakTime  string `json:"peakTime"`
}

// CMEAnalysis is one entry of a CME notification's analysis list.
type CMEAnalysis struct {
	Speed          float64 `json:"speed"`
	IsMostAccurate bool    `json:"isMostAccurate"`
}

// CMERecord is one CME notification. Speed may appear at the top level or
// only inside the analysis list depending on feed vintage.
type CMERecord struct {
	ActivityID string        `json:"activityID"`
	StartTime  string        `json:"startTime"`
	Speed      float64       `json:"speed"`
	Analyses   []CMEAnalysis `json:"cmeAnalyses"`
}

// KpReading is one Kp observation inside a GST notification.
type KpReading struct {
	ObservedTime string  `json:"observedTime"`
	KpIndex      float64 `json:"kpIndex"`
}

// StormRecord is one GST notification. A single storm carries multiple Kp
// readings over its lifetime; each becomes its own event so the aggregation
// sees every reading.
type StormRecord struct {
	GstID      string      `json:"gstID"`
	StartTime  string      `json:"startTime"`
	AllKpIndex []KpReading `json:"allKpIndex"`
}

// feedTimeLayouts covers the timestamp shapes DONKI emits: RFC 3339 and the
// minute-precision "2025-06-25T10:00Z" form.
var feedTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
}

func parseFeedTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range feedTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable feed timestamp %q", s)
}

// ConvertFlares maps FLR notifications to events, preferring the peak time
// (maximum X-ray flux instant) over the begin time. Records without a usable
// timestamp are dropped and counted; they cannot be window-filtered.
func ConvertFlares(records []FlareRecord) ([]domain.SpaceWeatherEvent, int) {
	events := make([]domain.SpaceWeatherEvent, 0, len(records))
	skipped := 0
	for _, rec := range records {
		raw := rec.PeakTime
		if raw == "" {
			raw = rec.BeginTime
		}
		ts, err := parseFeedTime(raw)
		if err != nil {
			skipped++
			continue
		}
		events = append(events, domain.SpaceWeatherEvent{
			ID:        eventID(rec.FlareID, domain.EventFlare, ts, rec.ClassType),
			EventType: domain.EventFlare,
			Timestamp: ts,
			ClassType: rec.ClassType,
		})
	}
	return events, skipped
}

// ConvertCMEs maps CME notifications to events. When the top-level speed is
// absent the most accurate analysis entry supplies it (first entry as a
// fallback).
func ConvertCMEs(records []CMERecord) ([]domain.SpaceWeatherEvent, int) {
	events := make([]domain.SpaceWeatherEvent, 0, len(records))
	skipped := 0
	for _, rec := range records {
		ts, err := parseFeedTime(rec.StartTime)
		if err != nil {
			skipped++
			continue
		}
		speed := rec.Speed
		if speed == 0 && len(rec.Analyses) > 0 {
			speed = rec.Analyses[0].Speed
			for _, a := range rec.Analyses {
				if a.IsMostAccurate {
					speed = a.Speed
					break
				}
			}
		}
		events = append(events, domain.SpaceWeatherEvent{
			ID:        eventID(rec.ActivityID, domain.EventCME, ts, fmt.Sprintf("%g", speed)),
			EventType: domain.EventCME,
			Timestamp: ts,
			Speed:     speed,
		})
	}
	return events, skipped
}

// ConvertStorms maps GST notifications to events, one per Kp reading so the
// aggregation rule sees every observation, not just the storm onset.
func ConvertStorms(records []StormRecord) ([]domain.SpaceWeatherEvent, int) {
	var events []domain.SpaceWeatherEvent
	skipped := 0
	for _, rec := range records {
		for i, reading := range rec.AllKpIndex {
			raw := reading.ObservedTime
			if raw == "" {
				raw = rec.StartTime
			}
			ts, err := parseFeedTime(raw)
			if err != nil {
				skipped++
				continue
			}
			id := eventID("", domain.EventGeomagneticStorm, ts, fmt.Sprintf("%g", reading.KpIndex))
			if rec.GstID != "" {
				id = fmt.Sprintf("%s-kp%d", rec.GstID, i)
			}
			events = append(events, domain.SpaceWeatherEvent{
				ID:        id,
				EventType: domain.EventGeomagneticStorm,
				Timestamp: ts,
				KpIndex:   reading.KpIndex,
			})
		}
	}
	return events, skipped
}

// eventID keeps the feed's own activity ID when present so warnings and peak
// events can be traced back to the notification; otherwise a deterministic
// hash stands in.
func eventID(feedID string, t domain.EventType, ts time.Time, magnitude string) string {
	if feedID != "" {
		return feedID
	}
	return domain.NewEventID(t, ts, magnitude)
}
