package domain

import "sort"

// FilterWindow returns the events whose timestamp falls inside the mission
// window expanded by the configured residual-risk margin, sorted by timestamp
// (ID as tiebreak so ordering is deterministic for equal instants).
func FilterWindow(cfg ModelConfig, events []NormalizedEvent, window DateRange) []NormalizedEvent {
	expanded := window.Expand(cfg.WindowMargin)

	filtered := make([]NormalizedEvent, 0, len(events))
	for _, e := range events {
		if expanded.Contains(e.Event.Timestamp) {
			filtered = append(filtered, e)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		ti, tj := filtered[i].Event.Timestamp, filtered[j].Event.Timestamp
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return filtered[i].Event.ID < filtered[j].Event.ID
	})
	return filtered
}

// Aggregate filters events to the expanded mission window, groups by event
// type, and reduces each group to a single score:
//
//	score = max(severities) + SecondaryWeight × sum(other severities)
//
// The single worst event dominates, but a barrage of smaller events adds a
// bounded penalty so one mega-event cannot fully mask it. Every known event
// type gets an entry; an empty group scores 0 with no peak event.
func Aggregate(cfg ModelConfig, events []NormalizedEvent, window DateRange) map[EventType]AggregateSeverity {
	filtered := FilterWindow(cfg, events, window)

	groups := make(map[EventType][]NormalizedEvent, len(EventTypes))
	for _, e := range filtered {
		groups[e.Event.EventType] = append(groups[e.Event.EventType], e)
	}

	aggregates := make(map[EventType]AggregateSeverity, len(EventTypes))
	for _, t := range EventTypes {
		aggregates[t] = reduceGroup(cfg, t, groups[t])
	}
	return aggregates
}

// reduceGroup applies the worst-event-dominant rule to one type's events.
// The group is already timestamp-sorted, so on severity ties the earliest
// event becomes the peak.
func reduceGroup(cfg ModelConfig, t EventType, group []NormalizedEvent) AggregateSeverity {
	if len(group) == 0 {
		return AggregateSeverity{EventType: t}
	}

	peakIndex := 0
	var total float64
	for i, e := range group {
		total += e.Severity
		if e.Severity > group[peakIndex].Severity {
			peakIndex = i
		}
	}

	peak := group[peakIndex].Event
	score := group[peakIndex].Severity + cfg.SecondaryWeight*(total-group[peakIndex].Severity)

	return AggregateSeverity{
		EventType:         t,
		Score:             score,
		ContributingCount: len(group),
		PeakEvent:         &peak,
	}
}
