// Command assess runs a one-shot mission risk assessment from the command
// line. Events come from a local JSON file; without one the NASA DONKI feed
// is queried for the mission window. The result is printed as JSON.
//
// Usage:
//
//	go run ./cmd/assess \
//	  -start 2025-06-10 -end 2025-06-20 \
//	  -orbit LEO -shielding HEAVY \
//	  -events data/mock/space_weather_events.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/astromedai/mission-risk-service/internal/adapter/donki"
	"github.com/astromedai/mission-risk-service/internal/adapter/file"
	"github.com/astromedai/mission-risk-service/internal/config"
	"github.com/astromedai/mission-risk-service/internal/domain"
	"github.com/jonboulle/clockwork"
)

func main() {
	start := flag.String("start", "", "mission start date (YYYY-MM-DD)")
	end := flag.String("end", "", "mission end date (YYYY-MM-DD)")
	orbit := flag.String("orbit", "LEO", "orbit type: LEO, GEO, LUNAR, DEEP_SPACE")
	shielding := flag.String("shielding", "MODERATE", "shielding level: NONE, LIGHT, MODERATE, HEAVY")
	eventsPath := flag.String("events", "", "path to an events JSON file; empty queries the DONKI feed")
	at := flag.String("at", "", "fixed generation timestamp (RFC 3339) for reproducible output")
	flag.Parse()

	if err := run(*start, *end, *orbit, *shielding, *eventsPath, *at); err != nil {
		fmt.Fprintf(os.Stderr, "assess: %v\n", err)
		os.Exit(1)
	}
}

func run(start, end, orbit, shielding, eventsPath, at string) error {
	mission, err := buildMission(start, end, orbit, shielding)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if at != "" {
		fixed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return fmt.Errorf("invalid -at timestamp %q: %w", at, err)
		}
		domain.SetClock(clockwork.NewFakeClockAt(fixed))
		defer domain.SetClock(nil)
	}

	engine := domain.NewEngine(cfg.Model)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	events, err := loadEvents(cfg, mission, eventsPath, logger)
	if err != nil {
		return err
	}

	result, err := engine.Assess(mission, events)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func loadEvents(cfg *config.Config, mission domain.MissionParameters, eventsPath string, logger *slog.Logger) ([]domain.SpaceWeatherEvent, error) {
	if eventsPath != "" {
		events, skipped, err := file.LoadEvents(eventsPath)
		if err != nil {
			return nil, err
		}
		if skipped > 0 {
			logger.Warn("skipped unparseable records", "count", skipped)
		}
		return events, nil
	}

	client := donki.NewClient(cfg.NASAAPIKey, cfg.DONKITimeout, logger)
	window := mission.Window().Expand(cfg.Model.WindowMargin)
	return client.FetchEvents(context.Background(), window)
}

func buildMission(start, end, orbit, shielding string) (domain.MissionParameters, error) {
	if start == "" || end == "" {
		return domain.MissionParameters{}, fmt.Errorf("-start and -end are required (YYYY-MM-DD)")
	}
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return domain.MissionParameters{}, fmt.Errorf("invalid -start %q: %w", start, err)
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return domain.MissionParameters{}, fmt.Errorf("invalid -end %q: %w", end, err)
	}
	orbitType, err := domain.ParseOrbitType(orbit)
	if err != nil {
		return domain.MissionParameters{}, err
	}
	shieldingLevel, err := domain.ParseShieldingLevel(shielding)
	if err != nil {
		return domain.MissionParameters{}, err
	}
	return domain.MissionParameters{
		StartDate: startDate,
		EndDate:   endDate,
		Orbit:     orbitType,
		Shielding: shieldingLevel,
	}, nil
}
