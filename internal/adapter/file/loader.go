// Package file loads space-weather events from a local file drop instead of
// the network feed. The document carries the same DONKI notification shapes,
// so exported feeds and hand-built fixtures work interchangeably.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/astromedai/mission-risk-service/internal/adapter/donki"
	"github.com/astromedai/mission-risk-service/internal/domain"
)

// Document is the on-disk event file: DONKI notification arrays grouped by type.
type Document struct {
	SolarFlares       []donki.FlareRecord `json:"solarFlares"`
	CMEs              []donki.CMERecord   `json:"cmes"`
	GeomagneticStorms []donki.StormRecord `json:"geomagneticStorms"`
}

// LoadEvents reads and converts an event document. Records with unparseable
// timestamps are dropped; the returned count reports how many.
func LoadEvents(path string) ([]domain.SpaceWeatherEvent, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read event file: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, 0, fmt.Errorf("parse event file %s: %w", path, err)
	}

	flares, skippedFlares := donki.ConvertFlares(doc.SolarFlares)
	cmes, skippedCMEs := donki.ConvertCMEs(doc.CMEs)
	storms, skippedStorms := donki.ConvertStorms(doc.GeomagneticStorms)

	events := make([]domain.SpaceWeatherEvent, 0, len(flares)+len(cmes)+len(storms))
	events = append(events, flares...)
	events = append(events, cmes...)
	events = append(events, storms...)

	return events, skippedFlares + skippedCMEs + skippedStorms, nil
}

// Source adapts a file drop to the assessor's EventSource. The date range is
// ignored: the engine window-filters whatever the file contains.
type Source struct {
	path   string
	logger *slog.Logger
}

// NewSource creates a file-backed event source.
func NewSource(path string, logger *slog.Logger) *Source {
	return &Source{path: path, logger: logger}
}

func (s *Source) FetchEvents(_ context.Context, _ domain.DateRange) ([]domain.SpaceWeatherEvent, error) {
	events, skipped, err := LoadEvents(s.path)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		s.logger.Warn("dropped file records with unparseable timestamps",
			"path", s.path, "count", skipped)
	}
	return events, nil
}
