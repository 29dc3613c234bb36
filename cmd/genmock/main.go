// Command genmock generates a deterministic mock space-weather event fixture
// and its expected assessment. It uses the actual risk engine so the expected
// output matches real service behavior, with a seeded generator and a fixed
// clock for byte-identical reruns.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -events-out data/mock/space_weather_events.json \
//	  -expected-out data/mock/expected_assessment.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/astromedai/mission-risk-service/internal/adapter/donki"
	"github.com/astromedai/mission-risk-service/internal/adapter/file"
	"github.com/astromedai/mission-risk-service/internal/domain"
	"github.com/jonboulle/clockwork"
)

var (
	missionStart = time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	missionEnd   = time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)
	generatedAt  = time.Date(2025, time.June, 21, 6, 0, 0, 0, time.UTC)
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	eventsOut := flag.String("events-out", "", "output path for the mock event document")
	expectedOut := flag.String("expected-out", "", "output path for the expected assessment JSON")
	seed := flag.Int64("seed", 42, "random seed for event generation")
	flares := flag.Int("flares", 6, "number of solar flares to generate")
	cmes := flag.Int("cmes", 4, "number of CMEs to generate")
	storms := flag.Int("storms", 2, "number of geomagnetic storms to generate")
	flag.Parse()

	if *eventsOut == "" || *expectedOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -events-out, -expected-out")
	}

	// Fix the clock so GeneratedAt is reproducible across reruns.
	domain.SetClock(clockwork.NewFakeClockAt(generatedAt))
	defer domain.SetClock(nil)

	rng := rand.New(rand.NewSource(*seed))
	doc := generateDocument(rng, *flares, *cmes, *storms)

	if err := writeJSON(*eventsOut, doc); err != nil {
		return fmt.Errorf("writing event fixture: %w", err)
	}
	log.Printf("wrote event fixture: %s (%d flares, %d cmes, %d storms)",
		*eventsOut, len(doc.SolarFlares), len(doc.CMEs), len(doc.GeomagneticStorms))

	expected, err := assessDocument(doc)
	if err != nil {
		return fmt.Errorf("assessing fixture: %w", err)
	}

	if err := writeJSON(*expectedOut, expected); err != nil {
		return fmt.Errorf("writing expected assessment: %w", err)
	}
	log.Printf("wrote expected assessment: %s", *expectedOut)

	printStats(expected)
	return nil
}

// generateDocument builds a feed document with event timestamps spread across
// the mission window. Magnitudes are drawn from ranges typical of an active
// solar period.
func generateDocument(rng *rand.Rand, flares, cmes, storms int) file.Document {
	doc := file.Document{}

	flareClasses := []string{"B", "C", "M", "X"}
	for i := 0; i < flares; i++ {
		ts := randomTimestamp(rng)
		letter := flareClasses[rng.Intn(len(flareClasses))]
		class := fmt.Sprintf("%s%.1f", letter, 1+rng.Float64()*8)
		doc.SolarFlares = append(doc.SolarFlares, donki.FlareRecord{
			FlareID:   fmt.Sprintf("%s-FLR-%03d", ts.Format("2006-01-02T15:04:05"), i+1),
			ClassType: class,
			BeginTime: ts.Add(-30 * time.Minute).Format(time.RFC3339),
			PeakTime:  ts.Format(time.RFC3339),
		})
	}

	for i := 0; i < cmes; i++ {
		ts := randomTimestamp(rng)
		speed := 300 + rng.Float64()*1700
		doc.CMEs = append(doc.CMEs, donki.CMERecord{
			ActivityID: fmt.Sprintf("%s-CME-%03d", ts.Format("2006-01-02T15:04:05"), i+1),
			StartTime:  ts.Format(time.RFC3339),
			Analyses: []donki.CMEAnalysis{
				{Speed: speed, IsMostAccurate: true},
			},
		})
	}

	for i := 0; i < storms; i++ {
		ts := randomTimestamp(rng)
		readings := make([]donki.KpReading, 0, 3)
		for j := 0; j < 3; j++ {
			readings = append(readings, donki.KpReading{
				ObservedTime: ts.Add(time.Duration(j) * 3 * time.Hour).Format(time.RFC3339),
				KpIndex:      float64(3 + rng.Intn(6)),
			})
		}
		doc.GeomagneticStorms = append(doc.GeomagneticStorms, donki.StormRecord{
			GstID:      fmt.Sprintf("%s-GST-%03d", ts.Format("2006-01-02T15:04:05"), i+1),
			StartTime:  ts.Format(time.RFC3339),
			AllKpIndex: readings,
		})
	}

	return doc
}

func randomTimestamp(rng *rand.Rand) time.Time {
	span := missionEnd.Sub(missionStart)
	offset := time.Duration(rng.Int63n(int64(span)))
	return missionStart.Add(offset).Truncate(time.Minute)
}

// assessDocument runs the real engine over the generated document the same
// way the service would.
func assessDocument(doc file.Document) (domain.RiskResult, error) {
	flares, _ := donki.ConvertFlares(doc.SolarFlares)
	cmes, _ := donki.ConvertCMEs(doc.CMEs)
	storms, _ := donki.ConvertStorms(doc.GeomagneticStorms)

	events := make([]domain.SpaceWeatherEvent, 0, len(flares)+len(cmes)+len(storms))
	events = append(events, flares...)
	events = append(events, cmes...)
	events = append(events, storms...)

	mission := domain.MissionParameters{
		StartDate: missionStart,
		EndDate:   missionEnd,
		Orbit:     domain.OrbitLEO,
		Shielding: domain.ShieldingModerate,
	}

	engine := domain.NewEngine(domain.DefaultModelConfig())
	return engine.Assess(mission, events)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(result domain.RiskResult) {
	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Percentage: %.4f\n", result.Percentage)
	fmt.Printf("Category: %s\n", result.Category)
	fmt.Printf("Raw score: %.4f\n", result.Breakdown.RawScore)
	fmt.Printf("Events in window: %d\n", len(result.Events))
	fmt.Printf("Warnings: %d\n", len(result.Warnings))
	for _, t := range domain.EventTypes {
		agg := result.Breakdown.Aggregates[t]
		fmt.Printf("  %s: score=%.4f contributing=%d\n", t, agg.Score, agg.ContributingCount)
	}
}
