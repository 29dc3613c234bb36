package assessor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/astromedai/mission-risk-service/internal/domain"
	"github.com/astromedai/mission-risk-service/internal/observability"
)

// EventSource supplies space-weather events overlapping a date range.
type EventSource interface {
	FetchEvents(ctx context.Context, window domain.DateRange) ([]domain.SpaceWeatherEvent, error)
}

// ResultPublisher forwards a completed assessment to downstream consumers.
type ResultPublisher interface {
	PublishAssessment(ctx context.Context, mission domain.MissionParameters, result domain.RiskResult) error
}

// Service orchestrates one assessment: fetch events for the mission window,
// run the risk engine, publish the result. Source and publisher are both
// optional; without a source only caller-supplied events are assessed, and
// without a publisher results are returned but not forwarded.
type Service struct {
	source    EventSource
	publisher ResultPublisher
	engine    *domain.Engine
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New creates a Service with the given collaborators and observability.
func New(source EventSource, publisher ResultPublisher, engine *domain.Engine, logger *slog.Logger, metrics *observability.Metrics) *Service {
	s := &Service{
		source:    source,
		publisher: publisher,
		engine:    engine,
		logger:    logger,
		metrics:   metrics,
	}
	s.metrics.FeedEnabled.Set(boolGauge(source != nil))
	s.metrics.PublisherEnabled.Set(boolGauge(publisher != nil))
	return s
}

// CheckReadiness returns nil once the service has completed at least one
// assessment, or an error describing why it is not yet ready.
func (s *Service) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("no assessment completed yet")
	}
	return nil
}

// AssessMission fetches events for the mission window from the configured
// source and assesses them. The fetch window is widened by the model's margin
// so multi-day storm sequences straddling the mission boundary still
// contribute.
func (s *Service) AssessMission(ctx context.Context, mission domain.MissionParameters) (domain.RiskResult, error) {
	if err := mission.Validate(); err != nil {
		s.metrics.AssessmentErrors.Inc()
		return domain.RiskResult{}, err
	}
	if s.source == nil {
		s.metrics.AssessmentErrors.Inc()
		return domain.RiskResult{}, errors.New("no event source configured")
	}

	window := mission.Window().Expand(s.engine.Config().WindowMargin)

	fetchStart := time.Now()
	events, err := s.source.FetchEvents(ctx, window)
	s.metrics.FeedDuration.Observe(time.Since(fetchStart).Seconds())
	if err != nil {
		s.metrics.FeedRequests.WithLabelValues("error").Inc()
		s.metrics.AssessmentErrors.Inc()
		return domain.RiskResult{}, fmt.Errorf("fetch events: %w", err)
	}
	s.metrics.FeedRequests.WithLabelValues("success").Inc()

	return s.AssessEvents(ctx, mission, events)
}

// AssessEvents runs the risk engine over an already-materialized event list
// and publishes the result. Publish failures are logged and counted but do
// not fail the assessment; the result is already computed and returned.
func (s *Service) AssessEvents(ctx context.Context, mission domain.MissionParameters, events []domain.SpaceWeatherEvent) (domain.RiskResult, error) {
	start := time.Now()

	result, err := s.engine.Assess(mission, events)
	if err != nil {
		s.metrics.AssessmentErrors.Inc()
		return domain.RiskResult{}, err
	}

	s.metrics.EventsPerAssessment.Observe(float64(len(events)))
	s.metrics.MalformedEvents.Add(float64(len(result.Warnings)))
	s.metrics.AssessmentsTotal.WithLabelValues(string(result.Category)).Inc()

	for _, w := range result.Warnings {
		s.logger.Warn("malformed event normalized to zero severity",
			"event_id", w.EventID,
			"event_type", w.EventType,
			"reason", w.Reason,
		)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishAssessment(ctx, mission, result); err != nil {
			s.metrics.PublishErrors.Inc()
			s.logger.Error("publish assessment failed", "error", err, "category", result.Category)
		}
	}

	s.metrics.AssessmentDuration.Observe(time.Since(start).Seconds())
	s.ready.Store(true)

	s.logger.Info("assessment completed",
		"category", result.Category,
		"percentage", result.Percentage,
		"events", len(events),
		"warnings", len(result.Warnings),
	)
	return result, nil
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
