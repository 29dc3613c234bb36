package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// assessment service.
type Metrics struct {
	AssessmentsTotal   *prometheus.CounterVec // label: category
	AssessmentErrors   prometheus.Counter
	AssessmentDuration prometheus.Histogram
	MalformedEvents    prometheus.Counter

	// Feed metrics.
	EventsPerAssessment prometheus.Histogram
	FeedRequests        *prometheus.CounterVec // label: outcome={success,error}
	FeedDuration        prometheus.Histogram
	FeedEnabled         prometheus.Gauge

	// Result publishing metrics.
	PublishErrors    prometheus.Counter
	PublisherEnabled prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		AssessmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mission_risk",
			Name:      "assessments_total",
			Help:      "Completed assessments by risk category.",
		}, []string{"category"}),
		AssessmentErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mission_risk",
			Name:      "assessment_errors_total",
			Help:      "Assessments aborted by invalid mission parameters or feed failures.",
		}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mission_risk",
			Name:      "assessment_duration_seconds",
			Help:      "Duration of a complete fetch-assess-publish cycle.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		MalformedEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mission_risk",
			Name:      "malformed_events_total",
			Help:      "Events normalized to zero severity with a warning.",
		}),
		EventsPerAssessment: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mission_risk",
			Name:      "events_per_assessment",
			Help:      "Number of feed events supplied to each assessment.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		}),
		FeedRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mission_risk",
			Name:      "feed_requests_total",
			Help:      "Space-weather feed fetches by outcome.",
		}, []string{"outcome"}),
		FeedDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mission_risk",
			Name:      "feed_duration_seconds",
			Help:      "DONKI feed fetch duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		FeedEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mission_risk",
			Name:      "feed_enabled",
			Help:      "1 when the DONKI feed is configured, 0 otherwise.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mission_risk",
			Name:      "publish_errors_total",
			Help:      "Failed publishes of completed assessments.",
		}),
		PublisherEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mission_risk",
			Name:      "publisher_enabled",
			Help:      "1 when the Kafka result publisher is configured, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.AssessmentsTotal,
		m.AssessmentErrors,
		m.AssessmentDuration,
		m.MalformedEvents,
		m.EventsPerAssessment,
		m.FeedRequests,
		m.FeedDuration,
		m.FeedEnabled,
		m.PublishErrors,
		m.PublisherEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		AssessmentsTotal:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "mission_risk", Name: "assessments_total"}, []string{"category"}),
		AssessmentErrors:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "mission_risk", Name: "assessment_errors_total"}),
		AssessmentDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "mission_risk", Name: "assessment_duration_seconds"}),
		MalformedEvents:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "mission_risk", Name: "malformed_events_total"}),
		EventsPerAssessment: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "mission_risk", Name: "events_per_assessment"}),
		FeedRequests:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "mission_risk", Name: "feed_requests_total"}, []string{"outcome"}),
		FeedDuration:        prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "mission_risk", Name: "feed_duration_seconds"}),
		FeedEnabled:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "mission_risk", Name: "feed_enabled"}),
		PublishErrors:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "mission_risk", Name: "publish_errors_total"}),
		PublisherEnabled:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "mission_risk", Name: "publisher_enabled"}),
	}
}
