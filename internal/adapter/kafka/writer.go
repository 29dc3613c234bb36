package kafka

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/astromedai/mission-risk-service/internal/config"
	"github.com/astromedai/mission-risk-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes completed assessments to a Kafka topic for downstream
// report and visualization consumers. It implements assessor.ResultPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured results topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaResultsTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishAssessment serializes one assessment and writes it to the results
// topic. The message key is deterministic in the mission parameters and
// generation time, so replays compact to a single record.
func (w *Writer) PublishAssessment(ctx context.Context, mission domain.MissionParameters, result domain.RiskResult) error {
	msg, err := serializeToMessage(mission, result)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// assessmentEnvelope is the published wire form: the request parameters
// alongside the full result so consumers need no second lookup.
type assessmentEnvelope struct {
	Mission domain.MissionParameters `json:"mission"`
	Result  domain.RiskResult        `json:"result"`
}

// serializeToMessage marshals an assessment into a Kafka message.
func serializeToMessage(mission domain.MissionParameters, result domain.RiskResult) (kafkago.Message, error) {
	data, err := json.Marshal(assessmentEnvelope{Mission: mission, Result: result})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize assessment: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(assessmentKey(mission, result)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "category", Value: []byte(result.Category)},
			{Key: "generated_at", Value: []byte(result.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}

// assessmentKey derives a stable key from the mission parameters and the
// generation time.
func assessmentKey(mission domain.MissionParameters, result domain.RiskResult) string {
	input := fmt.Sprintf("%s|%s|%s|%s|%s",
		mission.StartDate.UTC().Format(time.RFC3339),
		mission.EndDate.UTC().Format(time.RFC3339),
		mission.Orbit,
		mission.Shielding,
		result.GeneratedAt.UTC().Format(time.RFC3339),
	)
	hash := sha256.Sum256([]byte(input))
	return "assessment-" + hex.EncodeToString(hash[:8])
}
