package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/astromedai/mission-risk-service/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// DONKI feed configuration.
	NASAAPIKey     string
	DONKIEnabled   bool
	DONKITimeout   time.Duration
	DONKICacheSize int

	// Kafka result publishing configuration.
	KafkaBrokers      []string
	KafkaResultsTopic string
	KafkaEnabled      bool

	// Risk model calibration, defaults overridable via RISK_* variables so
	// recalibration never requires a code change.
	Model domain.ModelConfig
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	donkiTimeout, err := parseDurationEnv("DONKI_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}

	model, err := loadModelConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		NASAAPIKey:     envOrDefault("NASA_API_KEY", "DEMO_KEY"),
		DONKIEnabled:   envOrDefault("DONKI_ENABLED", "true") == "true",
		DONKITimeout:   donkiTimeout,
		DONKICacheSize: parseIntEnvOrDefault("DONKI_CACHE_SIZE", 100),

		KafkaBrokers:      parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaResultsTopic: envOrDefault("KAFKA_RESULTS_TOPIC", "mission-risk-assessments"),
		KafkaEnabled:      os.Getenv("KAFKA_ENABLED") == "true",

		Model: model,
	}

	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaResultsTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_RESULTS_TOPIC is empty")
	}
	if cfg.DONKIEnabled && cfg.NASAAPIKey == "" {
		return nil, errors.New("DONKI_ENABLED is true but NASA_API_KEY is empty")
	}

	return cfg, nil
}

// loadModelConfig starts from the shipped calibration and applies RISK_*
// overrides, then sanity-checks the result.
func loadModelConfig() (domain.ModelConfig, error) {
	model := domain.DefaultModelConfig()

	overrides := []struct {
		env    string
		target *float64
	}{
		{"RISK_FLARE_SCALE", &model.FlareScale},
		{"RISK_CME_SPEED_FLOOR", &model.CMESpeedFloor},
		{"RISK_CME_SPEED_CEILING", &model.CMESpeedCeiling},
		{"RISK_CME_SPEED_STEP", &model.CMESpeedStep},
		{"RISK_KP_SCALE", &model.KpScale},
		{"RISK_SECONDARY_WEIGHT", &model.SecondaryWeight},
		{"RISK_BASELINE", &model.Baseline},
		{"RISK_WEIGHT_FLARE", &model.FlareWeight},
		{"RISK_WEIGHT_CME", &model.CMEWeight},
		{"RISK_WEIGHT_STORM", &model.StormWeight},
		{"RISK_REFERENCE_DAYS", &model.ReferenceDays},
		{"RISK_THRESHOLD_MODERATE", &model.Thresholds.Moderate},
		{"RISK_THRESHOLD_HIGH", &model.Thresholds.High},
		{"RISK_THRESHOLD_EXTREME", &model.Thresholds.Extreme},
	}
	for _, o := range overrides {
		if err := applyFloatEnv(o.env, o.target); err != nil {
			return domain.ModelConfig{}, err
		}
	}

	margin, err := parseDurationEnv("RISK_WINDOW_MARGIN", model.WindowMargin)
	if err != nil {
		return domain.ModelConfig{}, err
	}
	model.WindowMargin = margin

	if model.CMESpeedFloor >= model.CMESpeedCeiling {
		return domain.ModelConfig{}, errors.New("RISK_CME_SPEED_FLOOR must be below RISK_CME_SPEED_CEILING")
	}
	if model.CMESpeedStep <= 0 {
		return domain.ModelConfig{}, errors.New("RISK_CME_SPEED_STEP must be positive")
	}
	if model.ReferenceDays <= 0 {
		return domain.ModelConfig{}, errors.New("RISK_REFERENCE_DAYS must be positive")
	}
	t := model.Thresholds
	if !(0 < t.Moderate && t.Moderate < t.High && t.High < t.Extreme && t.Extreme <= 100) {
		return domain.ModelConfig{}, errors.New("risk thresholds must satisfy 0 < moderate < high < extreme <= 100")
	}

	return model, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBrokers(raw string) []string {
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return d, nil
}

func parseIntEnvOrDefault(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func applyFloatEnv(key string, target *float64) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, raw)
	}
	*target = v
	return nil
}
