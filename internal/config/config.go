package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	SpoolDir     string
	ArchiveDir   string
	ScanInterval time.Duration

	// EmptyCols lists raw sum file header labels whose column content is
	// ignored during decoding (columns present in the header but blank in
	// the body).
	EmptyCols []string

	KafkaBrokers   []string
	KafkaSinkTopic string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	BatchSize       int
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	scanInterval, err := envDuration("SCAN_INTERVAL", 5*time.Second)
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := envDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	batchSize, err := envInt("BATCH_SIZE", 10)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		SpoolDir:        envOrDefault("SPOOL_DIR", "./spool"),
		ArchiveDir:      envOrDefault("ARCHIVE_DIR", "./spool/archive"),
		ScanInterval:    scanInterval,
		EmptyCols:       splitList(os.Getenv("EMPTY_COLS")),
		KafkaBrokers:    splitList(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic:  envOrDefault("KAFKA_SINK_TOPIC", "decoded-casts"),
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		BatchSize:       batchSize,
	}

	if cfg.SpoolDir == "" {
		return nil, errors.New("SPOOL_DIR is required")
	}
	if cfg.ArchiveDir == "" {
		return nil, errors.New("ARCHIVE_DIR is required")
	}
	if cfg.ArchiveDir == cfg.SpoolDir {
		return nil, errors.New("ARCHIVE_DIR must differ from SPOOL_DIR")
	}
	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func envInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

// splitList splits a comma-separated list, trimming whitespace and dropping
// empty entries.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
