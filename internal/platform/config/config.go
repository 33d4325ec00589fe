// Package config loads runtime configuration from the environment so main
// stays lean.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	dErrors "carepath/pkg/domain-errors"
)

// Config is the full runtime configuration.
type Config struct {
	Server   Server   `envPrefix:"CAREPATH_"`
	Postgres Postgres `envPrefix:"CAREPATH_PG_"`
	Redis    Redis    `envPrefix:"CAREPATH_REDIS_"`
	Kafka    Kafka    `envPrefix:"CAREPATH_KAFKA_"`
	Jobs     Jobs     `envPrefix:"CAREPATH_JOBS_"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr     string `env:"ADDR" envDefault:":8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Postgres captures the database connection settings. An empty URL selects
// the in-memory store, which is intended for local runs only.
type Postgres struct {
	URL string `env:"URL"`
}

// Redis captures the dedupe store settings. An empty URL disables
// cross-instance alert deduplication.
type Redis struct {
	URL          string        `env:"URL"`
	PoolSize     int           `env:"POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"3s"`
}

// Kafka captures the alert topic settings. Empty brokers disable Kafka and
// alerts stay in memory.
type Kafka struct {
	Brokers    []string `env:"BROKERS"`
	AlertTopic string   `env:"ALERT_TOPIC" envDefault:"carepath.certification-alerts"`
}

// Jobs captures the background job cadences.
type Jobs struct {
	ExpiryScanInterval  time.Duration `env:"EXPIRY_SCAN_INTERVAL" envDefault:"1h"`
	OverdueMarkInterval time.Duration `env:"OVERDUE_MARK_INTERVAL" envDefault:"1h"`
}

// FromEnv builds a Config from environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, dErrors.Wrap(err, dErrors.CodeInternal, "parse environment")
	}
	return cfg, nil
}
