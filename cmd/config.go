package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"kitchen/internal/pkg/errs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	EventStoreMemory   = "memory"
	EventStoreSQLite   = "sqlite"
	EventStorePostgres = "postgres"
)

type Config struct {
	HTTPPort string     `env:"HTTP_PORT" envDefault:"8082"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	EventStore string `env:"EVENT_STORE" envDefault:"memory"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"kitchen.db"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"kitchen"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	RedisAddr      string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	OnlineOrderTTL time.Duration `env:"ONLINE_ORDER_TTL" envDefault:"24h"`

	// Empty KafkaHosts disables the ordering consumer.
	KafkaHosts         []string `env:"KAFKA_HOST" envSeparator:","`
	KafkaConsumerGroup string   `env:"KAFKA_CONSUMER_GROUP" envDefault:"kitchen"`
	KafkaOrderingTopic string   `env:"KAFKA_ORDERING_TOPIC" envDefault:"ordering.events"`

	ReconcileSchedule   string `env:"RECONCILE_SCHEDULE" envDefault:"*/10 * * * * *"`
	ReplayAuditSchedule string `env:"REPLAY_AUDIT_SCHEDULE" envDefault:"0 */5 * * * *"`
}

// LoadConfig reads .env when it exists and then the process environment.
// Variables already set in the environment win over .env.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var config Config
	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	switch c.EventStore {
	case EventStoreMemory:
	case EventStoreSQLite:
		if c.SQLitePath == "" {
			return errs.NewValueIsRequiredError("SQLITE_PATH")
		}
	case EventStorePostgres:
		if c.DBUser == "" {
			return errs.NewValueIsRequiredError("DB_USER")
		}
	default:
		return errs.NewValueIsInvalidErrorWithCause("EVENT_STORE",
			fmt.Errorf("%q is not one of %s, %s, %s", c.EventStore, EventStoreMemory, EventStoreSQLite, EventStorePostgres))
	}
	return nil
}

func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
