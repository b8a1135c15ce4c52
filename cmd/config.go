package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	LockBackendMemory = "memory"
	LockBackendRedis  = "redis"

	EventsBrokerNone     = "none"
	EventsBrokerRabbitMQ = "rabbitmq"
	EventsBrokerKafka    = "kafka"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// CatalogFile is an optional YAML/JSON/TOML stage catalog; empty means the built-in one.
	CatalogFile string

	LockBackend string
	RedisURL    string
	LockTTL     time.Duration

	EventsBroker           string
	RabbitMQURL            string
	KafkaHost              string
	KafkaOrderChangedTopic string

	LegacyMigrationSchedule string
	MigrationWorkers        int
}

// LoadConfig reads the environment, after loading .env when it exists.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("error loading .env file: %w", err)
	}

	lockTTL, err := time.ParseDuration(envOrDefault("LOCK_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid LOCK_TTL: %w", err)
	}

	workers, err := strconv.Atoi(envOrDefault("MIGRATION_WORKERS", "4"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid MIGRATION_WORKERS: %w", err)
	}

	config := Config{
		HTTPPort:                envOrDefault("HTTP_PORT", "8082"),
		DBHost:                  os.Getenv("DB_HOST"),
		DBPort:                  envOrDefault("DB_PORT", "5432"),
		DBUser:                  os.Getenv("DB_USER"),
		DBPassword:              os.Getenv("DB_PASSWORD"),
		DBName:                  os.Getenv("DB_NAME"),
		DBSslMode:               envOrDefault("DB_SSLMODE", "disable"),
		CatalogFile:             os.Getenv("CATALOG_FILE"),
		LockBackend:             strings.ToLower(envOrDefault("LOCK_BACKEND", LockBackendMemory)),
		RedisURL:                os.Getenv("REDIS_URL"),
		LockTTL:                 lockTTL,
		EventsBroker:            strings.ToLower(envOrDefault("EVENTS_BROKER", EventsBrokerNone)),
		RabbitMQURL:             os.Getenv("RABBITMQ_URL"),
		KafkaHost:               os.Getenv("KAFKA_HOST"),
		KafkaOrderChangedTopic:  envOrDefault("KAFKA_ORDER_CHANGED_TOPIC", "order.changed"),
		LegacyMigrationSchedule: os.Getenv("LEGACY_MIGRATION_SCHEDULE"),
		MigrationWorkers:        workers,
	}
	return config, nil
}

// DSN is the gorm postgres connection string for the configured database.
func (c Config) DSN() string {
	return c.dsn(c.DBName)
}

// ServerDSN connects to the default postgres database, used to create DBName.
func (c Config) ServerDSN() string {
	return c.dsn("postgres")
}

func (c Config) dsn(dbName string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, dbName, c.DBSslMode)
}

func envOrDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
