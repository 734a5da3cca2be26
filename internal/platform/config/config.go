package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	platformstrings "uat/pkg/platform/strings"
)

// Config is the process configuration for uatadmin and any embedding service.
type Config struct {
	Database        DatabaseConfig
	Redis           RedisConfig
	Kafka           KafkaConfig
	DefaultLocale   language.Tag
	ProgramCacheTTL time.Duration
	LogLevel        slog.Level
}

type DatabaseConfig struct {
	URL    string
	Driver string
	// Workers and Queue size the executor pool that runs persistence work.
	Workers int
	Queue   int
}

// RedisConfig is empty-URL disabled; the program cache then stays in process.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
}

const (
	defaultDriver     = "pgx"
	defaultWorkers    = 8
	defaultQueue      = 64
	defaultAuditTopic = "uat.audit"
	defaultCacheTTL   = time.Minute
)

// FromEnv builds a Config from UAT_* environment variables. Unset or invalid
// values fall back to defaults.
func FromEnv() Config {
	return Config{
		Database: DatabaseConfig{
			URL:     os.Getenv("UAT_DATABASE_URL"),
			Driver:  stringEnv("UAT_DATABASE_DRIVER", defaultDriver),
			Workers: intEnv("UAT_DB_WORKERS", defaultWorkers),
			Queue:   intEnv("UAT_DB_QUEUE", defaultQueue),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("UAT_REDIS_URL"),
			PoolSize:     intEnv("UAT_REDIS_POOL_SIZE", 10),
			MinIdleConns: intEnv("UAT_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  durationEnv("UAT_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  durationEnv("UAT_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: durationEnv("UAT_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:    listEnv("UAT_KAFKA_BROKERS"),
			AuditTopic: stringEnv("UAT_AUDIT_TOPIC", defaultAuditTopic),
		},
		DefaultLocale:   localeEnv("UAT_DEFAULT_LOCALE", language.AmericanEnglish),
		ProgramCacheTTL: durationEnv("UAT_PROGRAM_CACHE_TTL", defaultCacheTTL),
		LogLevel:        levelEnv("UAT_LOG_LEVEL", slog.LevelInfo),
	}
}

func stringEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func listEnv(key string) []string {
	return platformstrings.SplitList(os.Getenv(key), ",")
}

func localeEnv(key string, fallback language.Tag) language.Tag {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	tag, err := language.Parse(v)
	if err != nil {
		return fallback
	}
	return tag
}

func levelEnv(key string, fallback slog.Level) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(os.Getenv(key)))); err != nil {
		return fallback
	}
	return level
}
