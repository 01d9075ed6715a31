// Package config loads and validates application configuration from YAML files
// with environment-variable overrides. It provides typed structs for every
// subsystem (Dataset, Tokenizer, Server, Postgres, Kafka, Redis, etc.).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Dataset source kinds.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceKafka    = "kafka"
)

// Config is the top-level application configuration.
type Config struct {
	Dataset   DatasetConfig   `yaml:"dataset"`
	Tokenizer TokenizerConfig `yaml:"tokenizer"`
	Server    ServerConfig    `yaml:"server"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Redis     RedisConfig     `yaml:"redis"`
	Logging   LoggingConfig   `yaml:"logging"`
	Tracing   TracingConfig   `yaml:"tracing"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Retry     RetryConfig     `yaml:"retry"`
}

// DatasetConfig describes where article records come from and how the
// title is located within a record.
type DatasetConfig struct {
	Source        string `yaml:"source"`
	Path          string `yaml:"path"`
	TitleColumn   int    `yaml:"titleColumn"`
	CommentPrefix string `yaml:"commentPrefix"`
	Query         string `yaml:"query"`
}

// TokenizerConfig controls title normalisation.
type TokenizerConfig struct {
	MinLength int `yaml:"minLength"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	RequestTimeout  time.Duration `yaml:"requestTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// PostgresConfig holds PostgreSQL connection parameters.
type PostgresConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Database        string        `yaml:"database"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	SSLMode         string        `yaml:"sslMode"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
}

// DSN returns a lib/pq-compatible data source name.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// KafkaConfig holds Kafka broker and topic settings. Titles are read from a
// single partition of Topic. Threshold query events go to QueryTopic; an
// empty QueryTopic disables the query log.
type KafkaConfig struct {
	Brokers            []string      `yaml:"brokers"`
	Topic              string        `yaml:"topic"`
	Partition          int           `yaml:"partition"`
	ReadTimeout        time.Duration `yaml:"readTimeout"`
	BatchSize          int           `yaml:"batchSize"`
	QueryTopic         string        `yaml:"queryTopic"`
	QueryFlushInterval time.Duration `yaml:"queryFlushInterval"`
}

// RedisConfig holds Redis connection and caching parameters.
type RedisConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	PoolSize int           `yaml:"poolSize"`
	CacheTTL time.Duration `yaml:"cacheTTL"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TracingConfig toggles phase span logging.
type TracingConfig struct {
	Enabled bool `yaml:"enabled"`
}

// MetricsConfig controls the Prometheus metrics server.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// RetryConfig controls connection retries against external services.
type RetryConfig struct {
	MaxAttempts  int           `yaml:"maxAttempts"`
	InitialDelay time.Duration `yaml:"initialDelay"`
	MaxDelay     time.Duration `yaml:"maxDelay"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. It returns a Config populated with sensible defaults for any
// missing values.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration with environment overrides
// applied. It is what Load returns for an empty path.
func Default() *Config {
	cfg := defaultConfig()
	applyEnvOverrides(cfg)
	return cfg
}

// Validate reports the first configuration value that cannot work.
func (c *Config) Validate() error {
	switch c.Dataset.Source {
	case SourceCSV, SourcePostgres, SourceKafka:
	default:
		return fmt.Errorf("invalid dataset.source %q (want csv, postgres or kafka)", c.Dataset.Source)
	}
	if c.Dataset.TitleColumn < 0 {
		return fmt.Errorf("invalid dataset.titleColumn %d: must not be negative", c.Dataset.TitleColumn)
	}
	if c.Tokenizer.MinLength < 1 {
		return fmt.Errorf("invalid tokenizer.minLength %d: must be at least 1", c.Tokenizer.MinLength)
	}
	if c.Dataset.Source == SourceKafka && c.Kafka.Topic == "" {
		return fmt.Errorf("kafka.topic is required when dataset.source is kafka")
	}
	return nil
}

// defaultConfig returns a Config for the fake-news CSV layout:
// comment rows start with '#' and the title lives in the fifth column.
func defaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Source:        SourceCSV,
			TitleColumn:   4,
			CommentPrefix: "#",
			Query:         "SELECT title FROM articles ORDER BY id",
		},
		Tokenizer: TokenizerConfig{
			MinLength: 3,
		},
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			RequestTimeout:  10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Postgres: PostgresConfig{
			Host:            "localhost",
			Port:            5432,
			Database:        "headlines",
			User:            "headlines",
			Password:        "localdev",
			SSLMode:         "disable",
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Kafka: KafkaConfig{
			Brokers:            []string{"localhost:9092"},
			Topic:              "article-titles",
			Partition:          0,
			ReadTimeout:        10 * time.Second,
			BatchSize:          100,
			QueryFlushInterval: 5 * time.Second,
		},
		Redis: RedisConfig{
			Enabled:  false,
			Addr:     "localhost:6379",
			PoolSize: 10,
			CacheTTL: 10 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
		},
		Retry: RetryConfig{
			MaxAttempts:  3,
			InitialDelay: 200 * time.Millisecond,
			MaxDelay:     5 * time.Second,
		},
	}
}

// applyEnvOverrides reads HA_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HA_DATASET_SOURCE"); v != "" {
		cfg.Dataset.Source = v
	}
	if v := os.Getenv("HA_DATASET_PATH"); v != "" {
		cfg.Dataset.Path = v
	}
	if v := os.Getenv("HA_DATASET_TITLE_COLUMN"); v != "" {
		if col, err := strconv.Atoi(v); err == nil {
			cfg.Dataset.TitleColumn = col
		}
	}
	if v := os.Getenv("HA_TOKENIZER_MIN_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Tokenizer.MinLength = n
		}
	}
	if v := os.Getenv("HA_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("HA_POSTGRES_HOST"); v != "" {
		cfg.Postgres.Host = v
	}
	if v := os.Getenv("HA_POSTGRES_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.Port = port
		}
	}
	if v := os.Getenv("HA_POSTGRES_DATABASE"); v != "" {
		cfg.Postgres.Database = v
	}
	if v := os.Getenv("HA_POSTGRES_USER"); v != "" {
		cfg.Postgres.User = v
	}
	if v := os.Getenv("HA_POSTGRES_PASSWORD"); v != "" {
		cfg.Postgres.Password = v
	}
	if v := os.Getenv("HA_KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("HA_KAFKA_TOPIC"); v != "" {
		cfg.Kafka.Topic = v
	}
	if v := os.Getenv("HA_KAFKA_QUERY_TOPIC"); v != "" {
		cfg.Kafka.QueryTopic = v
	}
	if v := os.Getenv("HA_REDIS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Redis.Enabled = enabled
		}
	}
	if v := os.Getenv("HA_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("HA_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("HA_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("HA_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("HA_METRICS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = enabled
		}
	}
}
