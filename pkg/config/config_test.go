package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, SourceCSV, cfg.Dataset.Source)
	require.Equal(t, 4, cfg.Dataset.TitleColumn)
	require.Equal(t, "#", cfg.Dataset.CommentPrefix)
	require.Equal(t, 3, cfg.Tokenizer.MinLength)
	require.False(t, cfg.Redis.Enabled)
	require.Empty(t, cfg.Kafka.QueryTopic)
	require.Equal(t, 5*time.Second, cfg.Kafka.QueryFlushInterval)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
dataset:
  path: /data/fake.csv
  titleColumn: 2
tokenizer:
  minLength: 4
redis:
  enabled: true
  cacheTTL: 30s
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "/data/fake.csv", cfg.Dataset.Path)
	require.Equal(t, 2, cfg.Dataset.TitleColumn)
	require.Equal(t, "#", cfg.Dataset.CommentPrefix, "unset keys keep defaults")
	require.Equal(t, 4, cfg.Tokenizer.MinLength)
	require.True(t, cfg.Redis.Enabled)
	require.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HA_DATASET_SOURCE", "kafka")
	t.Setenv("HA_KAFKA_BROKERS", "a:9092,b:9092")
	t.Setenv("HA_DATASET_TITLE_COLUMN", "7")
	t.Setenv("HA_REDIS_ENABLED", "true")
	t.Setenv("HA_KAFKA_QUERY_TOPIC", "threshold-queries")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, SourceKafka, cfg.Dataset.Source)
	require.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	require.Equal(t, 7, cfg.Dataset.TitleColumn)
	require.True(t, cfg.Redis.Enabled)
	require.Equal(t, "threshold-queries", cfg.Kafka.QueryTopic)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown source", func(c *Config) { c.Dataset.Source = "excel" }},
		{"negative column", func(c *Config) { c.Dataset.TitleColumn = -1 }},
		{"zero min length", func(c *Config) { c.Tokenizer.MinLength = 0 }},
		{"kafka without topic", func(c *Config) {
			c.Dataset.Source = SourceKafka
			c.Kafka.Topic = ""
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}

	require.NoError(t, defaultConfig().Validate())
}
