package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points CONFIG_FILE at a missing file and clears every variable Load reads.
func isolate(t *testing.T) {
	t.Helper()
	for _, env := range []string{
		"SERVER_PORT", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_IDLE_TIMEOUT", "HTTP_SHUTDOWN_TIMEOUT",
		"BASE_URL", "STORAGE_DRIVER", "SQLITE_PATH", "MIGRATIONS_PATH", "AUTO_MIGRATE", "SEED_SAMPLE_DATA",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL_MODE", "DB_MAX_CONNS", "DB_MIN_CONNS",
		"DB_MAX_CONN_LIFETIME", "DB_MAX_CONN_IDLE_TIME", "DB_HEALTH_CHECK_PERIOD",
		"FEED_MAX_ITEMS", "FEED_TTL_MINUTES", "STATS_SUBSCRIBERS",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "KAFKA_BROKERS", "KAFKA_TOPIC",
		"IMGBB_API_KEY", "IMGBB_ENDPOINT", "IMGBB_TIMEOUT", "UPLOAD_MAX_BYTES",
		"SCHEDULER_ENABLED", "SCHEDULER_SPEC", "SCHEDULER_JOB_TIMEOUT",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(env, "")
	}
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
}

func TestLoad(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		isolate(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if cfg.ServerPort != "5000" {
			t.Errorf("ServerPort = %v, want 5000", cfg.ServerPort)
		}
		if cfg.StorageDriver != StorageMemory {
			t.Errorf("StorageDriver = %v, want memory", cfg.StorageDriver)
		}
		if cfg.FeedMaxItems != 50 {
			t.Errorf("FeedMaxItems = %v, want 50", cfg.FeedMaxItems)
		}
		if cfg.FeedTTL() != time.Hour {
			t.Errorf("FeedTTL = %v, want 1h", cfg.FeedTTL())
		}
		if cfg.StatsSubscribers != 156 {
			t.Errorf("StatsSubscribers = %v, want 156", cfg.StatsSubscribers)
		}
		if cfg.UploadMaxBytes != 5*1024*1024 {
			t.Errorf("UploadMaxBytes = %v, want 5 MiB", cfg.UploadMaxBytes)
		}
		if cfg.SchedulerSpec != "@every 1m" {
			t.Errorf("SchedulerSpec = %v, want @every 1m", cfg.SchedulerSpec)
		}
		if cfg.RedisAddr != "" || len(cfg.KafkaBrokers) != 0 {
			t.Errorf("cache and events should be disabled by default")
		}
	})

	t.Run("duration fields have correct defaults", func(t *testing.T) {
		isolate(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, time.Hour, cfg.DBMaxConnLifetime)
		assert.Equal(t, 30*time.Minute, cfg.DBMaxConnIdleTime)
		assert.Equal(t, time.Minute, cfg.DBHealthCheckPeriod)
		assert.Equal(t, 30*time.Second, cfg.ImgBBTimeout)
	})

	t.Run("custom values from environment", func(t *testing.T) {
		isolate(t)
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("BASE_URL", "https://news.example.com")
		t.Setenv("STORAGE_DRIVER", "Postgres")
		t.Setenv("DB_HOST", "db.example.com")
		t.Setenv("DB_PORT", "5433")
		t.Setenv("DB_MAX_CONNS", "50")
		t.Setenv("FEED_MAX_ITEMS", "20")
		t.Setenv("FEED_TTL_MINUTES", "15")
		t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://editor.example.com")
		t.Setenv("RATE_LIMIT_RPS", "2.5")
		t.Setenv("SCHEDULER_ENABLED", "false")
		t.Setenv("IMGBB_TIMEOUT", "5s")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.ServerPort)
		assert.Equal(t, "https://news.example.com", cfg.BaseURL)
		assert.Equal(t, StoragePostgres, cfg.StorageDriver)
		assert.Equal(t, "db.example.com", cfg.DBHost)
		assert.Equal(t, 5433, cfg.DBPort)
		assert.Equal(t, int32(50), cfg.DBMaxConns)
		assert.Equal(t, 20, cfg.FeedMaxItems)
		assert.Equal(t, 15*time.Minute, cfg.FeedTTL())
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
		assert.Equal(t, []string{"https://editor.example.com"}, cfg.CORSAllowedOrigins)
		assert.Equal(t, 2.5, cfg.RateLimitRPS)
		assert.False(t, cfg.SchedulerEnabled)
		assert.Equal(t, 5*time.Second, cfg.ImgBBTimeout)
	})

	t.Run("malformed numbers fall back to defaults", func(t *testing.T) {
		isolate(t)
		t.Setenv("DB_PORT", "not-a-port")
		t.Setenv("AUTO_MIGRATE", "maybe")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 5432, cfg.DBPort)
		assert.True(t, cfg.AutoMigrate)
	})
}

func TestLoad_YAMLFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server_port: "7000"
storage_driver: sqlite
sqlite_path: /var/lib/newshub/articles.db
feed_ttl_minutes: 5
redis_addr: redis:6379
read_timeout: 45s
kafka_brokers:
  - kafka:9092
cors_allowed_origins:
  - https://a.example.com
  - https://b.example.com
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SERVER_PORT", "7001")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7001", cfg.ServerPort, "environment overrides the file")
	assert.Equal(t, StorageSQLite, cfg.StorageDriver)
	assert.Equal(t, "/var/lib/newshub/articles.db", cfg.SQLitePath)
	assert.Equal(t, 5*time.Minute, cfg.FeedTTL())
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 45*time.Second, cfg.ReadTimeout)
	assert.Equal(t, []string{"kafka:9092"}, cfg.KafkaBrokers)
	assert.Len(t, cfg.CORSAllowedOrigins, 2)
	assert.Equal(t, 50, cfg.FeedMaxItems, "keys absent from the file keep their defaults")
}

func TestLoad_InvalidYAML(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_port: [unterminated"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	_, err := Load()
	assert.ErrorContains(t, err, "parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"unknown driver", func(c *Config) { c.StorageDriver = "mongo" }, "STORAGE_DRIVER"},
		{"sqlite without path", func(c *Config) { c.StorageDriver = StorageSQLite; c.SQLitePath = "" }, "SQLITE_PATH"},
		{"postgres without host", func(c *Config) { c.StorageDriver = StoragePostgres; c.DBHost = "" }, "DB_HOST"},
		{"memory ignores db settings", func(c *Config) { c.DBHost = "" }, ""},
		{"zero feed items", func(c *Config) { c.FeedMaxItems = 0 }, "FEED_MAX_ITEMS"},
		{"negative ttl", func(c *Config) { c.FeedTTLMinutes = -1 }, "FEED_TTL_MINUTES"},
		{"zero upload limit", func(c *Config) { c.UploadMaxBytes = 0 }, "UPLOAD_MAX_BYTES"},
		{"brokers without topic", func(c *Config) { c.KafkaBrokers = []string{"k:9092"}; c.KafkaTopic = "" }, "KAFKA_TOPIC"},
		{"scheduler without spec", func(c *Config) { c.SchedulerSpec = "" }, "SCHEDULER_SPEC"},
		{"disabled scheduler without spec", func(c *Config) { c.SchedulerEnabled = false; c.SchedulerSpec = "" }, ""},
		{"negative rate limit", func(c *Config) { c.RateLimitRPS = -1 }, "RATE_LIMIT"},
		{"missing port", func(c *Config) { c.ServerPort = "" }, "SERVER_PORT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
