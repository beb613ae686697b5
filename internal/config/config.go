package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Config holds all configuration for the application.
// Values come from defaults, then the optional YAML file, then the environment.
type Config struct {
	// Server configuration
	ServerPort      string        `yaml:"server_port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	BaseURL         string        `yaml:"base_url"`

	// Storage configuration
	StorageDriver  string `yaml:"storage_driver"`
	SQLitePath     string `yaml:"sqlite_path"`
	MigrationsPath string `yaml:"migrations_path"`
	AutoMigrate    bool   `yaml:"auto_migrate"`
	SeedSampleData bool   `yaml:"seed_sample_data"`

	// Database configuration
	DBHost              string        `yaml:"db_host"`
	DBPort              int           `yaml:"db_port"`
	DBUser              string        `yaml:"db_user"`
	DBPassword          string        `yaml:"db_password"`
	DBName              string        `yaml:"db_name"`
	DBSSLMode           string        `yaml:"db_ssl_mode"`
	DBMaxConns          int32         `yaml:"db_max_conns"`
	DBMinConns          int32         `yaml:"db_min_conns"`
	DBMaxConnLifetime   time.Duration `yaml:"db_max_conn_lifetime"`
	DBMaxConnIdleTime   time.Duration `yaml:"db_max_conn_idle_time"`
	DBHealthCheckPeriod time.Duration `yaml:"db_health_check_period"`

	// Feed configuration
	FeedMaxItems     int `yaml:"feed_max_items"`
	FeedTTLMinutes   int `yaml:"feed_ttl_minutes"`
	StatsSubscribers int `yaml:"stats_subscribers"`

	// Redis feed cache; empty address disables caching
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	// Kafka lifecycle events; no brokers disables publishing
	KafkaBrokers []string `yaml:"kafka_brokers"`
	KafkaTopic   string   `yaml:"kafka_topic"`

	// Image hosting
	ImgBBAPIKey    string        `yaml:"imgbb_api_key"`
	ImgBBEndpoint  string        `yaml:"imgbb_endpoint"`
	ImgBBTimeout   time.Duration `yaml:"imgbb_timeout"`
	UploadMaxBytes int64         `yaml:"upload_max_bytes"`

	// Scheduler
	SchedulerEnabled    bool          `yaml:"scheduler_enabled"`
	SchedulerSpec       string        `yaml:"scheduler_spec"`
	SchedulerJobTimeout time.Duration `yaml:"scheduler_job_timeout"`

	// HTTP edge; a zero RPS disables rate limiting
	RateLimitRPS       float64  `yaml:"rate_limit_rps"`
	RateLimitBurst     int      `yaml:"rate_limit_burst"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`

	// Logging configuration
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// FeedTTL returns the channel TTL and cache expiration.
func (c *Config) FeedTTL() time.Duration {
	return time.Duration(c.FeedTTLMinutes) * time.Minute
}

func defaults() *Config {
	return &Config{
		ServerPort:          "5000",
		ReadTimeout:         30 * time.Second,
		WriteTimeout:        30 * time.Second,
		IdleTimeout:         120 * time.Second,
		ShutdownTimeout:     10 * time.Second,
		BaseURL:             "http://localhost:5000",
		StorageDriver:       StorageMemory,
		SQLitePath:          "data/newshub.db",
		MigrationsPath:      "migrations",
		AutoMigrate:         true,
		SeedSampleData:      true,
		DBHost:              "localhost",
		DBPort:              5432,
		DBUser:              "postgres",
		DBPassword:          "postgres",
		DBName:              "newshub",
		DBSSLMode:           "disable",
		DBMaxConns:          25,
		DBMinConns:          5,
		DBMaxConnLifetime:   time.Hour,
		DBMaxConnIdleTime:   30 * time.Minute,
		DBHealthCheckPeriod: time.Minute,
		FeedMaxItems:        50,
		FeedTTLMinutes:      60,
		StatsSubscribers:    156,
		KafkaTopic:          "newshub.articles",
		ImgBBEndpoint:       "https://api.imgbb.com/1/upload",
		ImgBBTimeout:        30 * time.Second,
		UploadMaxBytes:      5 << 20,
		SchedulerEnabled:    true,
		SchedulerSpec:       "@every 1m",
		SchedulerJobTimeout: 30 * time.Second,
		RateLimitRPS:        20,
		RateLimitBurst:      40,
		CORSAllowedOrigins:  []string{"*"},
		LogLevel:            "info",
		LogFormat:           "json",
	}
}

// Load loads configuration from CONFIG_FILE (default config.yaml, skipped when
// missing) and environment variables.
func Load() (*Config, error) {
	cfg := defaults()

	if err := cfg.loadFile(getEnv("CONFIG_FILE", "config.yaml")); err != nil {
		return nil, err
	}
	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.ServerPort = getEnv("SERVER_PORT", c.ServerPort)
	c.ReadTimeout = getEnvDuration("HTTP_READ_TIMEOUT", c.ReadTimeout)
	c.WriteTimeout = getEnvDuration("HTTP_WRITE_TIMEOUT", c.WriteTimeout)
	c.IdleTimeout = getEnvDuration("HTTP_IDLE_TIMEOUT", c.IdleTimeout)
	c.ShutdownTimeout = getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", c.ShutdownTimeout)
	c.BaseURL = getEnv("BASE_URL", c.BaseURL)

	c.StorageDriver = strings.ToLower(getEnv("STORAGE_DRIVER", c.StorageDriver))
	c.SQLitePath = getEnv("SQLITE_PATH", c.SQLitePath)
	c.MigrationsPath = getEnv("MIGRATIONS_PATH", c.MigrationsPath)
	c.AutoMigrate = getEnvBool("AUTO_MIGRATE", c.AutoMigrate)
	c.SeedSampleData = getEnvBool("SEED_SAMPLE_DATA", c.SeedSampleData)

	c.DBHost = getEnv("DB_HOST", c.DBHost)
	c.DBPort = getEnvInt("DB_PORT", c.DBPort)
	c.DBUser = getEnv("DB_USER", c.DBUser)
	c.DBPassword = getEnv("DB_PASSWORD", c.DBPassword)
	c.DBName = getEnv("DB_NAME", c.DBName)
	c.DBSSLMode = getEnv("DB_SSL_MODE", c.DBSSLMode)
	c.DBMaxConns = int32(getEnvInt("DB_MAX_CONNS", int(c.DBMaxConns)))
	c.DBMinConns = int32(getEnvInt("DB_MIN_CONNS", int(c.DBMinConns)))
	c.DBMaxConnLifetime = getEnvDuration("DB_MAX_CONN_LIFETIME", c.DBMaxConnLifetime)
	c.DBMaxConnIdleTime = getEnvDuration("DB_MAX_CONN_IDLE_TIME", c.DBMaxConnIdleTime)
	c.DBHealthCheckPeriod = getEnvDuration("DB_HEALTH_CHECK_PERIOD", c.DBHealthCheckPeriod)

	c.FeedMaxItems = getEnvInt("FEED_MAX_ITEMS", c.FeedMaxItems)
	c.FeedTTLMinutes = getEnvInt("FEED_TTL_MINUTES", c.FeedTTLMinutes)
	c.StatsSubscribers = getEnvInt("STATS_SUBSCRIBERS", c.StatsSubscribers)

	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)
	c.RedisPassword = getEnv("REDIS_PASSWORD", c.RedisPassword)
	c.RedisDB = getEnvInt("REDIS_DB", c.RedisDB)

	c.KafkaBrokers = getEnvList("KAFKA_BROKERS", c.KafkaBrokers)
	c.KafkaTopic = getEnv("KAFKA_TOPIC", c.KafkaTopic)

	c.ImgBBAPIKey = getEnv("IMGBB_API_KEY", c.ImgBBAPIKey)
	c.ImgBBEndpoint = getEnv("IMGBB_ENDPOINT", c.ImgBBEndpoint)
	c.ImgBBTimeout = getEnvDuration("IMGBB_TIMEOUT", c.ImgBBTimeout)
	c.UploadMaxBytes = int64(getEnvInt("UPLOAD_MAX_BYTES", int(c.UploadMaxBytes)))

	c.SchedulerEnabled = getEnvBool("SCHEDULER_ENABLED", c.SchedulerEnabled)
	c.SchedulerSpec = getEnv("SCHEDULER_SPEC", c.SchedulerSpec)
	c.SchedulerJobTimeout = getEnvDuration("SCHEDULER_JOB_TIMEOUT", c.SchedulerJobTimeout)

	c.RateLimitRPS = getEnvFloat("RATE_LIMIT_RPS", c.RateLimitRPS)
	c.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", c.RateLimitBurst)
	c.CORSAllowedOrigins = getEnvList("CORS_ALLOWED_ORIGINS", c.CORSAllowedOrigins)

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
}

// validate validates the configuration.
func (c *Config) validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("BASE_URL is required")
	}

	switch c.StorageDriver {
	case StorageMemory:
	case StorageSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite driver")
		}
	case StoragePostgres:
		if c.DBHost == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.DBUser == "" {
			return fmt.Errorf("DB_USER is required")
		}
		if c.DBName == "" {
			return fmt.Errorf("DB_NAME is required")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of memory, postgres, sqlite (got %q)", c.StorageDriver)
	}

	if c.FeedMaxItems < 1 {
		return fmt.Errorf("FEED_MAX_ITEMS must be at least 1")
	}
	if c.FeedTTLMinutes < 0 {
		return fmt.Errorf("FEED_TTL_MINUTES must not be negative")
	}
	if c.UploadMaxBytes < 1 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be at least 1")
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		return fmt.Errorf("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}
	if c.SchedulerEnabled && c.SchedulerSpec == "" {
		return fmt.Errorf("SCHEDULER_SPEC is required when the scheduler is enabled")
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative")
	}
	return nil
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as int with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvList splits a comma-separated variable, dropping blank entries.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
