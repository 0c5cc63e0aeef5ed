// Package config resolves carebot settings from defaults, an optional YAML
// file, a .env file and the process environment, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	StoreRedis  = "redis"
	StoreMemory = "memory"
	StoreFile   = "file"
)

// Config holds the resolved runtime configuration.
type Config struct {
	Port               string        `yaml:"port"`
	Store              string        `yaml:"store"`
	RedisURL           string        `yaml:"redis_url"`
	DataDir            string        `yaml:"data_dir"`
	ContextPrefix      string        `yaml:"context_prefix"`
	ContextTTL         time.Duration `yaml:"context_ttl"`
	DistributedLock    bool          `yaml:"distributed_lock"`
	LockTTL            time.Duration `yaml:"lock_ttl"`
	JWTSecret          string        `yaml:"jwt_secret"`
	LogLevel           string        `yaml:"log_level"`
	LogFormat          string        `yaml:"log_format"`
	CatalogPath        string        `yaml:"catalog_path"`
	MaxInputSize       int           `yaml:"max_input_size"`
	RateLimitPerMinute int           `yaml:"rate_limit_per_minute"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port:          "8000",
		Store:         StoreRedis,
		ContextPrefix: "context:",
		LockTTL:       30 * time.Second,
		JWTSecret:     "secret",
		LogLevel:      "info",
		LogFormat:     "text",
		MaxInputSize:  4096,
	}
}

// Load builds a Config. path names an optional YAML file; envFiles are passed
// to godotenv, which reads ".env" when none are given. Missing env files are
// ignored. Variables already set in the environment win over env files.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(envFiles...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
		slog.Debug("No .env file loaded", "error", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	envString("PORT", &c.Port)
	envString("STORE", &c.Store)
	envString("REDIS_URL", &c.RedisURL)
	envString("DATA_DIR", &c.DataDir)
	envString("CONTEXT_PREFIX", &c.ContextPrefix)
	envString("JWT_SECRET", &c.JWTSecret)
	envString("LOG_LEVEL", &c.LogLevel)
	envString("LOG_FORMAT", &c.LogFormat)
	envString("CATALOG_PATH", &c.CatalogPath)

	return errors.Join(
		envDuration("CONTEXT_TTL", &c.ContextTTL),
		envDuration("LOCK_TTL", &c.LockTTL),
		envInt("MAX_INPUT_SIZE", &c.MaxInputSize),
		envInt("RATE_LIMIT_PER_MINUTE", &c.RateLimitPerMinute),
		envBool("DISTRIBUTED_LOCK", &c.DistributedLock),
	)
}

// Validate checks that the configuration can start a server.
func (c *Config) Validate() error {
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	switch c.Store {
	case StoreRedis:
		if c.RedisURL == "" {
			return errors.New("redis configuration not found: set REDIS_URL or use STORE=memory")
		}
	case StoreMemory, StoreFile:
		if c.DistributedLock {
			return errors.New("DISTRIBUTED_LOCK requires STORE=redis")
		}
	default:
		return fmt.Errorf("unknown store %q (want %s, %s or %s)", c.Store, StoreRedis, StoreMemory, StoreFile)
	}
	if c.Port == "" {
		return errors.New("port must not be empty")
	}
	if c.ContextTTL < 0 || c.LockTTL < 0 {
		return errors.New("durations must not be negative")
	}
	if c.MaxInputSize < 0 || c.RateLimitPerMinute < 0 {
		return errors.New("limits must not be negative")
	}
	return nil
}

func envString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: invalid integer %q", key, v)
	}
	*dst = n
	return nil
}

func envDuration(key string, dst *time.Duration) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: invalid duration %q", key, v)
	}
	*dst = d
	return nil
}

// envBool accepts true/1/yes/on and false/0/no/off (case-insensitive).
func envBool(key string, dst *bool) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "on":
		*dst = true
	case "false", "0", "no", "off":
		*dst = false
	default:
		return fmt.Errorf("%s: invalid boolean %q", key, v)
	}
	return nil
}
