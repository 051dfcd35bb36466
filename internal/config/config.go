package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	JWT       JWTConfig       `yaml:"jwt"`
	Log       LogConfig       `yaml:"log"`
	Store     StoreConfig     `yaml:"store"`
	Feed      FeedConfig      `yaml:"feed"`
	Latency   LatencyConfig   `yaml:"latency"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `yaml:"level"`
}

// StoreConfig holds the local storage slot configuration
type StoreConfig struct {
	Path string `yaml:"path"`
}

// FeedConfig holds discovery feed tuning
type FeedConfig struct {
	MatchRate      float64 `yaml:"match_rate"`       // like match probability
	AdvanceDelayMS int     `yaml:"advance_delay_ms"` // card transition delay hint
}

// LatencyConfig holds the simulated network latencies in milliseconds.
// These stand in for real backend calls; tests zero them out.
type LatencyConfig struct {
	SignupMS int `yaml:"signup_ms"`
	LoginMS  int `yaml:"login_ms"`
	VerifyMS int `yaml:"verify_ms"`
}

// RateLimitConfig holds per-IP rate limiting for public auth routes
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// Load reads configuration from a YAML file, then applies environment
// overrides. A .env file is loaded first if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SERVER_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWT.Secret = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("STORE_PATH"); v != "" {
		c.Store.Path = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Store.Path == "" {
		c.Store.Path = "matchup-store.json"
	}
	if c.Feed.MatchRate == 0 {
		c.Feed.MatchRate = 0.3
	}
	if c.Feed.AdvanceDelayMS == 0 {
		c.Feed.AdvanceDelayMS = 600
	}
	if c.Latency.SignupMS == 0 {
		c.Latency.SignupMS = 1000
	}
	if c.Latency.LoginMS == 0 {
		c.Latency.LoginMS = 1000
	}
	if c.Latency.VerifyMS == 0 {
		c.Latency.VerifyMS = 2000
	}
	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 5
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 10
	}
}
