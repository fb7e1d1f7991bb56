package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type AuthConfig struct {
	JWTSecret   string        `yaml:"jwt_secret"`
	AdminSecret string        `yaml:"admin_secret"`
	TokenTTL    time.Duration `yaml:"token_ttl"`
}

type SynthesisConfig struct {
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"`
	Workers      int           `yaml:"workers"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

type StorageConfig struct {
	Bucket    string        `yaml:"bucket"`
	Region    string        `yaml:"region"`
	Endpoint  string        `yaml:"endpoint"` // optional, for S3-compatible stores
	AccessKey string        `yaml:"access_key"`
	SecretKey string        `yaml:"secret_key"`
	URLTTL    time.Duration `yaml:"url_ttl"`
}

type LimitsConfig struct {
	ClonePerHour      int `yaml:"clone_per_hour"`
	GeneratePerMinute int `yaml:"generate_per_minute"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	Synthesis SynthesisConfig `yaml:"synthesis"`
	Storage   StorageConfig   `yaml:"storage"`
	Limits    LimitsConfig    `yaml:"limits"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Auth.TokenTTL <= 0 {
		cfg.Auth.TokenTTL = 7 * 24 * time.Hour
	}
	if cfg.Synthesis.Timeout <= 0 {
		cfg.Synthesis.Timeout = 5 * time.Minute
	}
	if cfg.Synthesis.Workers <= 0 {
		cfg.Synthesis.Workers = 4
	}
	if cfg.Synthesis.PollInterval <= 0 {
		cfg.Synthesis.PollInterval = 500 * time.Millisecond
	}
	if cfg.Storage.URLTTL <= 0 {
		cfg.Storage.URLTTL = time.Hour
	}
	if cfg.Redis.TTL <= 0 {
		cfg.Redis.TTL = time.Hour
	}
	if cfg.Limits.ClonePerHour <= 0 {
		cfg.Limits.ClonePerHour = 10
	}
	if cfg.Limits.GeneratePerMinute <= 0 {
		cfg.Limits.GeneratePerMinute = 20
	}

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("auth.jwt_secret is required")
	}
	if cfg.Auth.AdminSecret == "" {
		return nil, errors.New("auth.admin_secret is required")
	}
	if cfg.Synthesis.BaseURL == "" && !dev {
		return nil, errors.New("synthesis.base_url is required outside dev mode")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
