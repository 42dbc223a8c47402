// Package config loads application settings from configs/config.yml,
// .env.local and BOOKS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix = "BOOKS"

	// Used outside release mode when no secret is configured.
	devSessionSecret = "dev-session-secret-change-me"
	devSigningKey    = "dev-signing-key-change-me"
)

type Config struct {
	Port    string `mapstructure:"port"`
	GinMode string `mapstructure:"gin_mode"`
	// Proxies whose X-Forwarded-For is believed; empty trusts none.
	TrustedProxies []string `mapstructure:"trusted_proxies"`

	Log     LogConfig     `mapstructure:"log"`
	DB      DBConfig      `mapstructure:"db"`
	Session SessionConfig `mapstructure:"session"`
	JWT     JWTConfig     `mapstructure:"jwt"`
	CORS    CORSConfig    `mapstructure:"cors"`
	Seed    SeedConfig    `mapstructure:"seed"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type SessionConfig struct {
	Name   string        `mapstructure:"name"`
	Secret string        `mapstructure:"secret"`
	MaxAge time.Duration `mapstructure:"max_age"`
}

type JWTConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TTL        time.Duration `mapstructure:"ttl"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type SeedConfig struct {
	Demo bool `mapstructure:"demo"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("trusted_proxies", []string{})
	v.SetDefault("db.path", "app.db")
	v.SetDefault("session.name", "books_session")
	v.SetDefault("session.secret", "")
	v.SetDefault("session.max_age", 12*time.Hour)
	v.SetDefault("jwt.signing_key", "")
	v.SetDefault("jwt.ttl", time.Hour)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("seed.demo", false)
}

// Load reads configuration. configDirs are searched for config.yml in order;
// a missing file is not an error. Environment variables override the file,
// e.g. BOOKS_DB_PATH for db.path.
func Load(configDirs ...string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	for _, dir := range configDirs {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDevSecrets()
	return &cfg, nil
}

// Validate checks settings that must be explicit in release mode.
func (c *Config) Validate() error {
	if c.Session.MaxAge < 0 {
		return errors.New("session.max_age must not be negative")
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	if c.JWT.TTL <= 0 {
		return errors.New("jwt.ttl must be positive")
	}
	if c.GinMode == "release" {
		if c.Session.Secret == "" {
			return errors.New("session.secret is required in release mode")
		}
		if c.JWT.SigningKey == "" {
			return errors.New("jwt.signing_key is required in release mode")
		}
	}
	return nil
}

// UsingDevSecrets reports whether built-in development secrets are in effect.
func (c *Config) UsingDevSecrets() bool {
	return c.Session.Secret == devSessionSecret || c.JWT.SigningKey == devSigningKey
}

func (c *Config) applyDevSecrets() {
	if c.Session.Secret == "" {
		c.Session.Secret = devSessionSecret
	}
	if c.JWT.SigningKey == "" {
		c.JWT.SigningKey = devSigningKey
	}
}

// loadEnvFile loads .env.local from the working directory or its parent.
func loadEnvFile() {
	if err := godotenv.Load(".env.local"); err == nil {
		return
	}
	cwd, err := os.Getwd()
	if err != nil {
		return
	}
	parent := filepath.Dir(cwd)
	if parent == "" || parent == cwd {
		return
	}
	_ = godotenv.Load(filepath.Join(parent, ".env.local"))
}
