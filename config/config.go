// Package config loads the service configuration from the environment.
//
// Variable names are the keys below in upper case (PORT, DATABASE_URL, ...).
// A .env file is loaded by main before Load is called.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Port               int    `koanf:"port" validate:"required,min=1,max=65535"`
	DatabaseURL        string `koanf:"database_url" validate:"required"`
	DatabaseReplicaURL string `koanf:"database_replica_url"`
	DBMaxOpenConns     int    `koanf:"db_max_open_conns" validate:"min=0"`
	DBMaxIdleConns     int    `koanf:"db_max_idle_conns" validate:"min=0"`
	AutoMigrate        bool   `koanf:"auto_migrate"`

	ReadTimeoutSeconds     int `koanf:"read_timeout_seconds" validate:"min=0"`
	WriteTimeoutSeconds    int `koanf:"write_timeout_seconds" validate:"min=0"`
	IdleTimeoutSeconds     int `koanf:"idle_timeout_seconds" validate:"min=0"`
	ShutdownTimeoutSeconds int `koanf:"shutdown_timeout_seconds" validate:"min=0"`

	LogLevel  string `koanf:"log_level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	LogFormat string `koanf:"log_format" validate:"oneof=json console"`

	ResendAPIKey       string `koanf:"resend_api_key"`
	ResendFromEmail    string `koanf:"resend_from_email"`
	ContactNotifyEmail string `koanf:"contact_notify_email" validate:"omitempty,email"`
}

// Defaults used when a variable is not set.
var defaults = map[string]any{
	"port":                     3001,
	"db_max_open_conns":        10,
	"db_max_idle_conns":        5,
	"auto_migrate":             true,
	"read_timeout_seconds":     180,
	"write_timeout_seconds":    180,
	"idle_timeout_seconds":     180,
	"shutdown_timeout_seconds": 30,
	"log_level":                "info",
	"log_format":               "json",
}

// Load reads the process environment.
func Load() (*Config, error) {
	return load(env.Provider("", ".", strings.ToLower))
}

func load(provider koanf.Provider) (*Config, error) {
	k := koanf.New(".")

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("set default %s: %w", key, err)
		}
	}
	if err := k.Load(provider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Addr is the listen address. The service always binds every interface.
func (c *Config) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}

func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutSeconds) * time.Second
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// ContactNotificationsEnabled reports whether every Resend setting is present.
func (c *Config) ContactNotificationsEnabled() bool {
	return c.ResendAPIKey != "" && c.ResendFromEmail != "" && c.ContactNotifyEmail != ""
}
