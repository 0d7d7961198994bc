package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents the application configuration.
type Config struct {
	App        ApplicationConfig `yaml:"app"`
	Auth       AuthConfig        `yaml:"auth"`
	Moderation ModerationConfig  `yaml:"moderation"`
	Notify     NotifyConfig      `yaml:"notifications"`
	Seed       SeedConfig        `yaml:"seed"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return c.Notify.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
	// SimulatedLatencyMS delays every API request by the given number of
	// milliseconds. Cosmetic; zero disables it.
	SimulatedLatencyMS int `yaml:"simulated_latency_ms"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// SimulatedLatency returns the configured request delay.
func (c *HTTPConfig) SimulatedLatency() time.Duration {
	return time.Duration(c.SimulatedLatencyMS) * time.Millisecond
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.SimulatedLatencyMS, validation.Min(0)),
	)
}

// AuthConfig holds the single-admin credential and session token settings.
//
// Exactly one of AdminPassword (plain, hashed at startup, fine for local
// runs) or AdminPasswordHash (a bcrypt hash) must be set.
type AuthConfig struct {
	AdminEmail        string `yaml:"admin_email"`
	AdminName         string `yaml:"admin_name"`
	AdminPassword     string `yaml:"admin_password"`
	AdminPasswordHash string `yaml:"admin_password_hash"`
	JWTSecret         string `yaml:"jwt_secret"`
	SessionTTLMinutes int    `yaml:"session_ttl_minutes"`
}

// SessionTTL returns the session token lifetime.
func (c *AuthConfig) SessionTTL() time.Duration {
	if c.SessionTTLMinutes <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.AdminEmail, validation.Required),
		validation.Field(&c.JWTSecret, validation.Required),
		validation.Field(&c.SessionTTLMinutes, validation.Min(0)),
	); err != nil {
		return err
	}
	if c.AdminPassword == "" && c.AdminPasswordHash == "" {
		return fmt.Errorf("auth: one of admin_password or admin_password_hash is required")
	}
	if c.AdminPassword != "" && c.AdminPasswordHash != "" {
		return fmt.Errorf("auth: admin_password and admin_password_hash are mutually exclusive")
	}
	return nil
}

// ModerationConfig controls the status state machine.
//
// Strict restricts transitions to pending -> approved/rejected server-side.
// The default (false) matches the dashboard, where any status can be set and
// the UI merely hides decision buttons once a listing leaves pending.
type ModerationConfig struct {
	Strict bool `yaml:"strict"`
}

// NotifyConfig controls operator notification expiry.
type NotifyConfig struct {
	TTLSeconds int `yaml:"ttl_seconds"`
}

// TTL returns the notification auto-dismiss delay.
func (c *NotifyConfig) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.TTLSeconds) * time.Second
}

// Validate validates the notification configuration.
func (c *NotifyConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.TTLSeconds, validation.Min(0)),
	)
}

// SeedConfig points at an optional YAML file with the initial listing set.
// Empty means the built-in fixtures.
type SeedConfig struct {
	Path string `yaml:"path"`
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Auth: AuthConfig{
			AdminEmail:        "admin@example.com",
			AdminName:         "Admin User",
			SessionTTLMinutes: 24 * 60,
		},
		Notify: NotifyConfig{
			TTLSeconds: 5,
		},
	}
}
