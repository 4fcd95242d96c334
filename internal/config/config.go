// Package config loads the service configuration from environment
// variables following 12-factor principles.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the service configuration. All fields are populated from
// environment variables.
type Config struct {
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Token signing. Required; the service refuses to start without it.
	TokenSecret string `env:"AUTH_TOKEN_SECRET,required"`
	TokenIssuer string `env:"AUTH_TOKEN_ISSUER" envDefault:"cx-demo-auth"`

	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"24h"`
	HandoffTTL time.Duration `env:"AUTH_HANDOFF_TTL" envDefault:"5m"`

	// Credential store. Empty DATABASE_URL selects the seeded in-memory
	// demo store.
	DatabaseURL string `env:"DATABASE_URL"`

	// Abuse tracking. Empty REDIS_URL selects the in-process store.
	RedisURL string `env:"REDIS_URL"`

	ChallengeEnabled   bool          `env:"CHALLENGE_ENABLED" envDefault:"true"`
	ChallengeVerifyURL string        `env:"CHALLENGE_VERIFY_URL"`
	ChallengeSecret    string        `env:"CHALLENGE_SECRET"`
	ChallengeThreshold int           `env:"CHALLENGE_THRESHOLD" envDefault:"3"`
	ChallengeTimeout   time.Duration `env:"CHALLENGE_TIMEOUT" envDefault:"5s"`

	FailureWindow time.Duration `env:"FAILURE_WINDOW" envDefault:"15m"`

	// Comma-separated hostnames routed through the bridge login shape.
	BridgeHosts string `env:"HANDOFF_BRIDGE_HOSTS" envDefault:""`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// GetBridgeHosts parses the comma-separated bridge host list.
func (c *Config) GetBridgeHosts() []string {
	if c.BridgeHosts == "" {
		return nil
	}

	hosts := strings.Split(c.BridgeHosts, ",")
	result := make([]string, 0, len(hosts))
	for _, host := range hosts {
		trimmed := strings.TrimSpace(host)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Load parses environment variables and returns a Config. Returns an
// error when required variables are missing.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
