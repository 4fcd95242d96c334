package cxauth

import (
	"errors"
	"net/url"
	"time"
)

// Config holds all engine tuning. Populate it once, pass it to
// [Builder.WithConfig], and treat it as immutable afterwards; Build keeps
// a deep clone so later mutation of the caller's copy has no effect.
type Config struct {
	Token     TokenConfig
	Password  PasswordConfig
	Risk      RiskConfig
	Challenge ChallengeConfig
	Store     StoreConfig
	Handoff   HandoffConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
}

// PasswordConfig holds the bcrypt work factor used when hashing new demo
// seeds. Verification reads the cost from the stored hash.
type PasswordConfig struct {
	Cost int
}

// TokenConfig controls token minting and verification. Secret is the one
// process-wide signing secret; its absence is a fatal configuration error
// at Build, never a silent no-op.
type TokenConfig struct {
	Secret     []byte
	Issuer     string
	SessionTTL time.Duration
	HandoffTTL time.Duration

	// Now overrides the token clock; nil means time.Now. Tests use it to
	// cross expiry boundaries without sleeping.
	Now func() time.Time
}

// RiskConfig controls the step-up decision.
type RiskConfig struct {
	// ChallengeThreshold is the failure count at which a challenge is
	// demanded. A count equal to the threshold requires a challenge.
	ChallengeThreshold int
	// FailureWindow is the abuse-record reset window.
	FailureWindow time.Duration
}

// ChallengeConfig configures the external challenge verification
// provider. When Enabled is false the risk gate still counts failures but
// never demands a challenge.
type ChallengeConfig struct {
	Enabled   bool
	VerifyURL string
	Secret    string
	Timeout   time.Duration
}

// StoreConfig bounds credential store access.
type StoreConfig struct {
	LookupTimeout time.Duration
}

// HandoffConfig controls partner handoff minting and URL construction.
type HandoffConfig struct {
	// BridgeHosts lists partner hosts that require the sso-login bridge
	// hop; all other partner URLs get the token appended directly.
	BridgeHosts []string
	// AnonymousEmail and AnonymousName form the fallback identity used
	// when a handoff is minted without an authenticated caller.
	AnonymousEmail string
	AnonymousName  string
}

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	// DropIfFull drops events under backpressure instead of blocking the
	// request path. Dropped counts are observable via Engine.AuditDropped.
	DropIfFull bool
}

// MetricsConfig controls the in-process metrics system.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns the configuration a fresh [Builder] starts from.
// The signing secret is intentionally absent; callers must set it.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Token: TokenConfig{
			Issuer:     "cx-demo-auth",
			SessionTTL: 24 * time.Hour,
			HandoffTTL: 5 * time.Minute,
		},
		Risk: RiskConfig{
			ChallengeThreshold: 3,
			FailureWindow:      15 * time.Minute,
		},
		Challenge: ChallengeConfig{
			Enabled: true,
			Timeout: 5 * time.Second,
		},
		Store: StoreConfig{
			LookupTimeout: 3 * time.Second,
		},
		Handoff: HandoffConfig{
			AnonymousEmail: "demo.visitor@cx-demo.example",
			AnonymousName:  "Demo Visitor",
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate reports the first configuration problem found. A missing
// signing secret is always fatal; everything else guards against
// self-defeating tuning.
func (c *Config) Validate() error {
	if len(c.Token.Secret) == 0 {
		return ErrSigningSecretMissing
	}
	if c.Token.SessionTTL <= 0 {
		return errors.New("session token TTL must be positive")
	}
	if c.Token.HandoffTTL <= 0 {
		return errors.New("handoff token TTL must be positive")
	}
	if c.Token.HandoffTTL > c.Token.SessionTTL {
		return errors.New("handoff TTL must not exceed session TTL")
	}
	if c.Risk.ChallengeThreshold <= 0 {
		return errors.New("challenge threshold must be positive")
	}
	if c.Risk.FailureWindow <= 0 {
		return errors.New("failure window must be positive")
	}
	if c.Challenge.Enabled && c.Challenge.Timeout <= 0 {
		return errors.New("challenge timeout must be positive")
	}
	if c.Store.LookupTimeout <= 0 {
		return errors.New("store lookup timeout must be positive")
	}
	for _, host := range c.Handoff.BridgeHosts {
		if host == "" {
			return errors.New("bridge host list contains empty host")
		}
		if _, err := url.Parse("https://" + host); err != nil {
			return errors.New("bridge host list contains invalid host")
		}
	}
	return nil
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Token.Secret = cloneBytes(cfg.Token.Secret)
	if cfg.Handoff.BridgeHosts != nil {
		out.Handoff.BridgeHosts = append([]string(nil), cfg.Handoff.BridgeHosts...)
	}
	return out
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
