package cxauth

import (
	"errors"

	"github.com/Kevin-Shelton/verizon-cx-demo-sub000/internal/challenge"
	"github.com/Kevin-Shelton/verizon-cx-demo-sub000/internal/limiters"
	"github.com/Kevin-Shelton/verizon-cx-demo-sub000/password"
	"github.com/Kevin-Shelton/verizon-cx-demo-sub000/token"
	"github.com/redis/go-redis/v9"
)

// Builder assembles an [Engine]. Configure it, then call [Builder.Build]
// exactly once.
type Builder struct {
	config Config
	redis  *redis.Client

	credentials CredentialStore
	attempts    AttemptStore
	verifier    ChallengeVerifier
	auditSink   AuditSink

	built bool
}

// New returns a Builder preloaded with defaults.
func New() *Builder {
	return &Builder{config: defaultConfig()}
}

// WithConfig replaces the configuration. The builder keeps a deep clone.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithCredentialStore injects the mandatory credential read adapter.
func (b *Builder) WithCredentialStore(store CredentialStore) *Builder {
	b.credentials = store
	return b
}

// WithAttemptStore overrides the abuse-tracking backend. Without it,
// Build uses the Redis client when one is set, else an in-process store.
func (b *Builder) WithAttemptStore(store AttemptStore) *Builder {
	b.attempts = store
	return b
}

// WithRedis backs the attempt store with Redis so the failure window is
// shared across processes.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithChallengeVerifier overrides the step-up verification provider.
// Without it, Build constructs the HTTP provider from Config.Challenge.
func (b *Builder) WithChallengeVerifier(v ChallengeVerifier) *Builder {
	b.verifier = v
	return b
}

// WithAuditSink sets the destination for audit events.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// Build validates the configuration and wires the engine. A missing
// signing secret fails here, before the service ever accepts a request.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if b.credentials == nil {
		return nil, errors.New("credential store required")
	}

	attempts := b.attempts
	if attempts == nil {
		if b.redis != nil {
			attempts = limiters.NewRedisStore(b.redis, cfg.Risk.FailureWindow)
		} else {
			attempts = limiters.NewMemoryStore(cfg.Risk.FailureWindow)
		}
	}

	verifier := b.verifier
	if verifier == nil && cfg.Challenge.Enabled {
		if cfg.Challenge.VerifyURL == "" {
			return nil, errors.New("challenge verify URL required when challenge is enabled")
		}
		provider, err := challenge.NewProvider(challenge.Config{
			VerifyURL: cfg.Challenge.VerifyURL,
			Secret:    cfg.Challenge.Secret,
			Timeout:   cfg.Challenge.Timeout,
		})
		if err != nil {
			return nil, err
		}
		verifier = provider
	}

	hasher, err := password.NewHasher(password.Config{Cost: cfg.Password.Cost})
	if err != nil {
		return nil, err
	}

	tokens, err := token.NewManager(token.Config{
		Secret:     cloneBytes(cfg.Token.Secret),
		Issuer:     cfg.Token.Issuer,
		SessionTTL: cfg.Token.SessionTTL,
		HandoffTTL: cfg.Token.HandoffTTL,
		Now:        cfg.Token.Now,
	})
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		config:       cfg,
		credentials:  b.credentials,
		attempts:     attempts,
		verifier:     verifier,
		passwordHash: hasher,
		tokens:       tokens,
		audit:        newAuditDispatcher(cfg.Audit, b.auditSink),
		metrics:      NewMetrics(cfg.Metrics),
	}

	b.built = true

	return engine, nil
}
