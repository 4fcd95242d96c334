package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind discriminates the token's purpose. It is stamped into the claims
// at issuance and checked on every verification.
type Kind string

const (
	// KindSession marks a longer-lived token representing an
	// authenticated caller within this property.
	KindSession Kind = "session"
	// KindHandoff marks a short-lived token minted solely to
	// authenticate a single redirect into a partner-hosted surface.
	KindHandoff Kind = "handoff"
)

var (
	// ErrInvalid covers structural, signature, algorithm, and kind
	// failures. No partial trust is extended to malformed tokens.
	ErrInvalid = errors.New("invalid token")
	// ErrExpired is returned for otherwise valid tokens past expiry.
	ErrExpired = errors.New("token expired")
)

// Config holds the signing material and lifetimes. Secret is required.
type Config struct {
	Secret     []byte
	Issuer     string
	SessionTTL time.Duration
	HandoffTTL time.Duration

	// Now overrides the clock; nil means time.Now. Used by tests to
	// simulate expiry.
	Now func() time.Time
}

// Identity is the subject material baked into a token. For Session
// tokens Subject is the credential record ID; for Handoff tokens it is
// the portal-scoped subject identifier.
type Identity struct {
	Subject string
	Email   string
	Name    string
	Role    string
}

// Claims is the structured content of a token. Immutable once
// constructed.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
	Kind  Kind   `json:"knd"`
	jwt.RegisteredClaims
}

// Manager issues and verifies tokens. Safe for concurrent use after
// construction.
type Manager struct {
	config Config
}

// NewManager validates cfg and returns a Manager. An empty secret is a
// configuration error; callers treat it as fatal at startup.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("signing secret required")
	}
	if cfg.SessionTTL <= 0 || cfg.HandoffTTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Manager{config: cfg}, nil
}

// Issue mints a signed token of the given kind. Session tokens carry the
// full identity; Handoff tokens carry only what the partner domain needs
// and never a role.
func (m *Manager) Issue(kind Kind, id Identity) (string, time.Time, error) {
	var ttl time.Duration
	switch kind {
	case KindSession:
		ttl = m.config.SessionTTL
	case KindHandoff:
		ttl = m.config.HandoffTTL
	default:
		return "", time.Time{}, fmt.Errorf("%w: unknown kind %q", ErrInvalid, kind)
	}

	now := m.config.Now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		Email: id.Email,
		Name:  id.Name,
		Kind:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Subject,
			Issuer:    m.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	if kind == KindSession {
		claims.Role = id.Role
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.config.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify validates signature, expiry, and structure, returning the
// decoded claims. The signing algorithm is pinned; tokens advertising any
// other method are ErrInvalid even before signature checking.
func (m *Manager) Verify(tokenStr string) (*Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.config.Now),
	}
	if m.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(m.config.Issuer))
	}

	parsed, err := jwt.NewParser(options...).ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
		}
		return m.config.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalid
	}
	switch claims.Kind {
	case KindSession, KindHandoff:
	default:
		return nil, ErrInvalid
	}
	return claims, nil
}

// VerifyKind verifies the token and additionally requires the expected
// kind. A valid token of the wrong kind is ErrInvalid.
func (m *Manager) VerifyKind(tokenStr string, kind Kind) (*Claims, error) {
	claims, err := m.Verify(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Kind != kind {
		return nil, ErrInvalid
	}
	return claims, nil
}
