package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	minCost     = bcrypt.MinCost
	defaultCost = 10
	maxCost     = 16
)

// Config holds the bcrypt work factor used when hashing. Verification
// reads the cost from the stored hash, so existing records keep working
// when the configured cost changes.
type Config struct {
	Cost int
}

// Hasher hashes and verifies passwords with bcrypt. Safe for concurrent
// use.
type Hasher struct {
	config Config
}

// NewHasher validates cfg and returns a Hasher. A zero cost selects the
// default work factor.
func NewHasher(cfg Config) (*Hasher, error) {
	if cfg.Cost == 0 {
		cfg.Cost = defaultCost
	}
	if cfg.Cost < minCost || cfg.Cost > maxCost {
		return nil, errors.New("bcrypt cost out of range")
	}
	return &Hasher{config: cfg}, nil
}

// Hash returns the bcrypt hash of password at the configured cost.
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.config.Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether password matches storedHash. Malformed hashes
// and mismatches both verify as false; the error return is reserved for
// future backends and is currently always nil on the mismatch path.
func (h *Hasher) Verify(password, storedHash string) (bool, error) {
	if password == "" || storedHash == "" {
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password))
	if err != nil {
		return false, nil
	}
	return true, nil
}
