package stores

import (
	"context"

	cxauth "github.com/Kevin-Shelton/verizon-cx-demo-sub000"
	"github.com/Kevin-Shelton/verizon-cx-demo-sub000/password"
	"github.com/google/uuid"
)

// SeedUser is a plaintext seed for the demo credential store. The
// plaintext is hashed at construction and discarded.
type SeedUser struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// MemoryStore is an immutable in-memory credential store keyed by
// normalized email. Safe for concurrent reads.
type MemoryStore struct {
	records map[string]cxauth.CredentialRecord
}

// NewMemoryStore builds a MemoryStore from already-hashed records.
func NewMemoryStore(records []cxauth.CredentialRecord) *MemoryStore {
	byEmail := make(map[string]cxauth.CredentialRecord, len(records))
	for _, rec := range records {
		byEmail[cxauth.NormalizeEmail(rec.Email)] = rec
	}
	return &MemoryStore{records: byEmail}
}

// NewSeededStore hashes each seed password and builds a MemoryStore.
// Records get fresh IDs when the seed does not dictate one.
func NewSeededStore(hasher *password.Hasher, seeds []SeedUser) (*MemoryStore, error) {
	records := make([]cxauth.CredentialRecord, 0, len(seeds))
	for _, seed := range seeds {
		hash, err := hasher.Hash(seed.Password)
		if err != nil {
			return nil, err
		}
		records = append(records, cxauth.CredentialRecord{
			ID:           uuid.NewString(),
			Email:        cxauth.NormalizeEmail(seed.Email),
			PasswordHash: hash,
			Name:         seed.Name,
			Role:         seed.Role,
		})
	}
	return NewMemoryStore(records), nil
}

// Lookup returns the record for a normalized email.
func (s *MemoryStore) Lookup(_ context.Context, email string) (cxauth.CredentialRecord, error) {
	rec, ok := s.records[cxauth.NormalizeEmail(email)]
	if !ok {
		return cxauth.CredentialRecord{}, cxauth.ErrCredentialNotFound
	}
	return rec, nil
}
