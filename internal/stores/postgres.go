package stores

import (
	"context"
	"errors"
	"fmt"

	cxauth "github.com/Kevin-Shelton/verizon-cx-demo-sub000"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore reads credential records from the external user table.
// It never writes; account lifecycle is owned elsewhere.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an existing connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Lookup fetches the record for a normalized email. Unknown emails map
// to cxauth.ErrCredentialNotFound; any other failure is wrapped as a
// store-unavailable error so the engine denies the login.
func (s *PostgresStore) Lookup(ctx context.Context, email string) (cxauth.CredentialRecord, error) {
	query := `
		SELECT id, email, password_hash, COALESCE(display_name, ''), COALESCE(role, '')
		FROM users
		WHERE email = $1
	`

	var rec cxauth.CredentialRecord
	err := s.pool.QueryRow(ctx, query, cxauth.NormalizeEmail(email)).Scan(
		&rec.ID,
		&rec.Email,
		&rec.PasswordHash,
		&rec.Name,
		&rec.Role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cxauth.CredentialRecord{}, cxauth.ErrCredentialNotFound
		}
		return cxauth.CredentialRecord{}, fmt.Errorf("%w: %v", cxauth.ErrCredentialStoreUnavailable, err)
	}

	return rec, nil
}
