package stores

import (
	"context"
	"errors"
	"testing"

	cxauth "github.com/Kevin-Shelton/verizon-cx-demo-sub000"
	"github.com/Kevin-Shelton/verizon-cx-demo-sub000/password"
	"golang.org/x/crypto/bcrypt"
)

func newSeeded(t *testing.T) *MemoryStore {
	t.Helper()

	hasher, err := password.NewHasher(password.Config{Cost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("NewHasher failed: %v", err)
	}

	store, err := NewSeededStore(hasher, []SeedUser{
		{Email: "Sarah.Mitchell@Example.com", Password: "Demo2024!", Name: "Sarah Mitchell", Role: "user"},
		{Email: "admin@example.com", Password: "AdminDemo2024!", Name: "Dana Ops", Role: "admin"},
	})
	if err != nil {
		t.Fatalf("NewSeededStore failed: %v", err)
	}
	return store
}

func TestSeededLookup(t *testing.T) {
	store := newSeeded(t)

	rec, err := store.Lookup(context.Background(), "sarah.mitchell@example.com")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("expected seeded record to receive an ID")
	}
	if rec.Name != "Sarah Mitchell" {
		t.Fatalf("unexpected name %q", rec.Name)
	}
	if rec.PasswordHash == "Demo2024!" || rec.PasswordHash == "" {
		t.Fatal("seed password must be stored hashed")
	}
}

func TestLookupNormalizesEmail(t *testing.T) {
	store := newSeeded(t)

	rec, err := store.Lookup(context.Background(), "  SARAH.MITCHELL@EXAMPLE.COM  ")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if rec.Role != "user" {
		t.Fatalf("unexpected role %q", rec.Role)
	}
}

func TestLookupUnknownEmail(t *testing.T) {
	store := newSeeded(t)

	_, err := store.Lookup(context.Background(), "nobody@example.com")
	if !errors.Is(err, cxauth.ErrCredentialNotFound) {
		t.Fatalf("expected ErrCredentialNotFound, got %v", err)
	}
}
