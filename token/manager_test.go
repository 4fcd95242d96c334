package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var testSecret = []byte("test-secret-0123456789abcdef0123")

func newTestManager(t *testing.T, now func() time.Time) *Manager {
	t.Helper()

	m, err := NewManager(Config{
		Secret:     testSecret,
		Issuer:     "test-issuer",
		SessionTTL: 24 * time.Hour,
		HandoffTTL: 5 * time.Minute,
		Now:        now,
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return m
}

func TestNewManagerRequiresSecret(t *testing.T) {
	_, err := NewManager(Config{
		SessionTTL: time.Hour,
		HandoffTTL: time.Minute,
	})
	if err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestSessionRoundTrip(t *testing.T) {
	m := newTestManager(t, nil)

	signed, expiresAt, err := m.Issue(KindSession, Identity{
		Subject: "user-1",
		Email:   "sarah.mitchell@example.com",
		Name:    "Sarah Mitchell",
		Role:    "user",
	})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if remaining := time.Until(expiresAt); remaining < 23*time.Hour {
		t.Fatalf("expected ~24h lifetime, got %v", remaining)
	}

	claims, err := m.Verify(signed)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("expected subject user-1, got %q", claims.Subject)
	}
	if claims.Email != "sarah.mitchell@example.com" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
	if claims.Role != "user" {
		t.Fatalf("expected role user, got %q", claims.Role)
	}
	if claims.Kind != KindSession {
		t.Fatalf("expected session kind, got %q", claims.Kind)
	}
}

func TestHandoffOmitsRole(t *testing.T) {
	m := newTestManager(t, nil)

	signed, expiresAt, err := m.Issue(KindHandoff, Identity{
		Subject: "portal-abc",
		Email:   "sarah.mitchell@example.com",
		Name:    "Sarah Mitchell",
		Role:    "admin",
	})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if remaining := time.Until(expiresAt); remaining > 6*time.Minute {
		t.Fatalf("expected ~5m lifetime, got %v", remaining)
	}

	claims, err := m.Verify(signed)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.Role != "" {
		t.Fatalf("handoff token must not carry a role, got %q", claims.Role)
	}
	if claims.Kind != KindHandoff {
		t.Fatalf("expected handoff kind, got %q", claims.Kind)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	clock := time.Now()
	m := newTestManager(t, func() time.Time { return clock })

	signed, _, err := m.Issue(KindHandoff, Identity{Subject: "portal-x"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	clock = clock.Add(5*time.Minute + time.Second)

	if _, err := m.Verify(signed); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestTokenValidJustBeforeExpiry(t *testing.T) {
	clock := time.Now()
	m := newTestManager(t, func() time.Time { return clock })

	signed, _, err := m.Issue(KindHandoff, Identity{Subject: "portal-x"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	clock = clock.Add(5*time.Minute - time.Second)

	if _, err := m.Verify(signed); err != nil {
		t.Fatalf("expected valid token before expiry, got %v", err)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	m := newTestManager(t, nil)

	signed, _, err := m.Issue(KindSession, Identity{Subject: "user-1", Role: "user"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Flip one byte in the payload segment.
	parts := strings.Split(signed, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 JWT segments, got %d", len(parts))
	}
	payload := []byte(parts[1])
	if payload[3] == 'A' {
		payload[3] = 'B'
	} else {
		payload[3] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := m.Verify(tampered); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for tampered token, got %v", err)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	m := newTestManager(t, nil)

	other, err := NewManager(Config{
		Secret:     []byte("another-secret-another-secret-00"),
		Issuer:     "test-issuer",
		SessionTTL: time.Hour,
		HandoffTTL: time.Minute,
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	signed, _, err := other.Issue(KindSession, Identity{Subject: "user-1"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := m.Verify(signed); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for foreign signature, got %v", err)
	}
}

func TestKindConfusionRejected(t *testing.T) {
	m := newTestManager(t, nil)

	handoff, _, err := m.Issue(KindHandoff, Identity{Subject: "portal-x"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	session, _, err := m.Issue(KindSession, Identity{Subject: "user-1"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := m.VerifyKind(handoff, KindSession); !errors.Is(err, ErrInvalid) {
		t.Fatalf("handoff token accepted as session: %v", err)
	}
	if _, err := m.VerifyKind(session, KindHandoff); !errors.Is(err, ErrInvalid) {
		t.Fatalf("session token accepted as handoff: %v", err)
	}
	if _, err := m.VerifyKind(session, KindSession); err != nil {
		t.Fatalf("session token rejected as session: %v", err)
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	m := newTestManager(t, nil)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.Verify(tok); !errors.Is(err, ErrInvalid) {
			t.Fatalf("expected ErrInvalid for %q, got %v", tok, err)
		}
	}
}

func TestUnknownKindIssueRejected(t *testing.T) {
	m := newTestManager(t, nil)

	if _, _, err := m.Issue(Kind("refresh"), Identity{Subject: "user-1"}); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
