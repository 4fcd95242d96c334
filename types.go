package cxauth

import (
	"context"
	"io"
	"strings"
	"time"

	internalaudit "github.com/Kevin-Shelton/verizon-cx-demo-sub000/internal/audit"
)

// CredentialRecord is the read-only account record returned by a
// [CredentialStore]. Name and Role may be empty; Role resolves to "user"
// at the record-to-claims boundary and is never mutated in place.
type CredentialRecord struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
}

// CredentialStore is the read contract against the external credential
// store. Lookup receives an already-normalized (trimmed, lowercased)
// email and returns [ErrCredentialNotFound] for unknown addresses.
//
// Implementations must be side-effect-free and safe for concurrent use.
type CredentialStore interface {
	Lookup(ctx context.Context, email string) (CredentialRecord, error)
}

// AttemptStore tracks per-client login failures inside a rolling reset
// window. All three operations on the same clientID must be atomic with
// respect to each other: two concurrent failures may never collapse into
// one observed increment.
type AttemptStore interface {
	// RecordFailure increments the failure count for clientID and
	// refreshes its window, starting at 1 when no live record exists.
	RecordFailure(ctx context.Context, clientID string) (int, error)
	// Count returns the current failure count, applying lazy expiry:
	// a record older than the reset window is deleted and reads as 0.
	Count(ctx context.Context, clientID string) (int, error)
	// Reset deletes the record unconditionally.
	Reset(ctx context.Context, clientID string) error
}

// ChallengeVerifier checks a step-up challenge token against the external
// verification provider. The engine treats any error as a failed
// challenge; implementations fail closed.
type ChallengeVerifier interface {
	Verify(ctx context.Context, challengeToken string) (bool, error)
}

// LoginRequest is the input to [Engine.Login].
type LoginRequest struct {
	Email          string
	Password       string
	ChallengeToken string
}

// OutcomeState is the closed set of terminal login states.
type OutcomeState uint8

const (
	// StateRejected covers unknown email, wrong password, and failed
	// challenges under one outward shape.
	StateRejected OutcomeState = iota
	// StateChallengeRequired tells the caller to present a challenge
	// token on a follow-up request. No credential check was attempted.
	StateChallengeRequired
	// StateAuthenticated carries a Session token and the user payload.
	StateAuthenticated
)

// UserPayload is the caller-facing identity returned on successful login.
type UserPayload struct {
	ID    string
	Email string
	Name  string
	Role  string
}

// LoginOutcome is returned by [Engine.Login]. Token, ExpiresAt, and User
// are set only for [StateAuthenticated].
type LoginOutcome struct {
	State     OutcomeState
	Token     string
	ExpiresAt time.Time
	User      *UserPayload
}

// HandoffGrant is returned by [Engine.MintHandoff].
type HandoffGrant struct {
	Token     string
	ExpiresAt time.Time
}

// NormalizeEmail applies the store comparison normalization: trim
// surrounding whitespace, lowercase.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// resolveRole is the single boundary where an absent role label becomes
// the default. Credential records are never mutated.
func resolveRole(role string) string {
	if role == "" {
		return "user"
	}
	return role
}

// AuditEvent is a structured audit record emitted by the engine.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the engine's dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer], one object per line.
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
