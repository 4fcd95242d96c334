package cxauth

import (
	"context"
	"errors"

	"github.com/Kevin-Shelton/verizon-cx-demo-sub000/password"
	"github.com/Kevin-Shelton/verizon-cx-demo-sub000/token"
)

// Engine is the authentication core. It owns credential verification,
// abuse tracking, step-up challenges and token issuance. Construct one
// through [Builder]; the zero value is unusable.
type Engine struct {
	config Config

	credentials CredentialStore
	attempts    AttemptStore
	verifier    ChallengeVerifier

	passwordHash *password.Hasher
	tokens       *token.Manager

	audit   *auditDispatcher
	metrics *Metrics
}

// Close stops the audit dispatcher and flushes buffered events. Safe to
// call more than once.
func (e *Engine) Close() {
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped reports how many audit events were discarded because the
// buffer was full.
func (e *Engine) AuditDropped() uint64 {
	if e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// Metrics exposes the engine's counter set for exporters.
func (e *Engine) Metrics() *Metrics {
	return e.metrics
}

// MetricsSnapshot returns a point-in-time copy of all counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	return e.metrics.Snapshot()
}

// VerifySession validates a session token and returns its claims.
// Expired tokens map to [ErrTokenExpired]; everything else that fails
// validation, including a handoff token presented as a session, maps to
// [ErrTokenInvalid].
func (e *Engine) VerifySession(tokenString string) (*token.Claims, error) {
	return e.verifyKind(tokenString, token.KindSession)
}

// VerifyHandoff validates a handoff token and returns its claims.
func (e *Engine) VerifyHandoff(tokenString string) (*token.Claims, error) {
	return e.verifyKind(tokenString, token.KindHandoff)
}

func (e *Engine) verifyKind(tokenString string, kind token.Kind) (*token.Claims, error) {
	claims, err := e.tokens.VerifyKind(tokenString, kind)
	if err != nil {
		e.metrics.Inc(MetricTokenVerifyFailure)
		if errors.Is(err, token.ErrExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// requiresChallenge reports whether the failure count for this client
// has crossed the step-up threshold. A read error on the attempt store
// is surfaced so the caller can deny the attempt.
func (e *Engine) requiresChallenge(ctx context.Context, clientID string) (bool, error) {
	if !e.config.Challenge.Enabled {
		return false, nil
	}
	count, err := e.attempts.Count(ctx, clientID)
	if err != nil {
		return false, err
	}
	return count >= e.config.Risk.ChallengeThreshold, nil
}

// recordFailure bumps the client's failure count. Write errors are
// swallowed: the login is already being rejected, and a tracker outage
// must not change the outward response.
func (e *Engine) recordFailure(ctx context.Context, clientID string) {
	_, _ = e.attempts.RecordFailure(ctx, clientID)
}
