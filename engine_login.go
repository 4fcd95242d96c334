package cxauth

import (
	"context"
	"errors"
	"time"

	"github.com/Kevin-Shelton/verizon-cx-demo-sub000/token"
)

// Login runs the credential verification flow for one attempt. The
// outcome is always one of three states: rejected, challenge required,
// or authenticated. Unknown email, wrong password, and failed challenges
// all produce the same rejected outcome so that the response never leaks
// whether an account exists.
//
// The client identity for abuse tracking is read from ctx (see
// [WithClientID]); an attempt without one is tracked under "unknown".
func (e *Engine) Login(ctx context.Context, req LoginRequest) (LoginOutcome, error) {
	if e == nil || e.credentials == nil || e.attempts == nil {
		return LoginOutcome{State: StateRejected}, ErrEngineNotReady
	}

	start := time.Now()
	defer func() {
		e.metrics.Observe(MetricLoginLatency, time.Since(start))
	}()

	email := NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		e.metrics.Inc(MetricLoginValidationRejected)
		e.emitAudit(ctx, eventLoginValidation, false, "", ErrMissingCredentials, nil)
		return LoginOutcome{State: StateRejected}, ErrMissingCredentials
	}

	clientID := clientIDOrUnknown(ctx)

	// Risk gate. An unreadable attempt store denies the login rather than
	// waving it past the abuse tracker.
	elevated, err := e.requiresChallenge(ctx, clientID)
	if err != nil {
		e.metrics.Inc(MetricLoginFailure)
		e.emitAudit(ctx, eventLoginFailure, false, "", err, map[string]string{"cause": "attempt_store"})
		return LoginOutcome{State: StateRejected}, ErrInvalidCredentials
	}

	if elevated {
		if req.ChallengeToken == "" {
			// Terminal: no counter increment, no credential check.
			e.metrics.Inc(MetricChallengeRequired)
			e.emitAudit(ctx, eventChallengeRequired, false, "", nil, nil)
			return LoginOutcome{State: StateChallengeRequired}, ErrChallengeRequired
		}

		ok, verr := e.verifier.Verify(ctx, req.ChallengeToken)
		if verr != nil || !ok {
			// Fail closed: provider errors count the same as a wrong
			// answer, and the failure still raises the counter.
			e.metrics.Inc(MetricChallengeFailed)
			e.metrics.Inc(MetricLoginFailure)
			e.recordFailure(ctx, clientID)
			e.emitAudit(ctx, eventChallengeFailed, false, "", verr, nil)
			return LoginOutcome{State: StateRejected}, ErrInvalidCredentials
		}
		e.metrics.Inc(MetricChallengePassed)
	}

	record, err := e.lookupCredential(ctx, email)
	if err != nil {
		cause := "store_unavailable"
		if errors.Is(err, ErrCredentialNotFound) {
			cause = "unknown_email"
		} else {
			e.metrics.Inc(MetricStoreUnavailable)
		}
		e.metrics.Inc(MetricLoginFailure)
		e.recordFailure(ctx, clientID)
		e.emitAudit(ctx, eventLoginFailure, false, "", err, map[string]string{"cause": cause})
		return LoginOutcome{State: StateRejected}, ErrInvalidCredentials
	}

	match, err := e.passwordHash.Verify(req.Password, record.PasswordHash)
	if err != nil || !match {
		e.metrics.Inc(MetricLoginFailure)
		e.recordFailure(ctx, clientID)
		e.emitAudit(ctx, eventLoginFailure, false, record.ID, err, map[string]string{"cause": "wrong_password"})
		return LoginOutcome{State: StateRejected}, ErrInvalidCredentials
	}

	// Verified. Clear the abuse record before minting; a failed reset is
	// not worth failing an otherwise good login over.
	_ = e.attempts.Reset(ctx, clientID)

	role := resolveRole(record.Role)
	signed, expiresAt, err := e.tokens.Issue(token.KindSession, token.Identity{
		Subject: record.ID,
		Email:   record.Email,
		Name:    record.Name,
		Role:    role,
	})
	if err != nil {
		e.metrics.Inc(MetricLoginFailure)
		e.emitAudit(ctx, eventLoginFailure, false, record.ID, err, map[string]string{"cause": "token_mint"})
		return LoginOutcome{State: StateRejected}, ErrInvalidCredentials
	}

	e.metrics.Inc(MetricLoginSuccess)
	e.emitAudit(ctx, eventLoginSuccess, true, record.ID, nil, nil)

	return LoginOutcome{
		State:     StateAuthenticated,
		Token:     signed,
		ExpiresAt: expiresAt,
		User: &UserPayload{
			ID:    record.ID,
			Email: record.Email,
			Name:  record.Name,
			Role:  role,
		},
	}, nil
}

// lookupCredential bounds the store round-trip with the configured
// timeout so a hung store cannot stall the login path.
func (e *Engine) lookupCredential(ctx context.Context, email string) (CredentialRecord, error) {
	if timeout := e.config.Store.LookupTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return e.credentials.Lookup(ctx, email)
}
