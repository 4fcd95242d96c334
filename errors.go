package cxauth

import "errors"

var (
	// ErrMissingCredentials is returned when the login input lacks an email
	// or password. Rejected before any store or network call.
	ErrMissingCredentials = errors.New("email and password are required")
	// ErrInvalidCredentials is the uniform outward failure for unknown
	// email, wrong password, and failed challenges. The internal cause is
	// recorded in audit metadata only.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrChallengeRequired signals that the caller must present a step-up
	// challenge token. It is a distinct state, not a failure.
	ErrChallengeRequired = errors.New("challenge required")
	// ErrChallengeFailed marks a non-affirmative or unavailable challenge
	// verification. Callers observe it as ErrInvalidCredentials.
	ErrChallengeFailed = errors.New("challenge verification failed")
	// ErrSigningSecretMissing indicates the token signing secret is unset.
	// Fatal at Build time; the engine never starts without it.
	ErrSigningSecretMissing = errors.New("token signing secret is required")
	// ErrCredentialStoreUnavailable indicates the credential store could
	// not be reached within the lookup timeout.
	ErrCredentialStoreUnavailable = errors.New("credential store unavailable")
	// ErrCredentialNotFound is returned by credential store adapters for
	// unknown emails. Never surfaced past the engine.
	ErrCredentialNotFound = errors.New("credential record not found")
	// ErrAttemptStoreUnavailable indicates the abuse-tracking backend is
	// unreachable. Logins are denied, never waved through.
	ErrAttemptStoreUnavailable = errors.New("attempt store unavailable")
	// ErrTokenInvalid is returned for structurally or cryptographically
	// invalid tokens, and for tokens of the wrong kind.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired is returned for well-formed tokens past expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrEngineNotReady is returned when an Engine method is called on an
	// engine missing required dependencies.
	ErrEngineNotReady = errors.New("engine not initialized")
)
