// Package middleware exposes HTTP middleware adapters enforcing session
// authentication on top of Engine token verification.
//
// # Guards
//
//   - [RequireSession] — rejects requests without a valid session token.
//   - [OptionalSession] — injects claims when a valid token is present but
//     never rejects.
//
// Each guard reads the Authorization header, delegates to the Engine, and
// injects validated claims into the request context.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// implement authentication logic itself — all decisions are delegated to
// the Engine.
//
// # What this package must NOT do
//
//   - Parse or create tokens directly (delegates to Engine).
//   - Distinguish expired from malformed tokens in responses.
//   - Make authorization decisions beyond pass/reject.
package middleware
