// Package cxauth is the authentication and token-issuance core of the CX
// demo web property. It verifies credentials against an injected store,
// tracks per-client failure behavior to decide when a step-up challenge is
// required, mints signed Session and Handoff tokens, and builds partner
// handoff URLs.
//
// The package is designed for concurrent server workloads: Engine methods
// are safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// cxauth is the public surface. It exposes [Engine], [Builder], [Config],
// and value types (LoginOutcome, MetricsSnapshot, AuditEvent). Attempt
// stores, the challenge provider client, and credential store adapters
// live under internal/ and are wired by the Builder.
//
// # What this package must NOT do
//
//   - Write to the credential store; only the read contract is held.
//   - Distinguish unknown-email from wrong-password anywhere a caller can
//     observe it.
//   - Log or retain plaintext passwords under any code path.
package cxauth
