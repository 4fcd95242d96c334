// Package token mints and verifies the two token kinds used by the CX
// demo property: Session (ongoing caller identity, 24h) and Handoff
// (single cross-domain redirect, 5min).
//
// # Design
//
// One process-wide HMAC secret, one pinned algorithm (HS256). The
// algorithm is not negotiable per request; a token presenting any other
// algorithm is invalid regardless of its signature. The kind claim is an
// explicit discriminant checked on every verification, so a Handoff token
// can never be accepted where a Session token is required.
//
// # What this package must NOT do
//
//   - Accept a token signed with a different algorithm or secret.
//   - Apply leeway to expiry; expiry is the only invalidation mechanism
//     and is checked strictly.
package token
