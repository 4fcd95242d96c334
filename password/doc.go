// Package password verifies plaintext secrets against stored bcrypt
// hashes at a fixed work factor.
//
// # What this package must NOT do
//
//   - Log, wrap into errors, or otherwise retain the plaintext value,
//     on any code path including failures.
//   - Downgrade to a cheaper comparison for malformed hashes; those
//     verify as false.
package password
