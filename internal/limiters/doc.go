// Package limiters provides the per-client failure attempt stores behind
// the engine's risk gate.
//
// # Implementations
//
//   - [MemoryStore] — in-process mutex-guarded map with lazy expiry; the
//     default, deliberately ephemeral across restarts.
//   - [RedisStore] — INCR/EXPIRE counters for deployments that want the
//     window shared across processes.
//
// Both apply the same reset-window semantics: a record older than the
// window reads as zero, a success deletes it, and a failure refreshes it.
package limiters
