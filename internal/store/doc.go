// Package store provides SQLite-backed storage for harness traces.
//
// A run records one scenario execution under a run token:
//   - runs: profile used, final trace digest, pass/fail
//   - events: the ordered trace, one row per step (payload is canonical JSON)
//   - ranks: every rank string a step produced, for ordering checks
//
// # Ordering
//
// Events are keyed by (run_token, seq) where seq comes from the harness
// logical clock. Queries order by seq, never by insertion time.
//
// Rank values are stored with BINARY collation so ORDER BY value matches
// byte-wise comparison, which agrees with rank comparison for any two
// ranks that are not equivalent.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
