// Package store is a small SQLite-backed entity store: the host
// persistence layer that the call-stack adapters instrument.
//
// The tracer itself never persists anything here; the ledger is in-memory
// for the process lifetime. This package exists so the adapters have a real
// save/delete/fetch lifecycle to wrap, in the demo command and in tests.
//
// Database configuration:
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//
// All reads order by seq ASC, id ASC so results are deterministic across
// runs.
package store
