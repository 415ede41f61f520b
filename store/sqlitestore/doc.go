// Package sqlitestore implements store.Store on top of SQLite via
// github.com/uptrace/bun.
//
// # Concurrency model
//
// TryClaim is implemented as a single atomic UPDATE statement guarded
// by a WHERE clause (state = 'pending' AND lock_id IS NULL), using
// the affected-row count to decide the caller's outcome. This avoids
// any read-then-write race between selecting a candidate job and
// transitioning it, the same pattern the bun-based reference backend
// this package is adapted from uses for its batched Pull.
//
// Callers sharing one SQLite file across multiple OS processes should
// open the database in WAL mode with a busy_timeout, and should use a
// single connection (db.SetMaxOpenConns(1)) per process: SQLite
// serializes writers itself, and a single connection per process
// avoids busy-retry storms under contention.
//
// # Schema
//
// InitDB (or MustInitDB) creates the "jobs" table and indexes on
// (state, scheduled_at), (state, lock_id), and (state, updated_at).
// InitDB is idempotent and runs inside a transaction.
package sqlitestore
