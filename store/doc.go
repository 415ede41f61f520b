// Package store defines the durable, key-addressable table of Job
// records queuectl is built on, and the single atomic primitive
// (TryClaim) that lets any number of worker processes sharing one
// store safely race for the same job.
//
// Package store defines only the contract. See store/sqlitestore for
// a concrete implementation backed by SQLite via bun.
package store
