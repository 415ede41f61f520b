// Package supervisor spawns and stops a fixed pool of worker
// processes.
//
// Each worker runs as an independent OS process (a fresh re-exec of
// the current binary), so that it initializes its own store handle
// and signal handlers rather than inheriting parent-side thread
// state. Supervisor only tracks PIDs and process lifetimes; job
// dispatch lives entirely in package worker, one level down.
package supervisor
