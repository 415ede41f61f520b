// Package worker implements the run loop that executes ready jobs:
// poll for ready work, atomically claim one, run its command as a
// child process, record the outcome, release the claim, repeat.
//
// A Worker runs one job at a time; parallelism across a pool is
// achieved by running multiple Worker processes against the same
// store, not multiple goroutines within one process (see package
// supervisor).
package worker
