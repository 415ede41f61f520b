// Package lifecycle implements the job state machine on top of a
// store.Store: enqueue, completion, the retry/backoff/DLQ policy, DLQ
// replay, and status aggregation.
//
// Manager is the sole writer of job state transitions; workers call
// MarkCompleted/MarkFailed after executing a job, and the control
// surface calls Enqueue/RetryFromDLQ/List/Status on behalf of
// operators.
package lifecycle
