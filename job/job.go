package job

import "time"

// Job represents a unit of work tracked by queuectl.
//
// ID is the client-supplied, globally unique primary key. Command is
// the shell command line executed by a worker.
//
// CreatedAt is set on enqueue and never changes. UpdatedAt advances on
// every mutation.
//
// State holds the current lifecycle state. Attempts counts completed
// execution attempts (not pulls); it never exceeds MaxRetries.
// ScheduledAt, if set, is the earliest time the job becomes ready.
// ErrorMessage holds the last failure's diagnostic, if any.
// LockID is set if and only if State is Processing; it identifies the
// current claimant.
//
// Job values returned by a store.Store are snapshots. Mutating them
// does not change persisted state.
type Job struct {
	ID      string
	Command string

	State      State
	Attempts   uint32
	MaxRetries uint32

	CreatedAt time.Time
	UpdatedAt time.Time

	ScheduledAt  *time.Time
	ErrorMessage *string
	LockID       *string
}

// Ready reports whether the job is Pending and its ScheduledAt, if
// set, is not in the future relative to now.
func (j *Job) Ready(now time.Time) bool {
	if j.State != Pending {
		return false
	}
	return j.ScheduledAt == nil || !j.ScheduledAt.After(now)
}
