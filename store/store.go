package store

import (
	"context"
	"time"

	"github.com/kavoyan/queuectl/job"
)

// Patch describes a partial update to a Job record. A nil pointer
// field leaves the corresponding column untouched; a Clear* flag
// explicitly sets the corresponding nullable column to its absent
// value (this is how ScheduledAt, ErrorMessage, and LockID are
// cleared, since a nil *string/*time.Time pointer in the struct
// already means "don't touch").
type Patch struct {
	State    *job.State
	Attempts *uint32

	ErrorMessage      *string
	ClearErrorMessage bool

	ScheduledAt      *time.Time
	ClearScheduledAt bool

	LockID      *string
	ClearLockID bool
}

// Store is the durable, key-addressable table of Job records
// queuectl's lifecycle manager and workers are built on.
//
// Every operation is atomic and durable on return. TryClaim is the
// system's single concurrency primitive: it is linearizable across
// all processes sharing the store, and at most one caller observes
// acquired=true for a given pending-to-processing transition.
type Store interface {
	// Create inserts a new job record. It returns errs.ErrDuplicate
	// if a job with the same ID already exists.
	Create(ctx context.Context, j *job.Job) error

	// Get returns the job identified by id, or (nil, nil) if absent.
	Get(ctx context.Context, id string) (*job.Job, error)

	// Update merges patch into the record identified by id and
	// advances UpdatedAt to now. It returns errs.ErrNotFound if the
	// job does not exist.
	Update(ctx context.Context, id string, patch Patch) error

	// List returns jobs ordered by CreatedAt ascending. If state is
	// job.Unknown, no state filter is applied.
	List(ctx context.Context, state job.State) ([]*job.Job, error)

	// Delete removes the job identified by id. It is a no-op if the
	// job does not exist.
	Delete(ctx context.Context, id string) error

	// Ready returns up to limit Pending jobs whose ScheduledAt is
	// absent or not after now, ordered by CreatedAt ascending.
	Ready(ctx context.Context, limit int) ([]*job.Job, error)

	// TryClaim atomically transitions the job identified by id from
	// Pending (with no LockID) to Processing with LockID=claimant, and
	// reports whether this call won the race.
	TryClaim(ctx context.Context, id string, claimant string) (bool, error)

	// Release clears LockID if it currently equals claimant. It does
	// not change State; the caller must set a terminal or Pending
	// state before releasing. It is a no-op if claimant does not
	// hold the lock.
	Release(ctx context.Context, id string, claimant string) error

	// StatusCounts returns the number of jobs in each State.
	StatusCounts(ctx context.Context) (map[job.State]int64, error)
}
