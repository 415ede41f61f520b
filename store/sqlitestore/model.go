package sqlitestore

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/kavoyan/queuectl/job"
)

type jobModel struct {
	bun.BaseModel `bun:"table:jobs"`

	ID      string `bun:"id,pk"`
	Command string `bun:"command,notnull"`

	State      job.State `bun:"state,notnull"`
	Attempts   uint32    `bun:"attempts,notnull,default:0"`
	MaxRetries uint32    `bun:"max_retries,notnull"`

	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`

	ScheduledAt  *time.Time `bun:"scheduled_at,nullzero"`
	ErrorMessage *string    `bun:"error_message,nullzero"`
	LockID       *string    `bun:"lock_id,nullzero"`
}

func (jm *jobModel) toJob() *job.Job {
	return &job.Job{
		ID:           jm.ID,
		Command:      jm.Command,
		State:        jm.State,
		Attempts:     jm.Attempts,
		MaxRetries:   jm.MaxRetries,
		CreatedAt:    jm.CreatedAt,
		UpdatedAt:    jm.UpdatedAt,
		ScheduledAt:  jm.ScheduledAt,
		ErrorMessage: jm.ErrorMessage,
		LockID:       jm.LockID,
	}
}

func fromJob(j *job.Job) *jobModel {
	return &jobModel{
		ID:           j.ID,
		Command:      j.Command,
		State:        j.State,
		Attempts:     j.Attempts,
		MaxRetries:   j.MaxRetries,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
		ScheduledAt:  j.ScheduledAt,
		ErrorMessage: j.ErrorMessage,
		LockID:       j.LockID,
	}
}
