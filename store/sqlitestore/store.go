package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/kavoyan/queuectl/errs"
	"github.com/kavoyan/queuectl/job"
	qstore "github.com/kavoyan/queuectl/store"
)

// Store implements store.Store using a bun-backed SQLite database.
type Store struct {
	db *bun.DB
}

// New creates a Store backed by db. The caller must run InitDB before
// first use and is responsible for the database's lifecycle
// (connection limits, WAL mode, busy_timeout).
func New(db *bun.DB) *Store {
	return &Store{db: db}
}

var _ qstore.Store = (*Store)(nil)

// Create inserts j as a new job record, with the State it carries.
func (s *Store) Create(ctx context.Context, j *job.Job) error {
	model := fromJob(j)
	_, err := s.db.NewInsert().Model(model).Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.ErrDuplicate
		}
		return fmt.Errorf("%w: %v", errs.ErrStoreError, err)
	}
	return nil
}

// Get returns the job identified by id, or (nil, nil) if absent.
func (s *Store) Get(ctx context.Context, id string) (*job.Job, error) {
	var model jobModel
	err := s.db.NewSelect().Model(&model).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", errs.ErrStoreError, err)
	}
	return model.toJob(), nil
}

// Update merges patch into the record identified by id, advancing
// UpdatedAt to now.
func (s *Store) Update(ctx context.Context, id string, patch qstore.Patch) error {
	now := time.Now().UTC()
	q := s.db.NewUpdate().Model((*jobModel)(nil)).Set("updated_at = ?", now)

	if patch.State != nil {
		q = q.Set("state = ?", *patch.State)
	}
	if patch.Attempts != nil {
		q = q.Set("attempts = ?", *patch.Attempts)
	}
	switch {
	case patch.ClearErrorMessage:
		q = q.Set("error_message = NULL")
	case patch.ErrorMessage != nil:
		q = q.Set("error_message = ?", *patch.ErrorMessage)
	}
	switch {
	case patch.ClearScheduledAt:
		q = q.Set("scheduled_at = NULL")
	case patch.ScheduledAt != nil:
		q = q.Set("scheduled_at = ?", *patch.ScheduledAt)
	}
	switch {
	case patch.ClearLockID:
		q = q.Set("lock_id = NULL")
	case patch.LockID != nil:
		q = q.Set("lock_id = ?", *patch.LockID)
	}

	res, err := q.Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrStoreError, err)
	}
	if !isAffected(res) {
		return errs.ErrNotFound
	}
	return nil
}

// List returns jobs ordered by CreatedAt ascending, optionally
// filtered by state.
func (s *Store) List(ctx context.Context, state job.State) ([]*job.Job, error) {
	var models []*jobModel
	q := s.db.NewSelect().Model(&models).Order("created_at ASC")
	if state != job.Unknown {
		q = q.Where("state = ?", state)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrStoreError, err)
	}
	return toJobs(models), nil
}

// Delete removes the job identified by id, if present.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.db.NewDelete().Model((*jobModel)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrStoreError, err)
	}
	return nil
}

// Ready returns up to limit Pending jobs whose ScheduledAt is absent
// or not after now, ordered by CreatedAt ascending.
func (s *Store) Ready(ctx context.Context, limit int) ([]*job.Job, error) {
	now := time.Now().UTC()
	var models []*jobModel
	q := s.db.NewSelect().
		Model(&models).
		Where("state = ?", job.Pending).
		WhereGroup("AND", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.WhereOr("scheduled_at IS NULL").WhereOr("scheduled_at <= ?", now)
		}).
		Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrStoreError, err)
	}
	return toJobs(models), nil
}

// TryClaim atomically transitions a Pending, unlocked job to
// Processing with lock_id = claimant.
func (s *Store) TryClaim(ctx context.Context, id string, claimant string) (bool, error) {
	now := time.Now().UTC()
	res, err := s.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("state = ?", job.Processing).
		Set("lock_id = ?", claimant).
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Where("state = ?", job.Pending).
		Where("lock_id IS NULL").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: %v", errs.ErrStoreError, err)
	}
	return isAffected(res), nil
}

// Release clears lock_id if it currently equals claimant. It does
// not change state.
func (s *Store) Release(ctx context.Context, id string, claimant string) error {
	now := time.Now().UTC()
	_, err := s.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("lock_id = NULL").
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Where("lock_id = ?", claimant).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrStoreError, err)
	}
	return nil
}

// StatusCounts returns the number of jobs in each state using a
// single grouped query.
func (s *Store) StatusCounts(ctx context.Context) (map[job.State]int64, error) {
	var rows []struct {
		State job.State `bun:"state"`
		Count int64     `bun:"count"`
	}
	err := s.db.NewSelect().
		Model((*jobModel)(nil)).
		ColumnExpr("state").
		ColumnExpr("count(*) AS count").
		Group("state").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrStoreError, err)
	}
	counts := map[job.State]int64{
		job.Pending:    0,
		job.Processing: 0,
		job.Completed:  0,
		job.Failed:     0,
		job.Dead:       0,
	}
	for _, r := range rows {
		counts[r.State] = r.Count
	}
	return counts, nil
}

func toJobs(models []*jobModel) []*job.Job {
	ret := make([]*job.Job, len(models))
	for i, m := range models {
		ret[i] = m.toJob()
	}
	return ret
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "constraint")
}
