package lifecycle_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "modernc.org/sqlite"

	"github.com/kavoyan/queuectl/errs"
	"github.com/kavoyan/queuectl/job"
	"github.com/kavoyan/queuectl/lifecycle"
	"github.com/kavoyan/queuectl/store/sqlitestore"
)

func newTestManager(t *testing.T) *lifecycle.Manager {
	t.Helper()
	sqlDB, err := sql.Open("sqlite", "file::memory:?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	require.NoError(t, sqlitestore.InitDB(context.Background(), db))

	st := sqlitestore.New(db)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return lifecycle.New(st, log, 3, 2.0)
}

func TestEnqueueValidation(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Enqueue(context.Background(), lifecycle.EnqueueInput{})
	require.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestEnqueueAndGet(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	created, err := m.Enqueue(ctx, lifecycle.EnqueueInput{ID: "a", Command: "echo hi"})
	require.NoError(t, err)
	require.Equal(t, job.Pending, created.State)
	require.Equal(t, uint32(3), created.MaxRetries)

	got, err := m.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "echo hi", got.Command)
}

func TestMarkFailedRetriesThenDies(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	_, err := m.Enqueue(ctx, lifecycle.EnqueueInput{ID: "a", Command: "false", MaxRetries: 2})
	require.NoError(t, err)

	require.NoError(t, m.MarkFailed(ctx, "a", "boom"))
	got, err := m.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, job.Pending, got.State)
	require.Equal(t, uint32(1), got.Attempts)
	require.NotNil(t, got.ScheduledAt)
	require.True(t, got.ScheduledAt.After(time.Now().UTC()))

	require.NoError(t, m.MarkFailed(ctx, "a", "boom again"))
	got, err = m.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, job.Dead, got.State)
	require.Equal(t, uint32(2), got.Attempts)
}

func TestMarkFailedOnAbsentJobIsNoop(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.MarkFailed(context.Background(), "missing", "boom"))
}

func TestRetryFromDLQRequiresDeadState(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	_, err := m.Enqueue(ctx, lifecycle.EnqueueInput{ID: "a", Command: "echo hi"})
	require.NoError(t, err)

	err = m.RetryFromDLQ(ctx, "a")
	require.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestRetryFromDLQResetsAttempts(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	_, err := m.Enqueue(ctx, lifecycle.EnqueueInput{ID: "a", Command: "false", MaxRetries: 1})
	require.NoError(t, err)
	require.NoError(t, m.MarkFailed(ctx, "a", "boom"))

	got, err := m.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, job.Dead, got.State)

	require.NoError(t, m.RetryFromDLQ(ctx, "a"))
	got, err = m.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, job.Pending, got.State)
	require.Equal(t, uint32(0), got.Attempts)
	require.Nil(t, got.ErrorMessage)
}

func TestStatusCountsAcrossStates(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	_, err := m.Enqueue(ctx, lifecycle.EnqueueInput{ID: "a", Command: "echo hi"})
	require.NoError(t, err)
	_, err = m.Enqueue(ctx, lifecycle.EnqueueInput{ID: "b", Command: "echo hi", MaxRetries: 1})
	require.NoError(t, err)
	require.NoError(t, m.MarkFailed(ctx, "b", "boom"))

	counts, err := m.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), counts[job.Pending])
	require.Equal(t, int64(1), counts[job.Dead])
}
