package job_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kavoyan/queuectl/job"
)

func TestReadyRequiresPendingState(t *testing.T) {
	j := &job.Job{State: job.Processing}
	require.False(t, j.Ready(time.Now()))
}

func TestReadyWithoutScheduleIsAlwaysReady(t *testing.T) {
	j := &job.Job{State: job.Pending}
	require.True(t, j.Ready(time.Now()))
}

func TestReadyRespectsFutureSchedule(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	j := &job.Job{State: job.Pending, ScheduledAt: &future}
	require.False(t, j.Ready(now))
	require.True(t, j.Ready(future.Add(time.Second)))
}

func TestParseStateRejectsUnknownNames(t *testing.T) {
	_, err := job.ParseState("bogus")
	require.Error(t, err)
}

func TestStateTerminal(t *testing.T) {
	require.True(t, job.Completed.Terminal())
	require.True(t, job.Dead.Terminal())
	require.False(t, job.Pending.Terminal())
	require.False(t, job.Processing.Terminal())
	require.False(t, job.Failed.Terminal())
}
