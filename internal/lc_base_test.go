package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLifecycleRejectsDoubleStart(t *testing.T) {
	var lc Lifecycle
	require.NoError(t, lc.TryStart())
	require.ErrorIs(t, lc.TryStart(), ErrAlreadyStarted)
}

func TestLifecycleRejectsStopWithoutStart(t *testing.T) {
	var lc Lifecycle
	err := lc.TryStop(time.Second, func() DoneChan {
		return make(DoneChan)
	})
	require.ErrorIs(t, err, ErrNotStarted)
}

func TestLifecycleStopWaitsForDoneChan(t *testing.T) {
	var lc Lifecycle
	require.NoError(t, lc.TryStart())

	done := make(DoneChan)
	go func() {
		time.Sleep(10 * time.Millisecond)
		close(done)
	}()

	err := lc.TryStop(time.Second, func() DoneChan { return done })
	require.NoError(t, err)
}

func TestLifecycleStopTimesOut(t *testing.T) {
	var lc Lifecycle
	require.NoError(t, lc.TryStart())

	err := lc.TryStop(10*time.Millisecond, func() DoneChan {
		return make(DoneChan) // never closed
	})
	require.ErrorIs(t, err, ErrStopTimeout)
}
