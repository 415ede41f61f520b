package supervisor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPIDFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queuectl.pid")
	require.NoError(t, writePIDs(path, []int{100, 200, 300}))

	got, err := readPIDs(path)
	require.NoError(t, err)
	require.Equal(t, []int{100, 200, 300}, got)
}

func TestReadPIDsMissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.pid")
	got, err := readPIDs(path)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestReadPIDsSkipsUnparseableLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queuectl.pid")
	require.NoError(t, os.WriteFile(path, []byte("42\nnot-a-pid\n99\n"), 0o644))

	got, err := readPIDs(path)
	require.NoError(t, err)
	require.Equal(t, []int{42, 99}, got)
}
