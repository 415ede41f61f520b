package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// runOutcome is the classification of one command execution. err is
// nil on success (exit code 0); otherwise it carries a diagnostic
// message suitable for job.ErrorMessage: a nonzero exit code, a
// timeout, or a spawn/I/O fault.
type runOutcome struct {
	err error
}

// runCommand runs command through a shell, redirecting combined
// stdout+stderr to logDir/<jobID>.log, bounded by timeout.
//
// runCommand deliberately does not take the worker's shutdown
// context: an in-flight job runs to its natural end (success,
// failure, or its own timeout) even if the worker is asked to stop.
func runCommand(timeout time.Duration, logDir, jobID, command string) runOutcome {
	logPath := filepath.Join(logDir, jobID+".log")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return runOutcome{err: fmt.Errorf("create log directory: %w", err)}
	}
	logFile, err := os.Create(logPath)
	if err != nil {
		return runOutcome{err: fmt.Errorf("create log file: %w", err)}
	}
	defer logFile.Close()

	execCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, "sh", "-c", command)
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	runErr := cmd.Run()
	if runErr == nil {
		return runOutcome{}
	}
	if errors.Is(execCtx.Err(), context.DeadlineExceeded) {
		return runOutcome{err: fmt.Errorf("command timed out after %s; see log at %s", timeout, logPath)}
	}
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		return runOutcome{err: fmt.Errorf("command exited with code %d; see log at %s", exitErr.ExitCode(), logPath)}
	}
	return runOutcome{err: fmt.Errorf("command failed to run: %w; see log at %s", runErr, logPath)}
}
