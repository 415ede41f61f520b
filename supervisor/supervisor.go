package supervisor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/kavoyan/queuectl/errs"
	"github.com/kavoyan/queuectl/internal"
)

// StopGrace is how long Stop waits after sending a graceful
// termination signal before forcibly killing any worker still alive.
const StopGrace = 2 * time.Second

// Supervisor spawns and stops a fixed pool of worker OS processes.
type Supervisor struct {
	// PIDFile is the path worker PIDs are recorded to.
	PIDFile string

	// Executable is the binary re-exec'd for each worker, with
	// arguments "worker run --id <id>" appended. Defaults to the
	// currently running executable.
	Executable string

	// WorkerArgs, if set, is appended after the id argument (e.g.
	// flags identifying the data directory).
	WorkerArgs []string

	log *slog.Logger
}

// New creates a Supervisor that records PIDs to pidFile.
func New(pidFile string, log *slog.Logger) *Supervisor {
	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}
	return &Supervisor{
		PIDFile:    pidFile,
		Executable: exe,
		log:        log,
	}
}

// AnyRunning reports whether at least one recorded PID is still
// live.
func (s *Supervisor) AnyRunning() bool {
	pids, err := readPIDs(s.PIDFile)
	if err != nil {
		s.log.Error("read pidfile failed", "err", err)
		return false
	}
	for _, pid := range pids {
		if processAlive(pid) {
			return true
		}
	}
	return false
}

// Start spawns count worker processes, each with a distinct worker
// id (a human-readable prefix plus a random suffix so ids stay
// distinct across restarts), and records their PIDs to the pidfile.
//
// Start returns errs.ErrAlreadyRunning if any previously recorded PID
// is still live.
func (s *Supervisor) Start(count int) error {
	if s.AnyRunning() {
		return errs.ErrAlreadyRunning
	}

	pids := make([]int, 0, count)
	for i := 0; i < count; i++ {
		id := fmt.Sprintf("worker-%d-%s", i, uuid.New().String()[:8])
		args := append([]string{"worker", "run", "--id", id}, s.WorkerArgs...)
		cmd := exec.CommandContext(context.Background(), s.Executable, args...)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		// A fresh process per worker: no inherited thread-local state,
		// each worker opens its own store handle and installs its own
		// signal handlers.
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("spawn worker %s: %w", id, err)
		}
		s.log.Info("started worker", "id", id, "pid", cmd.Process.Pid)
		pids = append(pids, cmd.Process.Pid)
	}

	return writePIDs(s.PIDFile, pids)
}

// Stop reads the pidfile, sends a graceful termination signal to each
// recorded PID, waits StopGrace, then forcibly kills any PID still
// alive, and finally removes the pidfile. Missing PIDs are warned and
// skipped.
func (s *Supervisor) Stop() error {
	pids, err := readPIDs(s.PIDFile)
	if err != nil {
		return err
	}
	if len(pids) == 0 {
		s.log.Warn("no running workers found")
		return nil
	}

	var wg sync.WaitGroup
	for _, pid := range pids {
		if !processAlive(pid) {
			s.log.Warn("worker pid not found", "pid", pid)
			continue
		}
		if err := signalPID(pid, syscall.SIGTERM); err != nil {
			s.log.Error("sigterm failed", "pid", pid, "err", err)
			continue
		}
		wg.Add(1)
		go func(pid int) {
			defer wg.Done()
			waitForExit(pid, StopGrace)
		}(pid)
	}

	select {
	case <-internal.WrapWaitGroup(&wg):
	case <-time.After(StopGrace):
	}

	for _, pid := range pids {
		if processAlive(pid) {
			s.log.Warn("forcing kill", "pid", pid)
			_ = signalPID(pid, syscall.SIGKILL)
		}
	}

	if err := os.Remove(s.PIDFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove pidfile: %w", err)
	}
	return nil
}

func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}

func signalPID(pid int, sig syscall.Signal) error {
	process, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return process.Signal(sig)
}

func waitForExit(pid int, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if !processAlive(pid) {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
}
