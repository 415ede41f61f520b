package worker

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/kavoyan/queuectl/internal"
	"github.com/kavoyan/queuectl/job"
	"github.com/kavoyan/queuectl/lifecycle"
	"github.com/kavoyan/queuectl/store"
)

// Worker runs the poll-claim-execute loop against a shared store on
// behalf of one claimant identity. A Worker executes one job at a
// time; it holds no in-process concurrency.
type Worker struct {
	internal.Lifecycle

	id      string
	store   store.Store
	manager *lifecycle.Manager
	log     *slog.Logger
	cfg     Config

	shutdown atomic.Bool
	done     internal.DoneChan
}

// New creates a Worker identified by id, backed by st for storage and
// manager for state transitions.
func New(st store.Store, manager *lifecycle.Manager, id string, cfg Config, log *slog.Logger) *Worker {
	return &Worker{
		id:      id,
		store:   st,
		manager: manager,
		log:     log,
		cfg:     cfg,
	}
}

// Start begins the run loop in a background goroutine. It returns
// internal.ErrAlreadyStarted if already running.
//
// ctx bounds the store calls used to find and claim work; it does
// NOT bound in-flight command execution, which always runs to its
// natural end (see runCommand).
func (w *Worker) Start(ctx context.Context) error {
	if err := w.TryStart(); err != nil {
		return err
	}
	w.done = make(internal.DoneChan)
	go w.run(ctx)
	return nil
}

// Stop requests graceful shutdown: the current poll iteration (and
// any in-flight command) completes naturally, then the loop exits
// after releasing any claim it still holds. Stop blocks until the
// loop exits or timeout elapses.
func (w *Worker) Stop(timeout time.Duration) error {
	return w.TryStop(timeout, func() internal.DoneChan {
		w.shutdown.Store(true)
		return w.done
	})
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.done)
	for !w.shutdown.Load() {
		candidates, err := w.store.Ready(ctx, 1)
		if err != nil {
			w.log.Error("ready query failed", "worker", w.id, "err", err)
			w.sleep()
			continue
		}
		if len(candidates) == 0 {
			w.sleep()
			continue
		}
		candidate := candidates[0]

		acquired, err := w.store.TryClaim(ctx, candidate.ID, w.id)
		if err != nil {
			w.log.Error("claim failed", "worker", w.id, "job", candidate.ID, "err", err)
			w.sleep()
			continue
		}
		if !acquired {
			w.sleep()
			continue
		}

		fresh, err := w.store.Get(ctx, candidate.ID)
		if err != nil || fresh == nil {
			w.log.Error("re-read after claim failed", "worker", w.id, "job", candidate.ID, "err", err)
			_ = w.store.Release(ctx, candidate.ID, w.id)
			continue
		}
		w.execute(fresh)
	}
}

func (w *Worker) sleep() {
	time.Sleep(w.cfg.PollInterval)
}

func (w *Worker) execute(j *job.Job) {
	bg := context.Background()
	w.log.Info("executing job", "worker", w.id, "job", j.ID, "command", j.Command)

	outcome := runCommand(w.cfg.executionTimeout(), w.cfg.LogDir, j.ID, j.Command)

	if outcome.err == nil {
		if err := w.manager.MarkCompleted(bg, j.ID); err != nil {
			w.log.Error("mark completed failed", "worker", w.id, "job", j.ID, "err", err)
		}
	} else {
		msg := outcome.err.Error()
		if err := w.manager.MarkFailed(bg, j.ID, msg); err != nil {
			w.log.Error("mark failed failed", "worker", w.id, "job", j.ID, "err", err)
		}
	}

	if err := w.store.Release(bg, j.ID, w.id); err != nil {
		w.log.Error("release failed", "worker", w.id, "job", j.ID, "err", err)
	}
}
