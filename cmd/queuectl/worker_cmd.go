package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kavoyan/queuectl/supervisor"
	"github.com/kavoyan/queuectl/worker"
)

func newWorkerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Start, stop, or run background worker processes",
	}
	cmd.AddCommand(newWorkerStartCommand(), newWorkerStopCommand(), newWorkerRunCommand())
	return cmd
}

func newWorkerStartCommand() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Spawn a pool of worker processes",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			sup := supervisor.New(pidFilePath(a.dataDir), a.log)
			sup.WorkerArgs = []string{"--config", configPath}
			if err := sup.Start(count); err != nil {
				return err
			}
			fmt.Printf("started %d worker(s)\n", count)
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 3, "number of worker processes to spawn")
	return cmd
}

func newWorkerStopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop all running worker processes",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			sup := supervisor.New(pidFilePath(a.dataDir), a.log)
			return sup.Stop()
		},
	}
}

// newWorkerRunCommand is the re-exec entrypoint Supervisor.Start
// spawns: it runs a single worker's poll-claim-execute loop in the
// foreground until it receives SIGTERM or SIGINT.
func newWorkerRunCommand() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:    "run",
		Short:  "Run a single worker loop in the foreground",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			if id == "" {
				id = fmt.Sprintf("worker-%d", os.Getpid())
			}

			cfg := worker.Config{
				PollInterval:     time.Duration(a.cfg.WorkerPollInterval() * float64(time.Second)),
				LogDir:           filepath.Join(a.dataDir, "logs"),
				ExecutionTimeout: worker.ExecutionTimeout,
			}
			w := worker.New(a.store, a.manager, id, cfg, a.log)

			ctx := rootContext()
			if err := w.Start(ctx); err != nil {
				return err
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
			<-sigCh

			a.log.Info("shutdown requested", "worker", id)
			return w.Stop(worker.ExecutionTimeout + 10*time.Second)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "worker identity used as the store claimant")
	return cmd
}

func pidFilePath(dataDir string) string {
	return filepath.Join(dataDir, "queuectl.pid")
}
