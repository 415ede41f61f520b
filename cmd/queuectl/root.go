package main

import (
	"context"

	"github.com/spf13/cobra"
)

var configPath string

func rootContext() context.Context {
	return context.Background()
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "queuectl",
		Short:         "A durable, multi-worker background job queue",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.queuectl/config.json)")

	root.AddCommand(
		newEnqueueCommand(),
		newListCommand(),
		newStatusCommand(),
		newWorkerCommand(),
		newDLQCommand(),
		newConfigCommand(),
	)
	return root
}
