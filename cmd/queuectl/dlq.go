package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/kavoyan/queuectl/job"
)

func newDLQCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dlq",
		Short: "Inspect and replay dead-lettered jobs",
	}
	cmd.AddCommand(newDLQListCommand(), newDLQRetryCommand())
	return cmd
}

func newDLQListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List dead-lettered jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			jobs, err := a.manager.List(rootContext(), job.Dead)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Attempts", "Command", "Error"})
			for _, j := range jobs {
				errMsg := ""
				if j.ErrorMessage != nil {
					errMsg = *j.ErrorMessage
				}
				table.Append([]string{j.ID, fmt.Sprintf("%d/%d", j.Attempts, j.MaxRetries), j.Command, errMsg})
			}
			table.Render()
			return nil
		},
	}
}

func newDLQRetryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "retry <id>",
		Short: "Move a dead-lettered job back to pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.manager.RetryFromDLQ(rootContext(), args[0])
		},
	}
}
