package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/kavoyan/queuectl/job"
)

func newListCommand() *cobra.Command {
	var stateFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs, optionally filtered by state",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			state := job.Unknown
			if stateFlag != "" {
				state, err = job.ParseState(stateFlag)
				if err != nil {
					return err
				}
			}

			jobs, err := a.manager.List(rootContext(), state)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "State", "Attempts", "Command", "Updated"})
			for _, j := range jobs {
				table.Append([]string{
					j.ID,
					j.State.String(),
					fmt.Sprintf("%d/%d", j.Attempts, j.MaxRetries),
					j.Command,
					j.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&stateFlag, "state", "", "filter by state (pending, processing, completed, failed, dead)")
	return cmd
}
