package main

import (
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/kavoyan/queuectl/job"
)

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show job counts by state",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			counts, err := a.manager.Status(rootContext())
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"State", "Count"})
			for _, s := range []job.State{job.Pending, job.Processing, job.Completed, job.Failed, job.Dead} {
				table.Append([]string{s.String(), strconv.FormatInt(counts[s], 10)})
			}
			table.Render()
			return nil
		},
	}
}
