package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kavoyan/queuectl/lifecycle"
)

// enqueuePayload is the JSON object accepted by `enqueue <json>`:
// required id/command, optional max_retries/scheduled_at, matching
// original_source/src/job_manager.py's enqueue(job_data).
type enqueuePayload struct {
	ID          string  `json:"id"`
	Command     string  `json:"command"`
	MaxRetries  uint32  `json:"max_retries"`
	ScheduledAt *string `json:"scheduled_at"`
}

func newEnqueueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enqueue <json>",
		Short: "Submit a new job from a JSON object",
		Long: "Submit a new job from a JSON object with required \"id\" and \"command\"\n" +
			"fields and optional \"max_retries\" and \"scheduled_at\" fields.\n\n" +
			`Example: queuectl enqueue '{"id":"job1","command":"sleep 2"}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var payload enqueuePayload
			if err := json.Unmarshal([]byte(args[0]), &payload); err != nil {
				return fmt.Errorf("invalid JSON: %w", err)
			}

			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			input := lifecycle.EnqueueInput{
				ID:         payload.ID,
				Command:    payload.Command,
				MaxRetries: payload.MaxRetries,
			}
			if payload.ScheduledAt != nil {
				scheduledAt, err := parseTimestamp(*payload.ScheduledAt)
				if err != nil {
					return fmt.Errorf("invalid scheduled_at: %w", err)
				}
				input.ScheduledAt = &scheduledAt
			}

			j, err := a.manager.Enqueue(rootContext(), input)
			if err != nil {
				return err
			}
			fmt.Printf("Job enqueued successfully\n")
			fmt.Printf("  ID: %s\n", j.ID)
			fmt.Printf("  Command: %s\n", j.Command)
			fmt.Printf("  State: %s\n", j.State)
			return nil
		},
	}
	return cmd
}

// timestampLayouts covers RFC3339 (with or without a zone offset) and
// Python's datetime.isoformat(), which omits the zone entirely and is
// assumed UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format %q", s)
}
