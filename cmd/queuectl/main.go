// Command queuectl is a durable, multi-worker background job queue:
// enqueue shell commands, run one or more worker processes against a
// shared SQLite-backed store, and inspect or replay failures from the
// command line.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
