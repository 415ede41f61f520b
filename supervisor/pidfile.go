package supervisor

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

func writePIDs(path string, pids []int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create pidfile: %w", err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, pid := range pids {
		if _, err := fmt.Fprintf(w, "%d\n", pid); err != nil {
			return fmt.Errorf("write pidfile: %w", err)
		}
	}
	return w.Flush()
}

func readPIDs(path string) ([]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read pidfile: %w", err)
	}
	var pids []int
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		pid, err := strconv.Atoi(line)
		if err != nil {
			continue
		}
		pids = append(pids, pid)
	}
	return pids, nil
}
