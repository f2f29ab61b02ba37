package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/testbed-ci/rig/internal/state"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a run or any job child is live",
	RunE: func(cmd *cobra.Command, args []string) error {
		abs, err := filepath.Abs(configPath)
		if err != nil {
			return err
		}
		rootDir := filepath.Dir(abs)

		pid, err := state.ReadPID(rootDir)
		if err != nil {
			return fmt.Errorf("reading run PID: %w", err)
		}
		if pid > 0 && state.IsProcessRunning(pid) {
			fmt.Printf("run: live (PID %d)\n", pid)
		} else {
			fmt.Println("run: idle")
		}

		names, err := state.ListJobPIDs(rootDir)
		if err != nil {
			return fmt.Errorf("listing job PIDs: %w", err)
		}
		for _, name := range names {
			jobPID, start, err := state.ReadJobPID(rootDir, name)
			if err != nil || jobPID == 0 {
				continue
			}
			if state.IsProcessRunning(jobPID) {
				fmt.Printf("job %s: live (PID %d, running %s)\n", name, jobPID,
					time.Since(start).Round(time.Second))
			} else {
				fmt.Printf("job %s: stale PID file (PID %d not running)\n", name, jobPID)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
