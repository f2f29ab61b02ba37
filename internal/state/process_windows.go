//go:build windows

package state

import "os"

// IsProcessRunning checks if a process with the given PID is alive.
func IsProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// FindProcess always succeeds on Windows; probing with a signal is the
	// standard liveness check.
	return process.Signal(os.Kill) == nil
}

// KillProcessGroup kills the process with the given PID. Windows has no
// POSIX process groups, so the process is killed directly.
func KillProcessGroup(pid int) error {
	if pid <= 0 {
		return nil
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return process.Kill()
}
