// Package state tracks which harness run and which job children are alive,
// via PID files under the .rig directory. A new run uses this to take over
// from a stale one, and tests use it to verify that no child survives a
// hang verdict.
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	stateDir = ".rig"
	pidFile  = "run.pid"
	jobsDir  = "jobs"
)

// ensureDir creates the .rig directory if it doesn't exist.
func ensureDir(rootDir string) error {
	return os.MkdirAll(filepath.Join(rootDir, stateDir), 0o755)
}

// ensureJobsDir creates the .rig/jobs directory and returns its path.
func ensureJobsDir(rootDir string) (string, error) {
	dir := filepath.Join(rootDir, stateDir, jobsDir)
	return dir, os.MkdirAll(dir, 0o755)
}

// removeFile removes a file, returning nil if it doesn't exist.
func removeFile(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// WritePID records the harness run PID.
func WritePID(rootDir string, pid int) error {
	if err := ensureDir(rootDir); err != nil {
		return err
	}
	path := filepath.Join(rootDir, stateDir, pidFile)
	return os.WriteFile(path, []byte(strconv.Itoa(pid)), 0o644)
}

// ReadPID reads the harness run PID. Returns 0 if no PID file exists.
func ReadPID(rootDir string) (int, error) {
	data, err := os.ReadFile(filepath.Join(rootDir, stateDir, pidFile))
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

// RemovePID removes the harness run PID file.
func RemovePID(rootDir string) error {
	return removeFile(filepath.Join(rootDir, stateDir, pidFile))
}

// WriteJobPID records a running job child's PID and start time.
// Format: "PID TIMESTAMP" (e.g., "12345 2026-08-25T10:30:00Z").
func WriteJobPID(rootDir, jobName string, pid int, startTime time.Time) error {
	dir, err := ensureJobsDir(rootDir)
	if err != nil {
		return err
	}
	content := fmt.Sprintf("%d %s", pid, startTime.Format(time.RFC3339))
	return os.WriteFile(filepath.Join(dir, jobName+".pid"), []byte(content), 0o644)
}

// ReadJobPID reads a job child's PID and start time.
// Returns pid=0 if no PID file exists.
func ReadJobPID(rootDir, jobName string) (int, time.Time, error) {
	path := filepath.Join(rootDir, stateDir, jobsDir, jobName+".pid")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return 0, time.Time{}, nil
	}
	if err != nil {
		return 0, time.Time{}, err
	}
	parts := strings.SplitN(strings.TrimSpace(string(data)), " ", 2)
	pid, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("parsing job PID file %s: %w", path, err)
	}
	var start time.Time
	if len(parts) == 2 {
		start, _ = time.Parse(time.RFC3339, parts[1])
	}
	return pid, start, nil
}

// RemoveJobPID removes a job child's PID file.
func RemoveJobPID(rootDir, jobName string) error {
	return removeFile(filepath.Join(rootDir, stateDir, jobsDir, jobName+".pid"))
}

// ListJobPIDs returns the names of jobs that currently have a PID file.
func ListJobPIDs(rootDir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(rootDir, stateDir, jobsDir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".pid"); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// KillAllJobChildren terminates every job child recorded under .rig/jobs and
// removes the PID files. Job children run in their own process groups, so
// killing the harness alone would not reach them.
func KillAllJobChildren(rootDir string) {
	names, err := ListJobPIDs(rootDir)
	if err != nil {
		return
	}
	for _, name := range names {
		pid, _, err := ReadJobPID(rootDir, name)
		if err == nil && pid > 0 && IsProcessRunning(pid) {
			_ = KillProcessGroup(pid)
		}
		_ = RemoveJobPID(rootDir, name)
	}
}
