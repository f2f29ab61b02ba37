package proc

import "time"

// Result holds the outcome of one child process that exited on its own.
type Result struct {
	RunID     string        // unique identifier for this invocation
	PID       int           // the child's process ID (already reaped)
	ExitCode  int           // the child's real exit code
	Stdout    []byte        // captured stdout (may be truncated at the cap)
	Stderr    []byte        // captured stderr (may be truncated at the cap)
	Duration  time.Duration // wall clock from start to reaped exit
	Truncated bool          // true if either stream hit the output cap
}
