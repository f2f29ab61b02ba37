package proc

import (
	"fmt"
	"time"
)

// LaunchError reports that the child process never started: the executable
// is missing, not executable, or the path is empty. No hang semantics apply
// and there is no process to clean up.
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launching %q: %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// HangError reports that the child failed to exit within its time budget (or
// the caller cancelled the run) and was forcibly killed. By the time a caller
// sees this error the child and its process group are confirmed dead and both
// streams are fully drained.
type HangError struct {
	Path      string
	PID       int
	Timeout   time.Duration
	Elapsed   time.Duration
	Stdout    []byte // output captured before the kill
	Stderr    []byte
	Cancelled bool // the caller's context fired, not the timeout
}

func (e *HangError) Error() string {
	if e.Cancelled {
		return fmt.Sprintf("%s: cancelled after %s, process killed", e.Path, e.Elapsed.Round(time.Millisecond))
	}
	return fmt.Sprintf("%s: no exit within %s, process killed", e.Path, e.Timeout)
}

// SignalError reports that the child was terminated by a signal the runner
// did not send.
type SignalError struct {
	Path   string
	PID    int
	Signal string
	Stdout []byte
	Stderr []byte
}

func (e *SignalError) Error() string {
	return fmt.Sprintf("%s: terminated by signal %s", e.Path, e.Signal)
}
