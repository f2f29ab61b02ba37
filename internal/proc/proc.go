// Package proc starts child processes, captures their output, and guarantees
// the child is dead by the time a verdict is returned. Every invocation ends
// in exactly one of three outcomes: a Result (the child exited on its own),
// a HangError (the child outlived its budget and was killed), or a
// LaunchError (no process ever started).
package proc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxOutput caps each captured stream when Runner.MaxOutput is unset.
const DefaultMaxOutput = 10 << 20 // 10 MiB per stream

// drainGrace bounds how long Wait may block on pipe I/O after the child has
// already exited, e.g. when a descendant inherited the pipe and kept it open.
const drainGrace = 10 * time.Second

// Spec describes one child process to run. It is a value type; construct it,
// pass it to Run, and it is never mutated.
type Spec struct {
	Path    string        // executable, resolved via PATH if not absolute
	Args    []string      // arguments, not including the executable itself
	Dir     string        // working directory; empty means inherit
	Env     []string      // environment; nil means inherit
	Timeout time.Duration // 0 means no time budget
	PTY     bool          // run under a pseudo-terminal (unix only)

	// OnStart, if set, is called with the child's PID immediately after a
	// successful start, before any outcome is known.
	OnStart func(pid int)
}

// Runner executes child processes. The zero value is ready to use. A Runner
// holds no per-invocation state, so concurrent Run calls are independent.
type Runner struct {
	MaxOutput int // byte cap per captured stream; 0 means DefaultMaxOutput
}

// Run starts the child described by spec and blocks the calling goroutine
// (not an OS thread) until one outcome is reached. Stdout and stderr are
// drained concurrently with the exit wait, so a child that fills one pipe
// while the runner reads the other can never deadlock. On timeout or context
// cancellation the child's process group is killed and the kill is confirmed
// before a HangError is returned; the runner never leaks a live child.
func (r *Runner) Run(ctx context.Context, spec Spec) (*Result, error) {
	if spec.Path == "" {
		return nil, &LaunchError{Err: errors.New("empty executable path")}
	}

	maxOutput := r.MaxOutput
	if maxOutput <= 0 {
		maxOutput = DefaultMaxOutput
	}

	cmd := exec.Command(spec.Path, spec.Args...)
	cmd.Dir = spec.Dir
	if spec.Env != nil {
		cmd.Env = spec.Env
	}

	var stdout, stderr bytes.Buffer
	outW := &limitWriter{buf: &stdout, limit: maxOutput}
	errW := &limitWriter{buf: &stderr, limit: maxOutput}

	start := time.Now()
	wait, err := startChild(cmd, outW, errW, spec.PTY)
	if err != nil {
		return nil, &LaunchError{Path: spec.Path, Err: err}
	}
	pid := cmd.Process.Pid
	if spec.OnStart != nil {
		spec.OnStart(pid)
	}

	// Bridge Wait to a channel so the exit wait, the timeout, and the
	// caller's cancellation can be multiplexed in one select.
	done := make(chan error, 1)
	go func() { done <- wait() }()

	var timeout <-chan time.Time
	if spec.Timeout > 0 {
		timer := time.NewTimer(spec.Timeout)
		defer timer.Stop()
		timeout = timer.C
	}

	var waitErr error
	select {
	case waitErr = <-done:
	case <-timeout:
		killTree(cmd.Process)
		<-done // child confirmed dead, streams drained
		return nil, &HangError{
			Path:    spec.Path,
			PID:     pid,
			Timeout: spec.Timeout,
			Elapsed: time.Since(start),
			Stdout:  stdout.Bytes(),
			Stderr:  stderr.Bytes(),
		}
	case <-ctx.Done():
		killTree(cmd.Process)
		<-done
		return nil, &HangError{
			Path:      spec.Path,
			PID:       pid,
			Timeout:   spec.Timeout,
			Elapsed:   time.Since(start),
			Stdout:    stdout.Bytes(),
			Stderr:    stderr.Bytes(),
			Cancelled: true,
		}
	}
	duration := time.Since(start)

	if waitErr != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.Is(waitErr, exec.ErrWaitDelay):
			// The child exited but handed its pipes to a still-running
			// descendant; the exit status is authoritative.
		case errors.As(waitErr, &exitErr):
			if sig, ok := exitSignal(exitErr.ProcessState); ok {
				return nil, &SignalError{
					Path:   spec.Path,
					PID:    pid,
					Signal: sig,
					Stdout: stdout.Bytes(),
					Stderr: stderr.Bytes(),
				}
			}
		default:
			return nil, fmt.Errorf("waiting for %s: %w", spec.Path, waitErr)
		}
	}

	return &Result{
		RunID:     uuid.New().String(),
		PID:       pid,
		ExitCode:  cmd.ProcessState.ExitCode(),
		Stdout:    stdout.Bytes(),
		Stderr:    stderr.Bytes(),
		Duration:  duration,
		Truncated: stdout.Len() >= maxOutput || stderr.Len() >= maxOutput,
	}, nil
}

// startChild starts cmd with its output wired to the given writers and
// returns the wait function that reaps it. In pipe mode os/exec copies each
// stream on its own goroutine, so both are drained concurrently with the
// exit wait. In PTY mode stdout and stderr are merged onto the terminal and
// captured into stdout only.
func startChild(cmd *exec.Cmd, stdout, stderr io.Writer, usePTY bool) (func() error, error) {
	if usePTY {
		master, err := startPTY(cmd)
		if err != nil {
			return nil, err
		}
		copied := make(chan struct{})
		go func() {
			// The copy ends with EIO once the child side of the
			// terminal closes; that is the normal shutdown path.
			_, _ = io.Copy(stdout, master)
			close(copied)
		}()
		return func() error {
			err := cmd.Wait()
			_ = master.Close()
			<-copied
			return err
		}, nil
	}

	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = drainGrace
	setProcGroup(cmd)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd.Wait, nil
}

// limitWriter writes up to limit bytes to buf, then silently discards the
// rest. It reports every byte as consumed so the copier never sees a short
// write.
type limitWriter struct {
	buf   *bytes.Buffer
	limit int
}

func (w *limitWriter) Write(p []byte) (int, error) {
	remaining := w.limit - w.buf.Len()
	if remaining <= 0 {
		return len(p), nil // discard
	}
	if len(p) > remaining {
		w.buf.Write(p[:remaining])
		return len(p), nil
	}
	return w.buf.Write(p)
}
