// Package harness dispatches the configured test jobs as child processes and
// turns each process outcome into a distinguishable job status. A hang is
// never collapsed into a plain failure: a CI run that silently converts
// "we had to kill this" into "the tests failed" hides the bug the harness
// exists to catch.
package harness

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/testbed-ci/rig/internal/config"
	"github.com/testbed-ci/rig/internal/proc"
	"github.com/testbed-ci/rig/internal/report"
	"github.com/testbed-ci/rig/internal/state"
)

// runningEnv guards against a job that itself invokes rig and recurses.
const runningEnv = "RIG_RUNNING"

// JobResult is one dispatched job and how it ended.
type JobResult struct {
	Job      config.Job
	Status   report.Status
	ExitCode int
	Duration time.Duration
	Stdout   []byte
	Stderr   []byte
	Err      error // nil only when Status is StatusPassed or StatusFailed
}

// Harness runs the jobs of one loaded config.
type Harness struct {
	Config  *config.Config
	Runner  *proc.Runner
	RootDir string // where .rig state lives, usually the config file's dir
	Log     zerolog.Logger
}

func New(cfg *config.Config, rootDir string, log zerolog.Logger) *Harness {
	return &Harness{
		Config:  cfg,
		Runner:  &proc.Runner{},
		RootDir: rootDir,
		Log:     log,
	}
}

// Run dispatches every job whose queue matches this host, in config order,
// and returns all results. The returned error is non-nil when any job did
// not pass; the results are still complete in that case.
func (h *Harness) Run(ctx context.Context) ([]JobResult, error) {
	if os.Getenv(runningEnv) == "1" {
		h.Log.Warn().Msg("skipping: already inside a rig run")
		return nil, nil
	}

	// Take over from a previous run that is still alive, killing its job
	// children first: they run in their own process groups, so killing the
	// old harness alone would not reach them.
	if pid, err := state.ReadPID(h.RootDir); err == nil && pid > 0 && pid != os.Getpid() && state.IsProcessRunning(pid) {
		h.Log.Warn().Int("pid", pid).Msg("terminating previous run")
		state.KillAllJobChildren(h.RootDir)
		if err := state.KillProcessGroup(pid); err != nil {
			h.Log.Warn().Err(err).Msg("could not kill previous run")
		}
	}
	if err := state.WritePID(h.RootDir, os.Getpid()); err != nil {
		return nil, fmt.Errorf("writing run PID: %w", err)
	}
	defer func() { _ = state.RemovePID(h.RootDir) }()

	jobs := h.Config.JobsForHost(runtime.GOOS)
	h.Log.Info().Int("jobs", len(jobs)).Str("os", runtime.GOOS).Msg("dispatching")

	results := make([]JobResult, 0, len(jobs))
	var notPassed int
	for _, job := range jobs {
		res := h.runJob(ctx, job)
		h.logResult(res)
		results = append(results, res)
		if res.Status != report.StatusPassed {
			notPassed++
		}
		if ctx.Err() != nil {
			// The cancelled job is already recorded as hung; don't start more.
			break
		}
	}

	if notPassed > 0 {
		return results, fmt.Errorf("%d of %d jobs did not pass", notPassed, len(results))
	}
	return results, nil
}

func (h *Harness) runJob(ctx context.Context, job config.Job) JobResult {
	timeout, err := h.Config.JobTimeout(job)
	if err != nil {
		return JobResult{Job: job, Status: report.StatusErrored, Err: err}
	}

	spec := proc.Spec{
		Path:    job.Command,
		Args:    job.Args,
		Dir:     job.Dir,
		Env:     childEnv(job.Name),
		Timeout: timeout,
		PTY:     job.PTY,
		OnStart: func(pid int) {
			_ = state.WriteJobPID(h.RootDir, job.Name, pid, time.Now())
		},
	}
	defer func() { _ = state.RemoveJobPID(h.RootDir, job.Name) }()

	res, err := h.Runner.Run(ctx, spec)
	if err == nil {
		out := JobResult{
			Job:      job,
			Status:   report.StatusPassed,
			ExitCode: res.ExitCode,
			Duration: res.Duration,
			Stdout:   res.Stdout,
			Stderr:   res.Stderr,
		}
		if res.ExitCode != 0 {
			out.Status = report.StatusFailed
		}
		return out
	}

	var hangErr *proc.HangError
	if errors.As(err, &hangErr) {
		return JobResult{
			Job:      job,
			Status:   report.StatusHung,
			Duration: hangErr.Elapsed,
			Stdout:   hangErr.Stdout,
			Stderr:   hangErr.Stderr,
			Err:      err,
		}
	}

	var sigErr *proc.SignalError
	if errors.As(err, &sigErr) {
		return JobResult{
			Job:    job,
			Status: report.StatusErrored,
			Stdout: sigErr.Stdout,
			Stderr: sigErr.Stderr,
			Err:    err,
		}
	}

	// LaunchError or an unexpected wait failure; no output to carry.
	return JobResult{Job: job, Status: report.StatusErrored, Err: err}
}

func (h *Harness) logResult(res JobResult) {
	var ev *zerolog.Event
	switch res.Status {
	case report.StatusPassed:
		ev = h.Log.Info()
	case report.StatusFailed:
		ev = h.Log.Error().Int("exit_code", res.ExitCode)
	default:
		ev = h.Log.Error().Err(res.Err)
	}
	ev.Str("job", res.Job.Name).
		Str("status", string(res.Status)).
		Dur("duration", res.Duration).
		Msg("job finished")
}

// TestResults converts job results into the report layer's shape.
func TestResults(results []JobResult) []report.TestResult {
	out := make([]report.TestResult, 0, len(results))
	for _, r := range results {
		tr := report.TestResult{
			Name:      r.Job.Name,
			ClassName: r.Job.Queue,
			Status:    r.Status,
			Duration:  r.Duration,
			Stdout:    string(r.Stdout),
			Stderr:    string(r.Stderr),
		}
		switch {
		case r.Err != nil:
			tr.Message = r.Err.Error()
		case r.Status == report.StatusFailed:
			tr.Message = fmt.Sprintf("exit code %d", r.ExitCode)
		}
		out = append(out, tr)
	}
	return out
}

// childEnv builds the child environment: the harness's own, minus any stale
// rig markers, plus the recursion guard and the job name.
func childEnv(jobName string) []string {
	env := make([]string, 0, len(os.Environ())+2)
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, runningEnv+"=") || strings.HasPrefix(e, "RIG_JOB=") {
			continue
		}
		env = append(env, e)
	}
	return append(env, runningEnv+"=1", "RIG_JOB="+jobName)
}
