package config

import (
	"fmt"
	"time"
)

// knownOS lists the queue os values the harness dispatches on.
var knownOS = map[string]bool{"linux": true, "darwin": true, "windows": true}

// Validate checks a loaded Config for semantic errors beyond what Load
// catches. Returns a list of human-readable error strings, one per issue.
func Validate(cfg *Config) []string {
	var errs []string

	queues := make(map[string]bool)
	for i, q := range cfg.Queues {
		if q.Name == "" {
			errs = append(errs, fmt.Sprintf("queues[%d].name: required field is empty", i))
			continue
		}
		if queues[q.Name] {
			errs = append(errs, fmt.Sprintf("queues[%d].name: duplicate queue name %q", i, q.Name))
		}
		queues[q.Name] = true
		if q.OS != "" && !knownOS[q.OS] {
			errs = append(errs, fmt.Sprintf("queues[%d].os: unknown os %q (want linux, darwin, or windows)", i, q.OS))
		}
	}

	if cfg.Settings.DefaultTimeout != "" {
		if _, err := time.ParseDuration(cfg.Settings.DefaultTimeout); err != nil {
			errs = append(errs, fmt.Sprintf("settings.default_timeout: %v", err))
		}
	}

	seen := make(map[string]bool)
	for i, j := range cfg.Jobs {
		if j.Name == "" {
			errs = append(errs, fmt.Sprintf("jobs[%d].name: required field is empty", i))
		} else if seen[j.Name] {
			errs = append(errs, fmt.Sprintf("jobs[%d].name: duplicate job name %q", i, j.Name))
		} else {
			seen[j.Name] = true
		}

		if j.Command == "" {
			errs = append(errs, fmt.Sprintf("jobs[%d].command: required field is empty", i))
		}

		if j.Queue == "" {
			errs = append(errs, fmt.Sprintf("jobs[%d].queue: required field is empty", i))
		} else if !queues[j.Queue] {
			errs = append(errs, fmt.Sprintf("jobs[%d].queue: unknown queue %q", i, j.Queue))
		}

		if j.Timeout != "" {
			if _, err := time.ParseDuration(j.Timeout); err != nil {
				errs = append(errs, fmt.Sprintf("jobs[%d].timeout: %v", i, err))
			}
		}
	}

	return errs
}
