package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Settings struct {
	ResultsDir     string `yaml:"results_dir,omitempty"`
	DefaultTimeout string `yaml:"default_timeout,omitempty"`
}

type Queue struct {
	Name string `yaml:"name"`
	OS   string `yaml:"os,omitempty"` // linux, darwin, windows; empty matches any host
}

type Job struct {
	Name    string   `yaml:"name"`
	Queue   string   `yaml:"queue"`
	Command string   `yaml:"command"`
	Args    []string `yaml:"args,omitempty"`
	Dir     string   `yaml:"dir,omitempty"`
	Timeout string   `yaml:"timeout,omitempty"`
	PTY     bool     `yaml:"pty,omitempty"`
}

type Config struct {
	Settings Settings `yaml:"settings"`
	Queues   []Queue  `yaml:"queues"`
	Jobs     []Job    `yaml:"jobs"`
}

// DefaultResultsDir is where junit-results.xml lands when settings.results_dir
// is not set.
const DefaultResultsDir = "results"

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.Jobs) == 0 {
		return nil, fmt.Errorf("config: at least one job is required")
	}

	if cfg.Settings.ResultsDir == "" {
		cfg.Settings.ResultsDir = DefaultResultsDir
	}

	return &cfg, nil
}

// JobTimeout resolves the effective time budget for a job: the job's own
// timeout if set, otherwise settings.default_timeout, otherwise none.
func (c *Config) JobTimeout(j Job) (time.Duration, error) {
	raw := j.Timeout
	if raw == "" {
		raw = c.Settings.DefaultTimeout
	}
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("job %s: parsing timeout %q: %w", j.Name, raw, err)
	}
	return d, nil
}

// JobsForHost returns the jobs whose queue matches the given GOOS, in config
// order. A queue with no os constraint matches every host; a job naming an
// unknown queue never matches (Validate reports those).
func (c *Config) JobsForHost(goos string) []Job {
	matched := make(map[string]bool)
	for _, q := range c.Queues {
		if q.OS == "" || q.OS == goos {
			matched[q.Name] = true
		}
	}

	var jobs []Job
	for _, j := range c.Jobs {
		if matched[j.Queue] {
			jobs = append(jobs, j)
		}
	}
	return jobs
}
