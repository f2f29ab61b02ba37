package config

import "encoding/json"

// Schema returns a JSON Schema describing rig.yaml as indented JSON.
func Schema() []byte {
	schema := map[string]any{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"title":                "rig.yaml",
		"description":          "Configuration for rig — declares test queues and the jobs dispatched to them as child processes.",
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"queues", "jobs"},
		"properties": map[string]any{
			"settings": map[string]any{
				"description":          "Global settings for the harness.",
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"results_dir": map[string]any{
						"type":        "string",
						"description": "Directory where junit-results.xml is written. Defaults to \"results\".",
					},
					"default_timeout": map[string]any{
						"type":        "string",
						"description": "Time budget applied to jobs that do not set their own (Go duration, e.g. \"2m\"). A job exceeding its budget is killed and reported as hung. Empty means no budget.",
					},
				},
			},
			"queues": map[string]any{
				"description": "Test queues. A queue selects which hosts run its jobs; a job is dispatched only when its queue matches the host.",
				"type":        "array",
				"items": map[string]any{
					"type":                 "object",
					"required":             []string{"name"},
					"additionalProperties": false,
					"properties": map[string]any{
						"name": map[string]any{
							"type":        "string",
							"description": "Unique name for this queue, referenced by jobs.",
						},
						"os": map[string]any{
							"type":        "string",
							"enum":        []string{"linux", "darwin", "windows"},
							"description": "Restrict this queue to one operating system. Omit to match every host.",
						},
					},
				},
			},
			"jobs": map[string]any{
				"description": "Ordered list of test jobs. Each job runs as one child process owned by the harness until it exits or is killed.",
				"type":        "array",
				"items": map[string]any{
					"type":                 "object",
					"required":             []string{"name", "queue", "command"},
					"additionalProperties": false,
					"properties": map[string]any{
						"name": map[string]any{
							"type":        "string",
							"description": "Unique name for this job; becomes the testcase name in the JUnit report.",
						},
						"queue": map[string]any{
							"type":        "string",
							"description": "Name of the queue this job is dispatched to.",
						},
						"command": map[string]any{
							"type":        "string",
							"description": "Executable to run, resolved via PATH if not absolute.",
						},
						"args": map[string]any{
							"type":        "array",
							"description": "Arguments passed to the command.",
							"items":       map[string]any{"type": "string"},
						},
						"dir": map[string]any{
							"type":        "string",
							"description": "Working directory for the child. If omitted, the harness's own directory is inherited.",
						},
						"timeout": map[string]any{
							"type":        "string",
							"description": "Time budget for this job (Go duration, e.g. \"30s\"), overriding settings.default_timeout.",
						},
						"pty": map[string]any{
							"type":        "boolean",
							"description": "Run the child under a pseudo-terminal (unix only). Stdout and stderr are merged.",
						},
					},
				},
			},
		},
	}

	out, _ := json.MarshalIndent(schema, "", "  ")
	return out
}
