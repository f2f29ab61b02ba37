// Package report writes job outcomes as JUnit-style XML so any CI system
// that understands junit-results.xml can display them. A hung job is an
// <error>, not a <failure>: the distinction between "the tests failed" and
// "the harness had to kill the process" must survive into the report.
package report

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileName matches the suffix CI result collectors look for.
const FileName = "junit-results.xml"

type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"  // child exited nonzero
	StatusHung    Status = "hung"    // child killed after exceeding its budget
	StatusErrored Status = "errored" // child never started or died to a stray signal
)

// TestResult is one job outcome as the report layer sees it.
type TestResult struct {
	Name      string
	ClassName string // the queue the job ran on
	Status    Status
	Duration  time.Duration
	Message   string // failure/error summary, empty when passed
	Stdout    string
	Stderr    string
}

type junitSuite struct {
	XMLName  xml.Name    `xml:"testsuite"`
	Name     string      `xml:"name,attr"`
	Tests    int         `xml:"tests,attr"`
	Failures int         `xml:"failures,attr"`
	Errors   int         `xml:"errors,attr"`
	Time     string      `xml:"time,attr"`
	Cases    []junitCase `xml:"testcase"`
}

type junitCase struct {
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *junitProblem `xml:"failure,omitempty"`
	Error     *junitProblem `xml:"error,omitempty"`
	SystemOut *junitOutput  `xml:"system-out,omitempty"`
	SystemErr *junitOutput  `xml:"system-err,omitempty"`
}

type junitProblem struct {
	Type    string `xml:"type,attr,omitempty"`
	Message string `xml:"message,attr,omitempty"`
}

type junitOutput struct {
	Text string `xml:",cdata"`
}

// WriteJUnit writes results as a single testsuite into dir/junit-results.xml,
// creating dir as needed, and returns the file path.
func WriteJUnit(dir, suiteName string, results []TestResult) (string, error) {
	suite := junitSuite{
		Name:  suiteName,
		Tests: len(results),
	}

	var total time.Duration
	for _, r := range results {
		total += r.Duration
		c := junitCase{
			Name:      r.Name,
			ClassName: r.ClassName,
			Time:      seconds(r.Duration),
		}
		switch r.Status {
		case StatusFailed:
			suite.Failures++
			c.Failure = &junitProblem{Type: "NonZeroExit", Message: r.Message}
		case StatusHung:
			suite.Errors++
			c.Error = &junitProblem{Type: "Hang", Message: r.Message}
		case StatusErrored:
			suite.Errors++
			c.Error = &junitProblem{Type: "Launch", Message: r.Message}
		}
		if r.Stdout != "" {
			c.SystemOut = &junitOutput{Text: r.Stdout}
		}
		if r.Stderr != "" {
			c.SystemErr = &junitOutput{Text: r.Stderr}
		}
		suite.Cases = append(suite.Cases, c)
	}
	suite.Time = seconds(total)

	out, err := xml.MarshalIndent(suite, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling junit suite: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating results dir: %w", err)
	}
	path := filepath.Join(dir, FileName)
	data := append([]byte(xml.Header), out...)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// seconds formats a duration the way JUnit time attributes expect.
func seconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}
