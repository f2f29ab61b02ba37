package e2e_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/testbed-ci/rig/internal/state"
)

var _ = Describe("rig run", func() {
	var dir string

	BeforeEach(func() {
		dir = tempDir()
	})

	It("runs passing jobs and writes a JUnit report", func() {
		writeConfig(dir, `queues:
  - name: any

jobs:
  - name: greet
    queue: any
    command: echo
    args: ["hello from rig"]
`)
		out := rigOK(dir, "run")
		Expect(out).To(ContainSubstring("report written"))

		junit := readReport(dir)
		Expect(junit).To(ContainSubstring(`<testsuite`))
		Expect(junit).To(ContainSubstring(`name="greet"`))
		Expect(junit).To(ContainSubstring("hello from rig"))
		Expect(junit).NotTo(ContainSubstring("<failure"))
		Expect(junit).NotTo(ContainSubstring("<error"))
	})

	It("reports a failing job as a failure and exits non-zero", func() {
		writeConfig(dir, `queues:
  - name: any

jobs:
  - name: broken
    queue: any
    command: sh
    args: ["-c", "echo sad >&2; exit 3"]
`)
		out, err := rig(dir, "run")
		Expect(err).To(HaveOccurred(), "output: %s", out)

		junit := readReport(dir)
		Expect(junit).To(ContainSubstring(`<failure`))
		Expect(junit).To(ContainSubstring("exit code 3"))
		Expect(junit).To(ContainSubstring("sad"))
	})

	It("kills a hanging job at its timeout and reports it as hung", func() {
		pidFile := filepath.Join(dir, "child.pid")
		writeConfig(dir, fmt.Sprintf(`queues:
  - name: any

jobs:
  - name: stuck
    queue: any
    command: sh
    args: ["-c", "echo $$ > %s; echo started; sleep 60"]
    timeout: 2s
`, pidFile))

		start := time.Now()
		out, err := rig(dir, "run")
		elapsed := time.Since(start)

		Expect(err).To(HaveOccurred(), "output: %s", out)
		Expect(elapsed).To(BeNumerically(">=", 2*time.Second))
		Expect(elapsed).To(BeNumerically("<", 15*time.Second),
			"the harness must not hang alongside its child")

		junit := readReport(dir)
		Expect(junit).To(ContainSubstring(`type="Hang"`))
		Expect(junit).To(ContainSubstring("started"), "partial output must survive into the report")

		// The child must actually be dead, not just reported dead.
		pidText := strings.TrimSpace(readFile(dir, "child.pid"))
		pid, convErr := strconv.Atoi(pidText)
		Expect(convErr).NotTo(HaveOccurred(), "pid file content: %q", pidText)
		Expect(state.IsProcessRunning(pid)).To(BeFalse(), "child %d survived the run", pid)
	})

	It("reports a missing executable as a launch error without waiting for any timeout", func() {
		writeConfig(dir, `settings:
  default_timeout: 5m

queues:
  - name: any

jobs:
  - name: ghost
    queue: any
    command: nonexistent-binary-xyz-123
`)
		start := time.Now()
		out, err := rig(dir, "run")
		elapsed := time.Since(start)

		Expect(err).To(HaveOccurred(), "output: %s", out)
		Expect(elapsed).To(BeNumerically("<", 5*time.Second))

		junit := readReport(dir)
		Expect(junit).To(ContainSubstring(`type="Launch"`))
	})

	It("keeps dispatching after a hang so later jobs still report", func() {
		writeConfig(dir, `queues:
  - name: any

jobs:
  - name: stuck
    queue: any
    command: sleep
    args: ["60"]
    timeout: 1s
  - name: survivor
    queue: any
    command: echo
    args: ["still here"]
`)
		out, err := rig(dir, "run")
		Expect(err).To(HaveOccurred(), "output: %s", out)

		junit := readReport(dir)
		Expect(junit).To(ContainSubstring(`name="survivor"`))
		Expect(junit).To(ContainSubstring("still here"))
	})

	It("skips queues that do not match this host", func() {
		writeConfig(dir, `queues:
  - name: any
  - name: nowhere
    os: windows

jobs:
  - name: local
    queue: any
    command: echo
    args: ["ran"]
  - name: foreign
    queue: nowhere
    command: nonexistent-binary-xyz-123
`)
		rigOK(dir, "run")

		junit := readReport(dir)
		Expect(junit).To(ContainSubstring(`name="local"`))
		Expect(junit).NotTo(ContainSubstring(`name="foreign"`))
	})

	It("cleans up its PID file after the run", func() {
		writeConfig(dir, `queues:
  - name: any

jobs:
  - name: quick
    queue: any
    command: echo
`)
		rigOK(dir, "run")
		_, err := os.Stat(filepath.Join(dir, ".rig", "run.pid"))
		Expect(os.IsNotExist(err)).To(BeTrue(), "run.pid should be removed")
	})
})
