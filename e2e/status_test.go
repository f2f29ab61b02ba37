package e2e_test

import (
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/testbed-ci/rig/internal/state"
)

var _ = Describe("rig status", func() {
	It("reports idle when nothing is running", func() {
		dir := tempDir()
		Expect(rigOK(dir, "status")).To(ContainSubstring("run: idle"))
	})

	It("reports a live run recorded in the PID file", func() {
		dir := tempDir()
		// The e2e process itself stands in for a live harness.
		Expect(state.WritePID(dir, os.Getpid())).To(Succeed())
		DeferCleanup(func() { _ = state.RemovePID(dir) })

		Expect(rigOK(dir, "status")).To(ContainSubstring("run: live"))
	})

	It("flags a stale job PID file", func() {
		dir := tempDir()
		Expect(state.WriteJobPID(dir, "old-job", 1<<30, time.Now())).To(Succeed())

		out := rigOK(dir, "status")
		Expect(out).To(ContainSubstring("old-job"))
		Expect(out).To(ContainSubstring("stale"))
	})
})
