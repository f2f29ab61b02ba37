package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// tempDir creates a fresh working directory for one spec.
func tempDir() string {
	dir, err := os.MkdirTemp("", "rig-test-*")
	Expect(err).NotTo(HaveOccurred())
	DeferCleanup(func() { os.RemoveAll(dir) })
	return dir
}

// rig runs the rig binary in the given directory and returns combined output.
func rig(dir string, args ...string) (string, error) {
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

// rigOK runs the rig binary and expects success.
func rigOK(dir string, args ...string) string {
	out, err := rig(dir, args...)
	ExpectWithOffset(1, err).NotTo(HaveOccurred(), "rig %s failed: %s", strings.Join(args, " "), out)
	return out
}

// writeConfig writes rig.yaml in the given directory.
func writeConfig(dir, content string) {
	writeFile(dir, "rig.yaml", content)
}

// writeFile creates a file with the given content, creating parent dirs as needed.
func writeFile(dir, name, content string) {
	p := filepath.Join(dir, name)
	err := os.MkdirAll(filepath.Dir(p), 0o755)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	err = os.WriteFile(p, []byte(content), 0o644)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
}

// readFile reads a file relative to dir.
func readFile(dir, name string) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	return string(data)
}

// readReport reads the JUnit report written by a run in dir.
func readReport(dir string) string {
	return readFile(dir, filepath.Join("results", "junit-results.xml"))
}
