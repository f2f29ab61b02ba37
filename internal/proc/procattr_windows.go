//go:build windows

package proc

import (
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// setProcGroup starts the child in a new console process group so the
// harness's own Ctrl+C events do not propagate to it.
func setProcGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: windows.CREATE_NEW_PROCESS_GROUP,
	}
}

// killTree terminates the child. Windows has no POSIX process groups;
// descendants that re-parented are left to the kernel, and drainGrace keeps
// their inherited pipes from stalling the wait.
func killTree(p *os.Process) {
	if p == nil {
		return
	}
	_ = p.Kill()
}

// exitSignal never reports a signal on Windows; abnormal terminations show
// up as nonzero exit codes instead.
func exitSignal(_ *os.ProcessState) (string, bool) {
	return "", false
}
