//go:build !windows

package proc

import (
	"os"
	"os/exec"
	"syscall"
)

// setProcGroup places the child in its own process group so a later kill
// reaches every descendant, not just the direct child.
func setProcGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killTree forcefully terminates the child and, when it leads its own group,
// everything it spawned. SIGKILL is deliberate: a hung process has already
// ignored its chance to exit politely.
func killTree(p *os.Process) {
	if p == nil {
		return
	}
	if err := syscall.Kill(-p.Pid, syscall.SIGKILL); err != nil {
		// Not a group leader; fall back to the process itself.
		_ = p.Kill()
	}
}

// exitSignal reports the signal that terminated the child, if any.
func exitSignal(state *os.ProcessState) (string, bool) {
	if state == nil {
		return "", false
	}
	ws, ok := state.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return "", false
	}
	return ws.Signal().String(), true
}
