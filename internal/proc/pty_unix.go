//go:build !windows

package proc

import (
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// startPTY launches cmd with its stdio attached to a fresh pseudo-terminal
// and returns the master end. pty.Start puts the child in its own session
// (and therefore its own process group), so killTree still reaches it.
func startPTY(cmd *exec.Cmd) (*os.File, error) {
	return pty.Start(cmd)
}
