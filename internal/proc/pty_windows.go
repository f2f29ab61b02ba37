//go:build windows

package proc

import (
	"errors"
	"os"
	"os/exec"
)

// startPTY is unavailable on Windows; jobs requesting a terminal fail to
// launch rather than silently running without one.
func startPTY(_ *exec.Cmd) (*os.File, error) {
	return nil, errors.New("pty mode is not supported on windows")
}
