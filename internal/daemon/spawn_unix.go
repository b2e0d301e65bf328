//go:build unix

package daemon

import (
	"os"
	"os/exec"
	"strconv"
	"syscall"
)

// spawnDetached launches the daemon in its own session (Setsid) so it
// survives the calling process. The daemon is told the launcher's PID;
// stdio goes to /dev/null. The child is never waited on.
func spawnDetached(binary string, parentPID int) error {
	cmd := exec.Command(binary, "--parent-pid", strconv.Itoa(parentPID))

	if devnull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0); err == nil {
		cmd.Stdin = devnull
		cmd.Stdout = devnull
		cmd.Stderr = devnull
		defer devnull.Close()
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	return cmd.Start()
}
