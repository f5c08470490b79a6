//go:build !linux

package sandboxrunner

import (
	"os"
	"syscall"
)

func childSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{}
}

// applyRlimits is a no-op outside Linux: rlimit enforcement is a
// container-backend concern there, and this build only ever runs
// under the process backend for local/cross-platform development.
func applyRlimits(openFiles, outputMB, pids int64) error {
	return nil
}

func peakMemoryKB(state *os.ProcessState) int64 {
	if state == nil {
		return 0
	}
	if ru, ok := state.SysUsage().(*syscall.Rusage); ok {
		return int64(ru.Maxrss)
	}
	return 0
}
