//go:build linux

package sandboxrunner

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// applyRlimits ports the teacher's cmd/sandbox-init/main.go
// applyRlimits into this process, applied once per submission instead
// of once per exec since SR is not replaced by the process it runs.
func applyRlimits(openFiles, outputMB, pids int64) error {
	if outputMB > 0 {
		b := uint64(outputMB) * 1024 * 1024
		if err := unix.Setrlimit(unix.RLIMIT_FSIZE, &unix.Rlimit{Cur: b, Max: b}); err != nil {
			return fmt.Errorf("set rlimit fsize: %w", err)
		}
	}
	if openFiles > 0 {
		v := uint64(openFiles)
		if err := unix.Setrlimit(unix.RLIMIT_NOFILE, &unix.Rlimit{Cur: v, Max: v}); err != nil {
			return fmt.Errorf("set rlimit nofile: %w", err)
		}
	}
	if pids > 0 {
		v := uint64(pids)
		if err := unix.Setrlimit(unix.RLIMIT_NPROC, &unix.Rlimit{Cur: v, Max: v}); err != nil {
			return fmt.Errorf("set rlimit nproc: %w", err)
		}
	}
	return nil
}

// childSysProcAttr puts each case's child in its own process group so
// a timeout kill can take down the whole group, not just the direct
// child, matching the teacher's engine_linux.go killProcessGroup
// pattern.
func childSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setpgid:   true,
		Pdeathsig: unix.SIGKILL,
	}
}

// peakMemoryKB reads the finished child's peak resident-set-size in
// kilobytes from the kernel's rusage accounting (Maxrss). It does not
// read any cgroup counter and has no "current" fallback; it returns 0
// when rusage is unavailable.
func peakMemoryKB(state *os.ProcessState) int64 {
	if state == nil {
		return 0
	}
	if ru, ok := state.SysUsage().(*syscall.Rusage); ok {
		return int64(ru.Maxrss)
	}
	return 0
}
