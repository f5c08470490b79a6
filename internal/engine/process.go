package engine

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"
)

// ProcessEngine runs the Sandbox Runner as a direct subprocess with
// only a wall-clock timeout enforced: no cgroup, no namespaces, no
// seccomp. Used on hosts where a container runtime is unavailable, per
// spec.md §4.2's "direct-subprocess backend".
//
// Its memory accounting is best-effort (the host's own measurement of
// the child, not the child's own isolated accounting) — per the Open
// Question in spec.md §9, callers must treat
// Result.MemoryAccountingReliable == false as "this number is
// undefined", not as ground truth.
type ProcessEngine struct {
	mu    sync.Mutex
	procs map[string]int // submissionID -> pid
}

// NewProcessEngine builds the portable fallback backend.
func NewProcessEngine() *ProcessEngine {
	return &ProcessEngine{procs: make(map[string]int)}
}

func (e *ProcessEngine) Run(ctx context.Context, spec Spec) (Result, error) {
	wallCap := time.Duration(spec.WallCapMs) * time.Millisecond
	runCtx, cancel := context.WithTimeout(ctx, wallCap)
	defer cancel()

	cmd := exec.CommandContext(runCtx, spec.Cmd[0], spec.Cmd[1:]...)
	cmd.Dir = spec.WorkDir
	cmd.Env = spec.Env
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return Result{}, fmt.Errorf("start sandbox: %w", err)
	}

	e.mu.Lock()
	e.procs[spec.SubmissionID] = cmd.Process.Pid
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		delete(e.procs, spec.SubmissionID)
		e.mu.Unlock()
	}()

	start := time.Now()
	waitErr := cmd.Wait()
	wallMs := time.Since(start).Milliseconds()

	timedOut := runCtx.Err() == context.DeadlineExceeded
	if timedOut {
		_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}

	return Result{
		ExitCode:                 exitCodeFromErrPortable(waitErr),
		WallTimeMs:               wallMs,
		PeakMemoryKB:             peakMemoryKBPortable(cmd.ProcessState),
		MemoryAccountingReliable: false,
	}, nil
}

func (e *ProcessEngine) KillSubmission(ctx context.Context, submissionID string) error {
	e.mu.Lock()
	pid, ok := e.procs[submissionID]
	e.mu.Unlock()
	if !ok {
		return nil
	}
	return syscall.Kill(-pid, syscall.SIGKILL)
}

// peakMemoryKBPortable reads the host's rusage view of the finished
// child. This is the "best-effort" number flagged by
// MemoryAccountingReliable == false: it reflects the host process
// measurement, not the sandboxed child's own accounting.
func peakMemoryKBPortable(state *os.ProcessState) int64 {
	if state == nil {
		return 0
	}
	if ru, ok := state.SysUsage().(*syscall.Rusage); ok {
		return int64(ru.Maxrss)
	}
	return 0
}

func exitCodeFromErrPortable(err error) int {
	if err == nil {
		return 0
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return 128 + int(ws.Signal())
		}
		return exitErr.ExitCode()
	}
	return -1
}
