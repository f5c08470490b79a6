//go:build linux

package engine

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// ContainerEngine runs the Sandbox Runner inside a cgroup-v2-capped,
// namespace-isolated child process: network disabled when the isolation
// profile says so, memory/CPU/PIDs bounded. It does not drop
// capabilities or set no-new-privileges itself; no-new-privileges is
// set only by the Sandbox Runner, and only when a seccomp profile is
// configured. Grounded on the
// teacher's engine_linux.go + cgroup_linux.go, generalised from a
// per-test-case invocation to exactly one invocation per submission.
type ContainerEngine struct {
	cfg Config

	mu        sync.Mutex
	cgroupDir map[string]string // submissionID -> cgroup dir, for KillSubmission
}

// NewContainerEngine builds the cgroup/namespace/seccomp backend.
func NewContainerEngine(cfg Config) *ContainerEngine {
	return &ContainerEngine{cfg: cfg, cgroupDir: make(map[string]string)}
}

func (e *ContainerEngine) Run(ctx context.Context, spec Spec) (Result, error) {
	var cgroupDir string
	if e.cfg.EnableCgroup {
		dir, err := createCgroup(e.cfg.CgroupRoot, spec.SubmissionID)
		if err != nil {
			return Result{}, fmt.Errorf("create cgroup: %w", err)
		}
		cgroupDir = dir
		if err := applyCgroupLimits(cgroupDir, spec.MemoryMB, spec.PIDs); err != nil {
			return Result{}, fmt.Errorf("apply cgroup limits: %w", err)
		}
		e.mu.Lock()
		e.cgroupDir[spec.SubmissionID] = cgroupDir
		e.mu.Unlock()
		defer func() {
			e.mu.Lock()
			delete(e.cgroupDir, spec.SubmissionID)
			e.mu.Unlock()
			_ = removeCgroup(cgroupDir)
		}()
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	cmd := exec.CommandContext(runCtx, spec.Cmd[0], spec.Cmd[1:]...)
	cmd.Dir = spec.WorkDir
	cmd.Env = spec.Env
	cmd.SysProcAttr = e.sysProcAttr(spec)

	if err := cmd.Start(); err != nil {
		return Result{}, fmt.Errorf("start sandbox: %w", err)
	}
	if cgroupDir != "" {
		_ = addProcessToCgroup(cgroupDir, cmd.Process.Pid)
	}

	wallCap := time.Duration(spec.WallCapMs) * time.Millisecond
	timer := time.NewTimer(wallCap)
	defer timer.Stop()

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	start := time.Now()
	var waitErr error
	select {
	case waitErr = <-done:
	case <-timer.C:
		e.killProcessGroup(cmd.Process.Pid, cgroupDir)
		waitErr = <-done
	}
	wallMs := time.Since(start).Milliseconds()

	exitCode := exitCodeFromErr(waitErr)
	result := Result{
		ExitCode:                 exitCode,
		WallTimeMs:               wallMs,
		MemoryAccountingReliable: true,
	}
	if cgroupDir != "" {
		result.PeakMemoryKB = memoryPeakKB(cgroupDir)
		result.OomKilled = wasOomKilled(cgroupDir)
	}
	return result, nil
}

func (e *ContainerEngine) KillSubmission(ctx context.Context, submissionID string) error {
	e.mu.Lock()
	dir, ok := e.cgroupDir[submissionID]
	e.mu.Unlock()
	if !ok {
		return nil
	}
	return killCgroup(dir)
}

func (e *ContainerEngine) sysProcAttr(spec Spec) *syscall.SysProcAttr {
	attr := &syscall.SysProcAttr{
		Setpgid:   true,
		Pdeathsig: unix.SIGKILL,
	}
	if e.cfg.EnableNamespace {
		attr.Cloneflags = unix.CLONE_NEWNS | unix.CLONE_NEWPID | unix.CLONE_NEWUTS | unix.CLONE_NEWIPC
		if spec.Isolation.DisableNetwork {
			attr.Cloneflags |= unix.CLONE_NEWNET
		}
	}
	return attr
}

func (e *ContainerEngine) killProcessGroup(pid int, cgroupDir string) {
	if cgroupDir != "" {
		_ = killCgroup(cgroupDir)
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}

func exitCodeFromErr(err error) int {
	if err == nil {
		return 0
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok {
			if ws.Signaled() {
				return 128 + int(ws.Signal())
			}
			return ws.ExitStatus()
		}
		return exitErr.ExitCode()
	}
	return -1
}
