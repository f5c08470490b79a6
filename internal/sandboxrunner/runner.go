// Package sandboxrunner implements the Sandbox Runner (SR) contract
// of spec.md §4.1: invoked exactly once per submission inside an
// isolated execution environment, it compiles (or syntax-checks) the
// submitted source once, then runs it against each of N inputs with a
// per-case wall-clock cap, recording a structured result per case.
//
// Grounded on the teacher's cmd/sandbox-init/main.go rlimit/IO-redirect
// helpers, restructured from a single process-replacing unix.Exec into
// a compile-once, loop-N-times driver, since SR must survive past the
// first case to run the rest.
package sandboxrunner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"judgeengine/internal/catalog"
)

// Request is the SR invocation contract: positional args
// <language> <per_case_time_limit_s> <N> plus the mounted work
// directory (the process's current working directory).
type Request struct {
	Language          catalog.Language
	PerCaseTimeLimitS int
	N                 int
	WorkDir           string
	// OpenFiles, OutputMB and PIDs are the per-submission rlimit caps
	// from spec.md §4.2 step 4 ("max open files: 64", "max written
	// file size: 10 MB"); zero means "no cap".
	OpenFiles int64
	OutputMB  int64
	PIDs      int64
}

// Run executes the full SR contract against req and returns an error
// only for conditions SR cannot recover from by itself (e.g. it could
// not even write a meta record). Per spec.md §4.1, SR "never exits
// non-zero as long as it can emit meta records"; internal failures
// become IE meta entries instead of a propagated error wherever
// possible.
func Run(ctx context.Context, req Request) error {
	srcPath := filepath.Join(req.WorkDir, "code", req.Language.SourceFile)
	compileOK, compileLog := compileOnce(ctx, req, srcPath)
	if !compileOK {
		for i := 1; i <= req.N; i++ {
			if err := writeCE(req, i, compileLog); err != nil {
				return err
			}
		}
		return nil
	}

	// Caps apply only to running the submission, not to compiling it:
	// compilers routinely exceed 64 fds or fork helper processes.
	// Setrlimit here is permanent for the rest of this SR process, but
	// SR exits once this submission's N cases are done, so that's exactly
	// the scope the cap needs.
	if err := applyRlimits(req.OpenFiles, req.OutputMB, req.PIDs); err != nil {
		for i := 1; i <= req.N; i++ {
			_ = writeMeta(req, i, metaRecord{verdict: "IE", note: err.Error()})
		}
		return nil
	}

	binPath := filepath.Join(req.WorkDir, "code", "a.out")
	for i := 1; i <= req.N; i++ {
		runOneCase(ctx, req, binPath, i)
	}
	return nil
}

func compileOnce(ctx context.Context, req Request, srcPath string) (ok bool, log string) {
	l := req.Language
	if !l.IsCompiled() {
		if l.SyntaxCheckCmd == "" {
			return true, ""
		}
		argv, err := catalog.BuildCommand(l.SyntaxCheckCmd, srcPath, "", "")
		if err != nil {
			return false, err.Error()
		}
		var stderr bytes.Buffer
		cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			return false, stderr.String()
		}
		return true, ""
	}

	binPath := filepath.Join(req.WorkDir, "code", "a.out")
	argv, err := catalog.BuildCommand(l.CompileCmd, srcPath, binPath, "")
	if err != nil {
		return false, err.Error()
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return false, stderr.String()
	}
	return true, ""
}

func runOneCase(ctx context.Context, req Request, binPath string, i int) {
	l := req.Language
	argv, err := catalog.BuildCommand(l.ExecCmd, filepath.Join(req.WorkDir, "code", l.SourceFile), binPath, "")
	if err != nil {
		_ = writeMeta(req, i, metaRecord{verdict: "IE", note: err.Error()})
		return
	}

	timeout := time.Duration(req.PerCaseTimeLimitS) * time.Second
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	inPath := filepath.Join(req.WorkDir, "testcases", fmt.Sprintf("%d.in", i))
	stdin, err := os.Open(inPath)
	if err != nil {
		stdin, err = os.Open(os.DevNull)
		if err != nil {
			_ = writeMeta(req, i, metaRecord{verdict: "IE", note: "open stdin: " + err.Error()})
			return
		}
	}
	defer stdin.Close()

	outPath := filepath.Join(req.WorkDir, "results", fmt.Sprintf("%d.out", i))
	errPath := filepath.Join(req.WorkDir, "results", fmt.Sprintf("%d.err", i))
	stdout, err := os.Create(outPath)
	if err != nil {
		_ = writeMeta(req, i, metaRecord{verdict: "IE", note: "create stdout: " + err.Error()})
		return
	}
	defer stdout.Close()
	stderr, err := os.Create(errPath)
	if err != nil {
		_ = writeMeta(req, i, metaRecord{verdict: "IE", note: "create stderr: " + err.Error()})
		return
	}
	defer stderr.Close()

	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.SysProcAttr = childSysProcAttr()
	// On timeout, kill the child's whole process group, falling back to
	// the direct child when no group of that id exists.
	cmd.Cancel = func() error {
		if err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL); err != nil {
			return cmd.Process.Kill()
		}
		return nil
	}

	start := time.Now()
	runErr := cmd.Run()
	wallMs := time.Since(start).Milliseconds()

	exitCode, timedOut := resolveExitCode(runCtx, runErr, cmd.ProcessState)
	if timedOut {
		exitCode = timeoutExitCode
	}
	verdict, note := classify(exitCode)
	if note != "" {
		_, _ = stderr.WriteString("\n" + note + "\n")
	}

	rec := metaRecord{
		verdict:   string(verdict),
		timeMs:    wallMs,
		memoryKB:  peakMemoryKB(cmd.ProcessState),
		exitCode:  exitCode,
	}
	_ = writeMeta(req, i, rec)
}

// resolveExitCode derives the exit status used for verdict
// classification, translating Go's signal-terminated representation
// into the 128+signal convention the decision table expects, and
// detecting the SR-enforced wall-clock timeout.
func resolveExitCode(ctx context.Context, runErr error, state *os.ProcessState) (code int, timedOut bool) {
	if ctx.Err() == context.DeadlineExceeded {
		return timeoutExitCode, true
	}
	if runErr == nil {
		return 0, false
	}
	if state == nil {
		return -1, false
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal()), false
	}
	return state.ExitCode(), false
}
