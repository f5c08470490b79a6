// Package executor implements the Batch Executor (BE), per spec.md
// §4.2: the host-side driver that prepares an ephemeral work
// directory, launches exactly one sandboxed Sandbox Runner invocation
// per submission, reads back its N result records, and returns a
// structured result array. BE never throws past its boundary — every
// failure becomes a vector of IE results.
//
// Grounded on the teacher's judge_service/internal/sandbox/worker.go
// for the work-directory lifecycle and validation ordering, but
// restructured so the sandbox is invoked exactly once per submission
// instead of once per test case.
package executor

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"judgeengine/internal/catalog"
	"judgeengine/internal/engine"
	"judgeengine/internal/judgetype"
	"judgeengine/internal/security"
	"judgeengine/internal/workspace"
	"judgeengine/pkg/log"
)

// Executor is the Batch Executor's public contract.
type Executor interface {
	ExecuteOne(ctx context.Context, sub judgetype.Submission) (judgetype.RunResult, error)
	ExecuteBatch(ctx context.Context, sub judgetype.Submission) ([]judgetype.RunResult, error)
}

// BatchExecutor is the concrete BE, parameterised by whichever Engine
// implementation was selected at startup (container or process).
type BatchExecutor struct {
	cat *catalog.Catalog
	eng engine.Engine
	cfg Config
}

// New builds a Batch Executor over the given language catalogue and
// sandbox engine.
func New(cat *catalog.Catalog, eng engine.Engine, cfg Config) *BatchExecutor {
	return &BatchExecutor{cat: cat, eng: eng, cfg: cfg}
}

// ErrUnknownLanguage is returned by ExecuteBatch when the submission's
// language tag is not in the catalogue — a precondition violation the
// HTTP edge translates into a 400, per spec.md §4.2 step 1.
var ErrUnknownLanguage = fmt.Errorf("unknown language")

// ExecuteOne is a convenience wrapper over ExecuteBatch with N=1, per
// spec.md §4.2.
func (be *BatchExecutor) ExecuteOne(ctx context.Context, sub judgetype.Submission) (judgetype.RunResult, error) {
	if len(sub.TestCases) != 1 {
		return judgetype.RunResult{}, fmt.Errorf("execute_one requires exactly one input")
	}
	results, err := be.ExecuteBatch(ctx, sub)
	if err != nil {
		return judgetype.RunResult{}, err
	}
	return results[0], nil
}

// ExecuteBatch is the core BE operation, implementing spec.md §4.2
// steps 1-7 verbatim.
func (be *BatchExecutor) ExecuteBatch(ctx context.Context, sub judgetype.Submission) ([]judgetype.RunResult, error) {
	n := len(sub.TestCases)
	if n == 0 {
		return nil, fmt.Errorf("submission has no test cases")
	}

	// Step 1: validate language tag against the catalogue.
	lang, ok := be.cat.Lookup(sub.LanguageTag)
	if !ok {
		return nil, ErrUnknownLanguage
	}

	// Step 2: apply the language's time/memory multipliers, then clamp
	// to configured maxima (defence in depth).
	scaled := catalog.ScaleLimits(lang, judgetype.ResourceLimit{
		CPUTimeMs: int64(sub.PerCaseTimeLimitS) * 1000,
		MemoryMB:  sub.MemoryLimitMB,
	})
	timeLimitS := int((scaled.CPUTimeMs + 999) / 1000)
	if timeLimitS > be.cfg.MaxTimeLimitS {
		timeLimitS = be.cfg.MaxTimeLimitS
	}
	if timeLimitS < 1 {
		timeLimitS = 1
	}
	memoryMB := scaled.MemoryMB
	if memoryMB > be.cfg.MaxMemoryMB {
		memoryMB = be.cfg.MaxMemoryMB
	}

	results, err := be.runBatch(ctx, lang, sub, timeLimitS, memoryMB, n)
	if err != nil {
		// Failure semantics: any exception along the happy path is
		// caught; BE returns N IE results carrying the message, and
		// never lets the error cross its own boundary.
		return ieResults(n, err), nil
	}
	return results, nil
}

func (be *BatchExecutor) runBatch(ctx context.Context, lang catalog.Language, sub judgetype.Submission, timeLimitS int, memoryMB int64, n int) (results []judgetype.RunResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in batch executor: %v", r)
		}
	}()

	// Step 3: create the ephemeral work directory; write source and
	// inputs. Guaranteed removed on every termination path.
	ws, werr := workspace.Create(be.cfg.TempDir)
	if werr != nil {
		return nil, fmt.Errorf("create workspace: %w", werr)
	}
	defer func() {
		if cerr := ws.Close(); cerr != nil {
			// Cleanup failures are logged and swallowed; they must never
			// replace the primary result.
			log.Warn(ctx, "workspace cleanup failed", zap.String("workspace", ws.Root), zap.Error(cerr))
		}
	}()

	if werr := ws.WriteSource(lang.SourceFile, sub.SourceText); werr != nil {
		return nil, fmt.Errorf("write source: %w", werr)
	}
	inputs := make([]string, n)
	for i, tc := range sub.TestCases {
		inputs[i] = tc.Input
	}
	if werr := ws.WriteInputs(inputs); werr != nil {
		return nil, fmt.Errorf("write inputs: %w", werr)
	}

	// Step 4: launch the sandbox with the submission-level wall cap and
	// resource caps.
	wallCapMs := int64(timeLimitS)*int64(n)*1000 + int64(be.cfg.SubmissionWallSlackS)*1000
	const (
		pids      int64 = 64
		openFiles int64 = 64
		outputMB  int64 = 10
	)
	env := []string{
		"PATH=/usr/local/sbin:/usr/local/bin:/usr/sbin:/usr/bin:/sbin:/bin",
		"OPEN_FILES=" + strconv.FormatInt(openFiles, 10),
		"OUTPUT_MB=" + strconv.FormatInt(outputMB, 10),
		"PIDS=" + strconv.FormatInt(pids, 10),
	}
	if be.cfg.SeccompProfile != "" {
		env = append(env, "SECCOMP_PROFILE="+be.cfg.SeccompProfile)
	}
	spec := engine.Spec{
		SubmissionID: ws.ID,
		WorkDir:      ws.Root,
		Cmd:          []string{be.cfg.SandboxBinaryPath, lang.Tag, strconv.Itoa(timeLimitS), strconv.Itoa(n)},
		Env:          env,
		WallCapMs:    wallCapMs,
		MemoryMB:     memoryMB,
		PIDs:         pids,
		OpenFiles:    openFiles,
		OutputMB:     outputMB,
		Isolation:    security.Default(),
	}

	engResult, rerr := be.eng.Run(ctx, spec)
	if rerr != nil {
		return nil, fmt.Errorf("sandbox invocation: %w", rerr)
	}

	// Steps 5-6: parse each results/i.meta, attributing from the
	// sandbox's own exit when SR evidence is missing, and truncate
	// captured output.
	out := make([]judgetype.RunResult, n)
	for i := 1; i <= n; i++ {
		out[i-1] = be.readCaseResult(ws, i, engResult)
	}
	return out, nil
}

func (be *BatchExecutor) readCaseResult(ws *workspace.Workspace, i int, eng engine.Result) judgetype.RunResult {
	m := readMeta(ws.ResultMeta(i))
	stdout := readFileOrEmpty(ws.ResultOut(i))
	stderr := readFileOrEmpty(ws.ResultErr(i))
	stdout, stdoutTrunc := truncate(stdout, be.cfg.MaxStdoutBytes)
	stderr, stderrTrunc := truncate(stderr, be.cfg.MaxStderrBytes)

	verdict := m.verdict
	if !m.hasVerdict {
		// Step 5: meta missing or has no verdict — attribute from the
		// sandbox's own exit signal. This is the only place a per-case
		// verdict may be synthesised without SR evidence.
		switch {
		case eng.OomKilled, eng.ExitCode == 137:
			verdict = judgetype.MLE
		case eng.ExitCode != 0:
			verdict = judgetype.RE
		default:
			verdict = judgetype.IE
		}
	}

	return judgetype.RunResult{
		Verdict:                  verdict,
		Stdout:                   stdout,
		Stderr:                   stderr,
		StdoutTruncated:          stdoutTrunc,
		StderrTruncated:          stderrTrunc,
		ExecutionTimeMs:          m.timeMs,
		PeakMemoryKB:             pickMemory(m.memoryKB, eng.PeakMemoryKB),
		ExitCode:                 m.exitCode,
		WallTimeMs:               eng.WallTimeMs,
		MemoryAccountingReliable: m.hasVerdict || eng.MemoryAccountingReliable,
	}
}

func pickMemory(fromMeta, fromEngine int64) int64 {
	if fromMeta > 0 {
		return fromMeta
	}
	return fromEngine
}

func ieResults(n int, cause error) []judgetype.RunResult {
	out := make([]judgetype.RunResult, n)
	for i := range out {
		out[i] = judgetype.RunResult{
			Verdict: judgetype.IE,
			Stderr:  cause.Error(),
		}
	}
	return out
}
