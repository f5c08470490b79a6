// Package engine launches exactly one isolated execution environment
// per submission (the Sandbox Runner invocation), per spec.md §4.2.
// It exposes the two implementations design note §9 calls for — an
// isolated-container backend and a direct-subprocess backend — behind
// one interface, so the Batch Executor can share all pre/post logic
// and differ only in how the sandboxed region is invoked.
package engine

import (
	"context"

	"judgeengine/internal/security"
)

// Spec describes one submission-level sandbox invocation: run the SR
// binary (Cmd) inside WorkDir under the given resource caps and
// isolation profile.
type Spec struct {
	SubmissionID string
	WorkDir      string
	Cmd          []string
	Env          []string
	WallCapMs    int64
	MemoryMB     int64
	PIDs         int64
	OpenFiles    int64
	OutputMB     int64
	Isolation    security.IsolationProfile
}

// Result is the outcome of one sandbox invocation as observed from the
// host side: the SR process's own exit signal plus best-effort
// resource accounting, used by the Batch Executor to synthesise
// per-case verdicts when SR's own meta records are missing (spec.md
// §4.2 step 5).
type Result struct {
	ExitCode                 int
	WallTimeMs               int64
	PeakMemoryKB             int64
	OomKilled                bool
	MemoryAccountingReliable bool
}

// Engine launches and supervises exactly one sandboxed SR invocation.
type Engine interface {
	Run(ctx context.Context, spec Spec) (Result, error)
	// KillSubmission forcibly tears down any sandbox still running for
	// submissionID. The Batch Executor and HTTP edge do not call it.
	KillSubmission(ctx context.Context, submissionID string) error
}

// Mode selects which Engine implementation the Batch Executor uses.
type Mode string

const (
	ModeContainer Mode = "container"
	ModeProcess   Mode = "process"
)
