// Package judgetype holds the data-model types shared by every
// component of the judge pipeline: Sandbox Runner, Batch Executor,
// Admission Queue, and Verdict Engine.
package judgetype

// Verdict is a closed-set tag classifying the outcome of one test case
// or a whole submission.
type Verdict string

const (
	OK Verdict = "OK" // produced only by SR: exit 0, in time
	CE Verdict = "CE" // compilation failed
	TLE Verdict = "TLE"
	MLE Verdict = "MLE"
	RE  Verdict = "RE"
	IE  Verdict = "IE" // internal error

	// Produced only by the Verdict Engine's comparator.
	AC Verdict = "AC"
	WA Verdict = "WA"
)

// ResourceLimit bounds one sandboxed execution.
type ResourceLimit struct {
	CPUTimeMs  int64
	WallTimeMs int64
	MemoryMB   int64
	StackMB    int64
	OutputMB   int64
	PIDs       int64
	OpenFiles  int64
}

// RunResult is the per-case run result produced by the Batch Executor
// after reading back the Sandbox Runner's meta record (or synthesising
// one from the sandbox's own exit signal).
type RunResult struct {
	Verdict       Verdict
	Stdout        string
	Stderr        string
	StdoutTruncated bool
	StderrTruncated bool
	ExecutionTimeMs int64
	PeakMemoryKB    int64
	ExitCode        int
	WallTimeMs      int64
	// MemoryAccountingReliable is false when PeakMemoryKB came from a
	// best-effort host-side measurement (the process engine) rather
	// than the sandboxed child's own accounting.
	MemoryAccountingReliable bool
}

// TestCase is one input/expected-output pair of a judge submission.
type TestCase struct {
	Input          string
	ExpectedOutput string
	// SubtaskID groups test cases for scoring; zero means "the implicit
	// single subtask" when the submission does not use subtasks.
	SubtaskID int
}

// Subtask groups test cases under a score weight and a stop policy.
type Subtask struct {
	ID         int
	Score      float64
	Strategy   string // "min" (score = weight if all pass) or "sum"
	StopOnFail bool
}

// Submission is the transient input to the Batch Executor / Verdict
// Engine pipeline.
type Submission struct {
	LanguageTag       string
	SourceText        string
	PerCaseTimeLimitS int
	MemoryLimitMB     int64
	TestCases         []TestCase
	Subtasks          []Subtask
}

// PerCaseVerdict is one test case's final (post-VE) outcome.
type PerCaseVerdict struct {
	Verdict         Verdict
	Run             RunResult
	Score           float64
	SubtaskID       int
}

// SubmissionResult is the judge-form submission-level result.
type SubmissionResult struct {
	OverallVerdict     Verdict
	TotalTimeMs        int64
	MaxMemoryKB        int64
	TotalCases         int
	Passed             int
	Failed             int
	Skipped            int
	FirstFailedIndex   *int
	TotalScore         float64
	PerCase            []PerCaseVerdict
}
