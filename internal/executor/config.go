package executor

// Config holds the Batch Executor's own configuration: defence-in-depth
// clamps (validation already enforced these bounds before admission,
// per spec.md §4.2 step 2) and the output-truncation caps of step 6.
type Config struct {
	TempDir              string
	SandboxBinaryPath    string
	SeccompProfile       string // passed to the sandbox via SECCOMP_PROFILE; empty disables filtering
	MaxTimeLimitS        int
	MaxMemoryMB          int64
	MaxStdoutBytes       int
	MaxStderrBytes       int
	SubmissionWallSlackS int // the "+20s" in wall_cap = N*per_case + 20s
}

// DefaultConfig returns the defaults named in spec.md §6's
// configuration table.
func DefaultConfig() Config {
	return Config{
		TempDir:              "/tmp/judge",
		SandboxBinaryPath:    "sandbox-runner",
		MaxTimeLimitS:        10,
		MaxMemoryMB:          512,
		MaxStdoutBytes:       10000,
		MaxStderrBytes:       5000,
		SubmissionWallSlackS: 20,
	}
}
