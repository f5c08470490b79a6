// Command sandbox-runner is the Sandbox Runner (SR) binary: invoked
// exactly once per submission inside an isolated execution
// environment with positional args <language> <per_case_time_limit_s>
// <N>, against a mounted work directory as its current working
// directory, per the sandbox contract of spec.md §6.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"judgeengine/internal/catalog"
	"judgeengine/internal/sandboxrunner"
	"judgeengine/internal/security"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		// SR never exits non-zero as long as it emitted meta records;
		// this path is reached only for argument/setup failures before
		// any case could run.
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) != 4 {
		return fmt.Errorf("usage: sandbox-runner <language> <per_case_time_limit_s> <N>")
	}
	languageTag := os.Args[1]
	timeLimitS, err := strconv.Atoi(os.Args[2])
	if err != nil || timeLimitS <= 0 {
		return fmt.Errorf("invalid per_case_time_limit_s: %s", os.Args[2])
	}
	n, err := strconv.Atoi(os.Args[3])
	if err != nil || n <= 0 {
		return fmt.Errorf("invalid N: %s", os.Args[3])
	}

	lang, ok := catalog.Default().Lookup(languageTag)
	if !ok {
		return fmt.Errorf("unknown language: %s", languageTag)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getwd: %w", err)
	}

	// Loaded once, before compiling or running any case: the filter
	// applies to this thread and every process it execs afterward.
	if profile := os.Getenv("SECCOMP_PROFILE"); profile != "" {
		if err := security.ApplySeccomp(profile); err != nil {
			return fmt.Errorf("apply seccomp profile: %w", err)
		}
	}

	return sandboxrunner.Run(context.Background(), sandboxrunner.Request{
		Language:          lang,
		PerCaseTimeLimitS: timeLimitS,
		N:                 n,
		WorkDir:           workDir,
		OpenFiles:         envInt64("OPEN_FILES", 64),
		OutputMB:          envInt64("OUTPUT_MB", 10),
		PIDs:              envInt64("PIDS", 64),
	})
}

// envInt64 reads an rlimit cap from the environment, falling back to
// def when unset or unparsable.
func envInt64(name string, def int64) int64 {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}
