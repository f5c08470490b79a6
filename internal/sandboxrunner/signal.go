package sandboxrunner

import "judgeengine/internal/judgetype"

// signalRow is one row of the exit-code -> verdict decision table of
// spec.md §4.1. Encoded as data, not branches, per the design note in
// §9 ("encode it as data, not branches, so it is trivially testable").
type signalRow struct {
	exitCode int
	verdict  judgetype.Verdict
	note     string
}

// timeoutExitCode is the reserved status SR synthesises itself when it
// kills a case for exceeding its wall-clock cap (the "wall-clock
// timeout wrapper" convention borrowed from GNU timeout(1)).
const timeoutExitCode = 124

var signalTable = []signalRow{
	{exitCode: 124, verdict: judgetype.TLE},
	{exitCode: 137, verdict: judgetype.MLE},
	{exitCode: 139, verdict: judgetype.RE, note: "Segmentation fault"},
	{exitCode: 136, verdict: judgetype.RE, note: "Floating point exception"},
	{exitCode: 134, verdict: judgetype.RE, note: "Aborted"},
}

// classify maps a child's exit code to a verdict and an optional note
// appended to stderr, per the table in spec.md §4.1 step 5.
func classify(exitCode int) (judgetype.Verdict, string) {
	if exitCode == 0 {
		return judgetype.OK, ""
	}
	for _, row := range signalTable {
		if row.exitCode == exitCode {
			return row.verdict, row.note
		}
	}
	return judgetype.RE, ""
}
