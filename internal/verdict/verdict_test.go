package verdict

import (
	"testing"

	"judgeengine/internal/judgetype"
)

func TestNormaliseIsIdempotent(t *testing.T) {
	cases := []string{
		"hello\r\nworld\r\n",
		"a \t\nb\t \n  ",
		"no trailing whitespace",
		"",
	}
	for _, c := range cases {
		once := Normalise(c)
		twice := Normalise(once)
		if once != twice {
			t.Errorf("Normalise not idempotent for %q: once=%q twice=%q", c, once, twice)
		}
	}
}

func TestNormaliseRules(t *testing.T) {
	got := Normalise("1 2 3  \r\n4 5 6\t\r\n\n")
	want := "1 2 3\n4 5 6"
	if got != want {
		t.Errorf("Normalise = %q, want %q", got, want)
	}
}

func TestCompare(t *testing.T) {
	tle := judgetype.RunResult{Verdict: judgetype.TLE}
	if v := Compare(tle, "anything", DefaultComparator); v != judgetype.TLE {
		t.Errorf("non-OK verdicts must propagate unchanged, got %v", v)
	}

	ok := judgetype.RunResult{Verdict: judgetype.OK, Stdout: "42\n"}
	if v := Compare(ok, "42", DefaultComparator); v != judgetype.AC {
		t.Errorf("Compare(matching) = %v, want AC", v)
	}
	if v := Compare(ok, "43", DefaultComparator); v != judgetype.WA {
		t.Errorf("Compare(mismatching) = %v, want WA", v)
	}
}

func TestAggregateAllAC(t *testing.T) {
	runs := []judgetype.RunResult{
		{Verdict: judgetype.OK, Stdout: "1", ExecutionTimeMs: 10, PeakMemoryKB: 100},
		{Verdict: judgetype.OK, Stdout: "2", ExecutionTimeMs: 20, PeakMemoryKB: 300},
	}
	cases := []judgetype.TestCase{{ExpectedOutput: "1"}, {ExpectedOutput: "2"}}

	result := Aggregate(runs, cases, nil, DefaultComparator)
	if result.OverallVerdict != judgetype.AC {
		t.Errorf("OverallVerdict = %v, want AC", result.OverallVerdict)
	}
	if result.Passed != 2 || result.Failed != 0 {
		t.Errorf("Passed/Failed = %d/%d, want 2/0", result.Passed, result.Failed)
	}
	if result.MaxMemoryKB != 300 {
		t.Errorf("MaxMemoryKB = %d, want 300", result.MaxMemoryKB)
	}
	if result.TotalScore != 100 {
		t.Errorf("TotalScore = %v, want 100", result.TotalScore)
	}
	if result.FirstFailedIndex != nil {
		t.Errorf("FirstFailedIndex = %v, want nil", result.FirstFailedIndex)
	}
}

func TestAggregateFirstFailure(t *testing.T) {
	runs := []judgetype.RunResult{
		{Verdict: judgetype.OK, Stdout: "1"},
		{Verdict: judgetype.OK, Stdout: "wrong"},
		{Verdict: judgetype.RE},
	}
	cases := []judgetype.TestCase{{ExpectedOutput: "1"}, {ExpectedOutput: "2"}, {ExpectedOutput: "3"}}

	result := Aggregate(runs, cases, nil, DefaultComparator)
	if result.OverallVerdict != judgetype.WA {
		t.Errorf("OverallVerdict = %v, want WA (first non-AC)", result.OverallVerdict)
	}
	if result.FirstFailedIndex == nil || *result.FirstFailedIndex != 1 {
		t.Errorf("FirstFailedIndex = %v, want 1", result.FirstFailedIndex)
	}
	if result.TotalScore != 100.0/3.0 {
		t.Errorf("TotalScore = %v, want %v", result.TotalScore, 100.0/3.0)
	}
}

func TestComputeScoreSubtaskMinAndSum(t *testing.T) {
	perCase := []judgetype.PerCaseVerdict{
		{Verdict: judgetype.AC, SubtaskID: 1},
		{Verdict: judgetype.AC, SubtaskID: 1},
		{Verdict: judgetype.AC, SubtaskID: 2},
		{Verdict: judgetype.WA, SubtaskID: 2},
	}
	subtasks := []judgetype.Subtask{
		{ID: 1, Score: 40, Strategy: "min"},
		{ID: 2, Score: 60, Strategy: "sum"},
	}
	got := computeScore(perCase, subtasks)
	want := 40.0 + 30.0 // subtask 1 all-AC -> full 40; subtask 2 half-AC -> 30
	if got != want {
		t.Errorf("computeScore = %v, want %v", got, want)
	}
}
