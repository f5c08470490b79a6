// Package verdict implements the Verdict Engine (VE): a stateless
// comparator that, given a Batch Executor run result and an expected
// output, produces a per-case verdict, then aggregates per-case
// verdicts into a submission-level result, per spec.md §4.4.
package verdict

import (
	"strings"

	"judgeengine/internal/judgetype"
)

// Comparator decides whether actual output matches expected output.
// The default comparator is byte equality after normalisation; callers
// of Compare/Aggregate may pass another implementation. A Submission
// carries no checker of its own, and no checker-program Comparator
// exists in this module.
type Comparator interface {
	Compare(actual, expected string) bool
}

// byteEqual is the default Comparator.
type byteEqual struct{}

func (byteEqual) Compare(actual, expected string) bool {
	return Normalise(actual) == Normalise(expected)
}

// DefaultComparator is the normalise-then-byte-compare rule of
// spec.md §4.4.
var DefaultComparator Comparator = byteEqual{}

// Normalise converts CRLF to LF, right-strips each line, and
// right-strips the whole string. It is idempotent:
// Normalise(Normalise(s)) == Normalise(s).
func Normalise(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), " \t\n")
}

// Compare produces a per-case verdict from a BE run result and the
// expected output, per spec.md §4.4 steps 1-3.
func Compare(run judgetype.RunResult, expected string, cmp Comparator) judgetype.Verdict {
	if run.Verdict != judgetype.OK {
		// Propagate non-OK verdicts unchanged (CE, TLE, MLE, RE, IE).
		return run.Verdict
	}
	if cmp == nil {
		cmp = DefaultComparator
	}
	if cmp.Compare(run.Stdout, expected) {
		return judgetype.AC
	}
	return judgetype.WA
}

// Aggregate builds the submission-level result of spec.md §3 from the
// per-case run results, their expected outputs, and an optional
// subtask scoring scheme (the supplemented feature of SPEC_FULL.md;
// with no subtasks, every case is scored equally and AC ⇔ full
// score).
func Aggregate(runs []judgetype.RunResult, testCases []judgetype.TestCase, subtasks []judgetype.Subtask, cmp Comparator) judgetype.SubmissionResult {
	n := len(runs)
	perCase := make([]judgetype.PerCaseVerdict, n)
	var totalTimeMs, maxMemoryKB int64
	var passed, failed int
	var firstFailed *int
	allAC := true

	for i := 0; i < n; i++ {
		expected := ""
		subtaskID := 0
		if i < len(testCases) {
			expected = testCases[i].ExpectedOutput
			subtaskID = testCases[i].SubtaskID
		}
		v := Compare(runs[i], expected, cmp)
		perCase[i] = judgetype.PerCaseVerdict{Verdict: v, Run: runs[i], SubtaskID: subtaskID}

		totalTimeMs += runs[i].ExecutionTimeMs
		if runs[i].PeakMemoryKB > maxMemoryKB {
			maxMemoryKB = runs[i].PeakMemoryKB
		}
		if v == judgetype.AC {
			passed++
		} else {
			failed++
			allAC = false
			if firstFailed == nil {
				idx := i
				firstFailed = &idx
			}
		}
	}

	overall := judgetype.AC
	if !allAC {
		overall = firstNonACVerdict(perCase)
	}

	totalScore := computeScore(perCase, subtasks)

	return judgetype.SubmissionResult{
		OverallVerdict:   overall,
		TotalTimeMs:      totalTimeMs,
		MaxMemoryKB:      maxMemoryKB,
		TotalCases:       n,
		Passed:           passed,
		Failed:           failed,
		Skipped:          0,
		FirstFailedIndex: firstFailed,
		TotalScore:       totalScore,
		PerCase:          perCase,
	}
}

// firstNonACVerdict reports the verdict of the first failing case —
// matching §3's "overall_verdict == AC ⇔ ∀i: per_case[i] == AC" while
// picking a representative non-AC tag for the outer aggregate when not
// all cases agree on which one.
func firstNonACVerdict(perCase []judgetype.PerCaseVerdict) judgetype.Verdict {
	for _, pc := range perCase {
		if pc.Verdict != judgetype.AC {
			return pc.Verdict
		}
	}
	return judgetype.AC
}

// computeScore applies subtask "min" (all-or-nothing per group) or
// flat per-case scoring when no subtasks are declared.
func computeScore(perCase []judgetype.PerCaseVerdict, subtasks []judgetype.Subtask) float64 {
	if len(subtasks) == 0 {
		if len(perCase) == 0 {
			return 0
		}
		weight := 100.0 / float64(len(perCase))
		var total float64
		for _, pc := range perCase {
			if pc.Verdict == judgetype.AC {
				total += weight
			}
		}
		return total
	}

	byGroup := make(map[int][]judgetype.PerCaseVerdict)
	for _, pc := range perCase {
		byGroup[pc.SubtaskID] = append(byGroup[pc.SubtaskID], pc)
	}
	var total float64
	for _, st := range subtasks {
		cases := byGroup[st.ID]
		if len(cases) == 0 {
			continue
		}
		switch st.Strategy {
		case "sum":
			weight := st.Score / float64(len(cases))
			for _, pc := range cases {
				if pc.Verdict == judgetype.AC {
					total += weight
				}
			}
		default: // "min": all-or-nothing
			allAC := true
			for _, pc := range cases {
				if pc.Verdict != judgetype.AC {
					allAC = false
					break
				}
			}
			if allAC {
				total += st.Score
			}
		}
	}
	return total
}
