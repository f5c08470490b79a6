package httpapi

import (
	"fmt"

	"judgeengine/internal/judgetype"
	"judgeengine/pkg/errors"
)

type executeRequest struct {
	Language    string `json:"language" binding:"required"`
	Code        string `json:"code" binding:"required"`
	Input       string `json:"input"`
	TimeLimit   int    `json:"timeLimit"`
	MemoryLimit int64  `json:"memoryLimit"`
}

type testCaseRequest struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
}

type judgeRequest struct {
	Language    string            `json:"language" binding:"required"`
	Code        string            `json:"code" binding:"required"`
	TestCases   []testCaseRequest `json:"testCases" binding:"required"`
	TimeLimit   int               `json:"timeLimit"`
	MemoryLimit int64             `json:"memoryLimit"`
}

type batchJudgeRequest struct {
	Submissions []judgeRequest `json:"submissions" binding:"required"`
}

// buildSubmission validates a request against the catalogue and
// configured limits, per spec.md §3's admission constraints. A zero
// timeLimit/memoryLimit takes the configured default; any other value
// outside the configured bounds is rejected, not clamped.
func (s *Server) buildSubmission(language, code string, timeLimit int, memoryLimit int64, cases []testCaseRequest) (judgetype.Submission, error) {
	if _, ok := s.cat.Lookup(language); !ok {
		return judgetype.Submission{}, errors.ValidationError("language", "unsupported language tag")
	}
	if len(code) == 0 || len(code) > s.limits.MaxCodeSize {
		return judgetype.Submission{}, errors.ValidationError("code", fmt.Sprintf("must be 1..%d bytes", s.limits.MaxCodeSize))
	}
	if timeLimit == 0 {
		timeLimit = s.limits.DefaultTimeLimitS
	}
	if timeLimit < 1 || timeLimit > s.limits.MaxTimeLimitS {
		return judgetype.Submission{}, errors.ValidationError("timeLimit", fmt.Sprintf("must be 1..%d", s.limits.MaxTimeLimitS))
	}
	if memoryLimit == 0 {
		memoryLimit = s.limits.DefaultMemoryMB
	}
	if memoryLimit < 16 || memoryLimit > s.limits.MaxMemoryMB {
		return judgetype.Submission{}, errors.ValidationError("memoryLimit", fmt.Sprintf("must be 16..%d", s.limits.MaxMemoryMB))
	}
	if len(cases) == 0 {
		return judgetype.Submission{}, errors.ValidationError("testCases", "at least one input is required")
	}
	if len(cases) > s.limits.MaxTests {
		return judgetype.Submission{}, errors.ValidationError("testCases", fmt.Sprintf("at most %d test cases", s.limits.MaxTests))
	}

	tcs := make([]judgetype.TestCase, len(cases))
	for i, c := range cases {
		if len(c.Input) > s.limits.MaxCodeSize {
			return judgetype.Submission{}, errors.ValidationError("testCases", "input too large")
		}
		if len(c.ExpectedOutput) > s.limits.MaxCodeSize {
			return judgetype.Submission{}, errors.ValidationError("testCases", "expected output too large")
		}
		tcs[i] = judgetype.TestCase{Input: c.Input, ExpectedOutput: c.ExpectedOutput}
	}

	return judgetype.Submission{
		LanguageTag:       language,
		SourceText:        code,
		PerCaseTimeLimitS: timeLimit,
		MemoryLimitMB:     memoryLimit,
		TestCases:         tcs,
	}, nil
}
