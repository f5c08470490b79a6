package httpapi

import (
	"strings"

	"github.com/gin-gonic/gin"

	"judgeengine/internal/judgetype"
	"judgeengine/pkg/errors"
	"judgeengine/pkg/response"
)

// bindJSON binds the request body into obj, reporting a 413 when
// bodyLimitMiddleware's http.MaxBytesReader rejected it for size and a
// 400 for every other malformed-JSON case. Returns false on failure,
// having already written the response.
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		if strings.Contains(err.Error(), "too large") {
			response.Fail(c, errors.RequestTooLarge("request body exceeds the maximum allowed size"))
		} else {
			response.BadRequest(c, "malformed JSON: "+err.Error())
		}
		return false
	}
	return true
}

func (s *Server) handleHealth(c *gin.Context) {
	response.OK(c, gin.H{
		"status": "ok",
		"queue":  s.aq.Status(),
		"memory": memSnapshot(),
	})
}

func (s *Server) handleLanguages(c *gin.Context) {
	type entry struct {
		Tag         string `json:"tag"`
		DisplayName string `json:"displayName"`
	}
	tags := s.cat.Tags()
	entries := make([]entry, 0, len(tags))
	for _, tag := range tags {
		l, _ := s.cat.Lookup(tag)
		entries = append(entries, entry{Tag: l.Tag, DisplayName: l.DisplayName})
	}
	response.OK(c, gin.H{
		"languages": entries,
		"limits": gin.H{
			"defaultTimeLimitS": s.limits.DefaultTimeLimitS,
			"maxTimeLimitS":     s.limits.MaxTimeLimitS,
			"defaultMemoryMB":   s.limits.DefaultMemoryMB,
			"maxMemoryMB":       s.limits.MaxMemoryMB,
			"maxCodeSize":       s.limits.MaxCodeSize,
			"maxTests":          s.limits.MaxTests,
		},
		"verdicts": []judgetype.Verdict{
			judgetype.OK, judgetype.CE, judgetype.TLE, judgetype.MLE, judgetype.RE, judgetype.IE,
			judgetype.AC, judgetype.WA,
		},
	})
}

func (s *Server) handleExecute(c *gin.Context) {
	var req executeRequest
	if !bindJSON(c, &req) {
		return
	}
	sub, err := s.buildSubmission(req.Language, req.Code, req.TimeLimit, req.MemoryLimit,
		[]testCaseRequest{{Input: req.Input}})
	if err != nil {
		response.Fail(c, err)
		return
	}

	runs, err := s.runBatch(c.Request.Context(), sub)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, runs[0])
}

func (s *Server) handleJudge(c *gin.Context) {
	var req judgeRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := s.judgeFromRequest(c, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, result)
}

func (s *Server) handleBatchJudge(c *gin.Context) {
	var req batchJudgeRequest
	if !bindJSON(c, &req) {
		return
	}
	if len(req.Submissions) == 0 || len(req.Submissions) > maxBatchJudgeSubmissions {
		response.BadRequest(c, "batch-judge accepts 1..10 submissions")
		return
	}

	// "Up to 10 independent judge submissions sequentially" — each
	// goes through the same admission queue as a standalone /judge
	// call, but this handler processes them one at a time rather than
	// fanning them out concurrently.
	results := make([]judgetype.SubmissionResult, 0, len(req.Submissions))
	for _, one := range req.Submissions {
		result, err := s.judgeFromRequest(c, one)
		if err != nil {
			response.Fail(c, err)
			return
		}
		results = append(results, result)
	}
	response.OK(c, gin.H{"results": results})
}

func (s *Server) judgeFromRequest(c *gin.Context, req judgeRequest) (judgetype.SubmissionResult, error) {
	sub, err := s.buildSubmission(req.Language, req.Code, req.TimeLimit, req.MemoryLimit, req.TestCases)
	if err != nil {
		return judgetype.SubmissionResult{}, err
	}
	return s.judgeOne(c.Request.Context(), sub)
}
