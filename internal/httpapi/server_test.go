package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"judgeengine/internal/catalog"
	"judgeengine/internal/judgetype"
	"judgeengine/internal/queue"
)

type fakeExecutor struct {
	results []judgetype.RunResult
	err     error
}

func (f *fakeExecutor) ExecuteOne(ctx context.Context, sub judgetype.Submission) (judgetype.RunResult, error) {
	if f.err != nil {
		return judgetype.RunResult{}, f.err
	}
	return f.results[0], nil
}

func (f *fakeExecutor) ExecuteBatch(ctx context.Context, sub judgetype.Submission) ([]judgetype.RunResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func testServer(exec *fakeExecutor) *Server {
	gin.SetMode(gin.TestMode)
	aq := queue.New[any](2)
	limits := Limits{
		MaxCodeSize:       65536,
		DefaultTimeLimitS: 5,
		MaxTimeLimitS:     10,
		DefaultMemoryMB:   256,
		MaxMemoryMB:       512,
		MaxTests:          10,
		RateLimitWindow:   1000 * 1000 * 1000, // 1s in ns, used only to build a limiter
		RateLimitMax:      1000,
	}
	return NewServer(catalog.Default(), exec, aq, limits)
}

func doRequest(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	srv := testServer(&fakeExecutor{})
	rec := doRequest(t, srv, http.MethodGet, "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestHandleLanguages(t *testing.T) {
	srv := testServer(&fakeExecutor{})
	rec := doRequest(t, srv, http.MethodGet, "/api/languages", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var env struct {
		Success bool `json:"success"`
		Data    struct {
			Languages []struct {
				Tag string `json:"tag"`
			} `json:"languages"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !env.Success || len(env.Data.Languages) != 3 {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestHandleExecuteValidationError(t *testing.T) {
	srv := testServer(&fakeExecutor{})
	rec := doRequest(t, srv, http.MethodPost, "/api/execute", map[string]interface{}{
		"language": "cobol",
		"code":     "print 1",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body=%s", rec.Code, rec.Body.String())
	}
}

func TestHandleExecuteSuccess(t *testing.T) {
	srv := testServer(&fakeExecutor{results: []judgetype.RunResult{{Verdict: judgetype.OK, Stdout: "3\n"}}})
	rec := doRequest(t, srv, http.MethodPost, "/api/execute", map[string]interface{}{
		"language": "cpp",
		"code":     "int main(){}",
		"input":    "1 2\n",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
}

func TestHandleJudgeSuccess(t *testing.T) {
	srv := testServer(&fakeExecutor{results: []judgetype.RunResult{{Verdict: judgetype.OK, Stdout: "3\n"}}})
	rec := doRequest(t, srv, http.MethodPost, "/api/judge", map[string]interface{}{
		"language": "cpp",
		"code":     "int main(){}",
		"testCases": []map[string]string{
			{"input": "1 2\n", "expectedOutput": "3\n"},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
	var env struct {
		Data judgetype.SubmissionResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Data.OverallVerdict != judgetype.AC {
		t.Errorf("OverallVerdict = %v, want AC", env.Data.OverallVerdict)
	}
}

func TestHandleExecuteOversizedBodyReturns413(t *testing.T) {
	srv := testServer(&fakeExecutor{})
	rec := doRequest(t, srv, http.MethodPost, "/api/execute", map[string]interface{}{
		"language": "cpp",
		"code":     strings.Repeat("x", 2<<20), // well past MaxCodeSize*2+1MB
	})
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413, body=%s", rec.Code, rec.Body.String())
	}
}

func TestHandleBatchJudgeRejectsEmpty(t *testing.T) {
	srv := testServer(&fakeExecutor{})
	rec := doRequest(t, srv, http.MethodPost, "/api/batch-judge", map[string]interface{}{
		"submissions": []map[string]interface{}{},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
