// Package httpapi is the thin HTTP edge adapter named in spec.md §6:
// request parsing, the JSON envelope, and routing only — all judging
// logic lives in the engine/executor/queue/verdict packages it calls
// into. Grounded on the teacher's gin-controller-over-response-package
// idiom (internal/judge/controller/judge_controller.go).
package httpapi

import (
	"context"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"judgeengine/internal/catalog"
	"judgeengine/internal/executor"
	"judgeengine/internal/judgetype"
	"judgeengine/internal/queue"
	"judgeengine/internal/verdict"
)

// Limits is the validation/clamping bounds of spec.md §3 and §6.
type Limits struct {
	MaxCodeSize       int
	DefaultTimeLimitS int
	MaxTimeLimitS     int
	DefaultMemoryMB   int64
	MaxMemoryMB       int64
	MaxTests          int
	RateLimitWindow   time.Duration
	RateLimitMax      int
}

const maxBatchJudgeSubmissions = 10

// Server wires the HTTP surface to the judge pipeline: Verdict Engine
// comparisons run after the Admission Queue releases a Batch Executor
// call, per the control flow of spec.md §2.
type Server struct {
	cat    *catalog.Catalog
	be     executor.Executor
	aq     *queue.Queue[any]
	limits Limits
}

// NewServer builds the HTTP edge over an already-constructed executor
// and admission queue.
func NewServer(cat *catalog.Catalog, be executor.Executor, aq *queue.Queue[any], limits Limits) *Server {
	return &Server{cat: cat, be: be, aq: aq, limits: limits}
}

// Router builds the gin engine with the five routes of spec.md §6.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	limiter := rate.NewLimiter(rate.Every(s.limits.RateLimitWindow/time.Duration(max(s.limits.RateLimitMax, 1))), s.limits.RateLimitMax)
	r.Use(rateLimitMiddleware(limiter))
	r.Use(bodyLimitMiddleware(int64(s.limits.MaxCodeSize)*2 + 1<<20))

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/languages", s.handleLanguages)
	api.POST("/execute", s.handleExecute)
	api.POST("/judge", s.handleJudge)
	api.POST("/batch-judge", s.handleBatchJudge)
	return r
}

// runBatch enqueues a single ExecuteBatch call onto the admission
// queue and blocks for its result — the "queued task = one BE batch
// call" of spec.md §2's control-flow diagram.
func (s *Server) runBatch(ctx context.Context, sub judgetype.Submission) ([]judgetype.RunResult, error) {
	resultCh := s.aq.Enqueue(ctx, func(ctx context.Context) (any, error) {
		return s.be.ExecuteBatch(ctx, sub)
	})
	res := <-resultCh
	if res.Err != nil {
		return nil, res.Err
	}
	return res.Value.([]judgetype.RunResult), nil
}

func (s *Server) judgeOne(ctx context.Context, sub judgetype.Submission) (judgetype.SubmissionResult, error) {
	runs, err := s.runBatch(ctx, sub)
	if err != nil {
		return judgetype.SubmissionResult{}, err
	}
	return verdict.Aggregate(runs, sub.TestCases, sub.Subtasks, verdict.DefaultComparator), nil
}

// memSnapshot reports the process's own memory stats for /api/health,
// matching the "liveness + queue and memory snapshot" contract.
func memSnapshot() map[string]uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return map[string]uint64{
		"allocBytes":     m.Alloc,
		"sysBytes":       m.Sys,
		"heapAllocBytes": m.HeapAlloc,
	}
}
