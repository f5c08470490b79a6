// Package judgectl is the HTTP client used by cmd/judgectl, kept
// separate from the cobra command tree so its request/response
// handling can be exercised without going through os.Args. Grounded
// on the teacher's internal/cli/http package (a thin client wrapping
// the service's own JSON envelope).
package judgectl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *errorBody      `json:"error"`
	TraceID string          `json:"traceId"`
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func doJSON(ctx context.Context, method, url string, body interface{}) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("malformed response (status %d): %s", resp.StatusCode, raw)
	}
	if !env.Success {
		if env.Error != nil {
			return nil, fmt.Errorf("server error %d: %s", env.Error.Code, env.Error.Message)
		}
		return nil, fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	return env.Data, nil
}

// PrintHealth fetches and prints GET /api/health.
func PrintHealth(ctx context.Context, baseURL string) error {
	data, err := doJSON(ctx, http.MethodGet, baseURL+"/api/health", nil)
	if err != nil {
		return err
	}
	return printPretty(data)
}

// PrintLanguages fetches and prints GET /api/languages.
func PrintLanguages(ctx context.Context, baseURL string) error {
	data, err := doJSON(ctx, http.MethodGet, baseURL+"/api/languages", nil)
	if err != nil {
		return err
	}
	return printPretty(data)
}

func printPretty(data json.RawMessage) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// SubmitOptions configures a single submit call.
type SubmitOptions struct {
	SourcePath   string
	Language     string
	InputPath    string
	ExpectedPath string
	TimeLimitS   int
	MemoryMB     int64
}

// Submit reads the local files named by opts and posts either
// /api/execute (no expected output) or /api/judge (expected output
// given), printing the resulting envelope payload.
func Submit(ctx context.Context, baseURL string, opts SubmitOptions) error {
	code, err := os.ReadFile(opts.SourcePath)
	if err != nil {
		return fmt.Errorf("reading source file: %w", err)
	}

	input, err := readOptional(opts.InputPath)
	if err != nil {
		return err
	}

	if opts.ExpectedPath == "" {
		payload := map[string]interface{}{
			"language":    opts.Language,
			"code":        string(code),
			"input":       input,
			"timeLimit":   opts.TimeLimitS,
			"memoryLimit": opts.MemoryMB,
		}
		data, err := doJSON(ctx, http.MethodPost, baseURL+"/api/execute", payload)
		if err != nil {
			return err
		}
		return printPretty(data)
	}

	expected, err := readOptional(opts.ExpectedPath)
	if err != nil {
		return err
	}
	payload := map[string]interface{}{
		"language":    opts.Language,
		"code":        string(code),
		"timeLimit":   opts.TimeLimitS,
		"memoryLimit": opts.MemoryMB,
		"testCases": []map[string]string{
			{"input": input, "expectedOutput": expected},
		},
	}
	data, err := doJSON(ctx, http.MethodPost, baseURL+"/api/judge", payload)
	if err != nil {
		return err
	}
	return printPretty(data)
}

func readOptional(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(b), nil
}
