package judgectl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestSubmitExecuteMode(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"verdict":"OK"}}`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	src := filepath.Join(dir, "main.cpp")
	if err := os.WriteFile(src, []byte("int main(){}"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	err := Submit(context.Background(), srv.URL, SubmitOptions{
		SourcePath: src,
		Language:   "cpp",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if gotPath != "/api/execute" {
		t.Errorf("path = %q, want /api/execute", gotPath)
	}
}

func TestSubmitJudgeModeWhenExpectedGiven(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"overallVerdict":"AC"}}`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	src := filepath.Join(dir, "main.cpp")
	expect := filepath.Join(dir, "expected.txt")
	os.WriteFile(src, []byte("int main(){}"), 0o644)
	os.WriteFile(expect, []byte("3\n"), 0o644)

	err := Submit(context.Background(), srv.URL, SubmitOptions{
		SourcePath:   src,
		Language:     "cpp",
		ExpectedPath: expect,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if gotPath != "/api/judge" {
		t.Errorf("path = %q, want /api/judge", gotPath)
	}
}

func TestDoJSONSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false,"error":{"code":13100,"message":"queue full"}}`))
	}))
	defer srv.Close()

	err := PrintHealth(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected an error for a failed envelope")
	}
}
