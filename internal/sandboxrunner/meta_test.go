package sandboxrunner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestRequest(t *testing.T) Request {
	t.Helper()
	workDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(workDir, "results"), 0o777); err != nil {
		t.Fatalf("mkdir results: %v", err)
	}
	return Request{WorkDir: workDir, N: 1}
}

func TestWriteMeta(t *testing.T) {
	req := newTestRequest(t)
	if err := writeMeta(req, 1, metaRecord{verdict: "OK", timeMs: 12, memoryKB: 3456, exitCode: 0}); err != nil {
		t.Fatalf("writeMeta: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(req.WorkDir, "results", "1.meta"))
	if err != nil {
		t.Fatalf("read meta: %v", err)
	}
	body := string(data)
	for _, want := range []string{"verdict=OK", "time=12", "memory=3456", "exitCode=0"} {
		if !strings.Contains(body, want) {
			t.Errorf("meta record %q missing %q", body, want)
		}
	}
}

func TestWriteCEDoesNotEmbedLogInMeta(t *testing.T) {
	req := newTestRequest(t)
	compileLog := "error: expected ';' before '}' token\nmultiple\nlines\n"
	if err := writeCE(req, 1, compileLog); err != nil {
		t.Fatalf("writeCE: %v", err)
	}

	errData, err := os.ReadFile(filepath.Join(req.WorkDir, "results", "1.err"))
	if err != nil {
		t.Fatalf("read err file: %v", err)
	}
	if string(errData) != compileLog {
		t.Errorf("results/1.err = %q, want %q", errData, compileLog)
	}

	metaData, err := os.ReadFile(filepath.Join(req.WorkDir, "results", "1.meta"))
	if err != nil {
		t.Fatalf("read meta: %v", err)
	}
	meta := string(metaData)
	if strings.Contains(meta, "multiple") || strings.Contains(meta, "lines") {
		t.Errorf("meta record must not embed the multi-line compile log, got %q", meta)
	}
	if !strings.Contains(meta, "verdict=CE") {
		t.Errorf("meta record missing verdict=CE, got %q", meta)
	}

	outData, err := os.ReadFile(filepath.Join(req.WorkDir, "results", "1.out"))
	if err != nil {
		t.Fatalf("read out file: %v", err)
	}
	if len(outData) != 0 {
		t.Errorf("results/1.out should be empty on compile failure, got %q", outData)
	}
}
