package sandboxrunner

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"judgeengine/internal/catalog"
)

func setupWorkspace(t *testing.T, source string, inputs []string) string {
	t.Helper()
	workDir := t.TempDir()
	for _, dir := range []string{"code", "testcases", "results"} {
		if err := os.MkdirAll(filepath.Join(workDir, dir), 0o777); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	if err := os.WriteFile(filepath.Join(workDir, "code", "main.sh"), []byte(source), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	for i, in := range inputs {
		path := filepath.Join(workDir, "testcases", strconv.Itoa(i+1)+".in")
		if err := os.WriteFile(path, []byte(in), 0o644); err != nil {
			t.Fatalf("write input: %v", err)
		}
	}
	return workDir
}

func readResult(t *testing.T, workDir string, i int) (out, errOut string) {
	t.Helper()
	outData, _ := os.ReadFile(filepath.Join(workDir, "results", strconv.Itoa(i)+".out"))
	errData, _ := os.ReadFile(filepath.Join(workDir, "results", strconv.Itoa(i)+".err"))
	return string(outData), string(errData)
}

// shLang is an interpreted "language" backed by /bin/sh, used so these
// tests don't depend on a real compiler toolchain being installed.
var shLang = catalog.Language{
	Tag:        "sh",
	SourceFile: "main.sh",
	ExecCmd:    "sh {src}",
}

func TestRunEchoesStdinToStdout(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh is required for this test")
	}
	workDir := setupWorkspace(t, "cat\n", []string{"hello\n"})

	err := Run(context.Background(), Request{
		Language:          shLang,
		PerCaseTimeLimitS: 2,
		N:                 1,
		WorkDir:           workDir,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	out, _ := readResult(t, workDir, 1)
	if out != "hello\n" {
		t.Errorf("stdout = %q, want %q", out, "hello\n")
	}
	meta := readMetaFile(t, workDir, 1)
	if meta["verdict"] != "OK" {
		t.Errorf("verdict = %q, want OK", meta["verdict"])
	}
}

func TestRunTimeLimitExceeded(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh is required for this test")
	}
	workDir := setupWorkspace(t, "sleep 5\n", []string{""})

	err := Run(context.Background(), Request{
		Language:          shLang,
		PerCaseTimeLimitS: 1,
		N:                 1,
		WorkDir:           workDir,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	meta := readMetaFile(t, workDir, 1)
	if meta["verdict"] != "TLE" {
		t.Errorf("verdict = %q, want TLE", meta["verdict"])
	}
}

func TestRunCompileFailureWritesCEForEveryCase(t *testing.T) {
	if _, err := exec.LookPath("g++"); err != nil {
		t.Skip("g++ is required for this test")
	}
	workDir := t.TempDir()
	for _, dir := range []string{"code", "testcases", "results"} {
		if err := os.MkdirAll(filepath.Join(workDir, dir), 0o777); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	if err := os.WriteFile(filepath.Join(workDir, "code", "main.cpp"), []byte("int main() { return"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	cpp := catalog.Language{
		Tag:        "cpp",
		SourceFile: "main.cpp",
		CompileCmd: "g++ -O2 -std=c++17 -o {bin} {src}",
		ExecCmd:    "{bin}",
	}

	err := Run(context.Background(), Request{
		Language:          cpp,
		PerCaseTimeLimitS: 2,
		N:                 2,
		WorkDir:           workDir,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for i := 1; i <= 2; i++ {
		meta := readMetaFile(t, workDir, i)
		if meta["verdict"] != "CE" {
			t.Errorf("case %d verdict = %q, want CE", i, meta["verdict"])
		}
		_, errOut := readResult(t, workDir, i)
		if errOut == "" {
			t.Errorf("case %d should carry the compiler's stderr", i)
		}
	}
}

func readMetaFile(t *testing.T, workDir string, i int) map[string]string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(workDir, "results", strconv.Itoa(i)+".meta"))
	if err != nil {
		t.Fatalf("read meta: %v", err)
	}
	out := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		kv := strings.SplitN(line, "=", 2)
		if len(kv) == 2 {
			out[kv[0]] = kv[1]
		}
	}
	return out
}
