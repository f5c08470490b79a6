package catalog

import (
	"testing"

	"judgeengine/internal/judgetype"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	tags := c.Tags()
	want := []string{"c", "cpp", "python"}
	if len(tags) != len(want) {
		t.Fatalf("Tags() = %v, want %v", tags, want)
	}
	for i, tag := range want {
		if tags[i] != tag {
			t.Errorf("Tags()[%d] = %q, want %q", i, tags[i], tag)
		}
	}

	if _, ok := c.Lookup("rust"); ok {
		t.Fatal("Lookup(rust) should not be registered")
	}

	cpp, ok := c.Lookup("cpp")
	if !ok {
		t.Fatal("Lookup(cpp) missing")
	}
	if !cpp.IsCompiled() {
		t.Fatal("cpp should be compiled")
	}

	py, ok := c.Lookup("python")
	if !ok {
		t.Fatal("Lookup(python) missing")
	}
	if py.IsCompiled() {
		t.Fatal("python should not be a compiled language")
	}
}

func TestBuildCommand(t *testing.T) {
	argv, err := BuildCommand("g++ -O2 -std=c++17 -o {bin} {src}", "/work/main.cpp", "/work/a.out", "")
	if err != nil {
		t.Fatalf("BuildCommand: %v", err)
	}
	want := []string{"g++", "-O2", "-std=c++17", "-o", "/work/a.out", "/work/main.cpp"}
	if len(argv) != len(want) {
		t.Fatalf("argv = %v, want %v", argv, want)
	}
	for i := range want {
		if argv[i] != want[i] {
			t.Errorf("argv[%d] = %q, want %q", i, argv[i], want[i])
		}
	}
}

func TestBuildCommandEmptyTemplate(t *testing.T) {
	if _, err := BuildCommand("", "src", "bin", ""); err == nil {
		t.Fatal("expected an error for an empty template")
	}
}

func TestScaleLimits(t *testing.T) {
	py, _ := Default().Lookup("python")
	base := judgetype.ResourceLimit{CPUTimeMs: 1000, WallTimeMs: 1000, MemoryMB: 256}
	scaled := ScaleLimits(py, base)
	if scaled.CPUTimeMs != 3000 {
		t.Errorf("CPUTimeMs = %d, want 3000", scaled.CPUTimeMs)
	}
	if scaled.MemoryMB != 512 {
		t.Errorf("MemoryMB = %d, want 512", scaled.MemoryMB)
	}
}

func TestCeilScale(t *testing.T) {
	if got := ceilScale(100, 1.0); got != 100 {
		t.Errorf("ceilScale(100, 1.0) = %d, want 100", got)
	}
	if got := ceilScale(100, 2.5); got != 250 {
		t.Errorf("ceilScale(100, 2.5) = %d, want 250", got)
	}
	if got := ceilScale(3, 0.5); got != 2 {
		t.Errorf("ceilScale(3, 0.5) = %d, want 2 (rounds up)", got)
	}
}
