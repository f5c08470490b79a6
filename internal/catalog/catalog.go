// Package catalog holds the static language descriptor table: one
// entry per supported language tag, fixing the source file name,
// compile/syntax-check command template, and execute command
// template used inside the sandbox.
//
// Grounded on the teacher's profile.TaskProfile / LanguageSpec
// repository pattern, narrowed to the three languages this spec
// names and generalised to carry per-language resource-limit
// multipliers (a supplemented feature, see SPEC_FULL.md).
package catalog

import (
	"fmt"
	"strings"

	"github.com/google/shlex"

	"judgeengine/internal/judgetype"
)

// Language is one catalogue entry.
type Language struct {
	Tag         string
	DisplayName string
	SourceFile  string
	// CompileCmd is empty for pure interpreters; SyntaxCheckCmd is used
	// instead to validate source without a separate compile step.
	CompileCmd     string
	SyntaxCheckCmd string
	ExecCmd        string
	// TimeMultiplier/MemoryMultiplier scale a submission's declared
	// limits before they're applied, e.g. interpreted languages get
	// more wall-clock headroom than compiled ones.
	TimeMultiplier   float64
	MemoryMultiplier float64
}

// Catalog is the immutable, process-wide language table.
type Catalog struct {
	languages map[string]Language
	order     []string
}

// Default returns the built-in catalogue for c, cpp, and python.
func Default() *Catalog {
	c := New()
	c.Register(Language{
		Tag:              "c",
		DisplayName:      "C (gcc)",
		SourceFile:       "main.c",
		CompileCmd:       "gcc -O2 -std=c17 -o {bin} {src}",
		ExecCmd:          "{bin}",
		TimeMultiplier:   1.0,
		MemoryMultiplier: 1.0,
	})
	c.Register(Language{
		Tag:              "cpp",
		DisplayName:      "C++ (g++)",
		SourceFile:       "main.cpp",
		CompileCmd:       "g++ -O2 -std=c++17 -o {bin} {src}",
		ExecCmd:          "{bin}",
		TimeMultiplier:   1.0,
		MemoryMultiplier: 1.0,
	})
	c.Register(Language{
		Tag:              "python",
		DisplayName:      "Python 3",
		SourceFile:       "main.py",
		SyntaxCheckCmd:   "python3 -m py_compile {src}",
		ExecCmd:          "python3 {src}",
		TimeMultiplier:   3.0,
		MemoryMultiplier: 2.0,
	})
	return c
}

// New returns an empty catalogue.
func New() *Catalog {
	return &Catalog{languages: make(map[string]Language)}
}

// Register adds or replaces a language entry.
func (c *Catalog) Register(l Language) {
	if _, exists := c.languages[l.Tag]; !exists {
		c.order = append(c.order, l.Tag)
	}
	c.languages[l.Tag] = l
}

// Lookup returns the language entry for tag, or false if unknown.
func (c *Catalog) Lookup(tag string) (Language, bool) {
	l, ok := c.languages[tag]
	return l, ok
}

// Tags returns the registered language tags in registration order.
func (c *Catalog) Tags() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// IsCompiled reports whether the language has a separate compile step
// (as opposed to a syntax-check-only interpreted language).
func (l Language) IsCompiled() bool {
	return l.CompileCmd != ""
}

// BuildCommand expands {src}/{bin}/{extraFlags} placeholders in a
// command template into an argv slice, using shlex for shell-like
// tokenisation (grounded on the teacher's buildCommand helper).
func BuildCommand(template, src, bin, extraFlags string) ([]string, error) {
	replacer := strings.NewReplacer("{src}", src, "{bin}", bin, "{extraFlags}", extraFlags)
	expanded := replacer.Replace(template)
	argv, err := shlex.Split(expanded)
	if err != nil {
		return nil, fmt.Errorf("parse command template %q: %w", template, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty command template %q", template)
	}
	return argv, nil
}

// ScaleLimits applies the language's time/memory multipliers to a
// submission-declared resource limit, rounding up.
func ScaleLimits(l Language, base judgetype.ResourceLimit) judgetype.ResourceLimit {
	scaled := base
	if l.TimeMultiplier > 0 {
		scaled.CPUTimeMs = ceilScale(base.CPUTimeMs, l.TimeMultiplier)
		scaled.WallTimeMs = ceilScale(base.WallTimeMs, l.TimeMultiplier)
	}
	if l.MemoryMultiplier > 0 {
		scaled.MemoryMB = ceilScale(base.MemoryMB, l.MemoryMultiplier)
	}
	return scaled
}

func ceilScale(v int64, factor float64) int64 {
	scaled := float64(v) * factor
	out := int64(scaled)
	if float64(out) < scaled {
		out++
	}
	return out
}
