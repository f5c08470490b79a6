// Package workspace manages the ephemeral per-submission work
// directory shared between the Batch Executor (host side) and the
// Sandbox Runner (inside the sandbox), per spec.md §3's "Work
// directory" data model.
//
// Grounded on the teacher's workspace.Layout, generalised to a
// scoped-resource pattern (acquire on Create, release on Close)
// per spec.md §9's "temp directory hygiene" design note.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Workspace is one submission's disjoint working directory:
// root/code, root/testcases, root/results.
type Workspace struct {
	ID   string
	Root string
}

// Create makes a fresh, uniquely-named workspace under tempRoot and
// the code/testcases/results subdirectories it needs. The caller MUST
// call Close on every exit path (success, error, or panic recovery).
func Create(tempRoot string) (*Workspace, error) {
	id := uuid.NewString()
	root := filepath.Join(tempRoot, id)
	for _, dir := range []string{root, filepath.Join(root, "code"), filepath.Join(root, "testcases"), filepath.Join(root, "results")} {
		if err := os.MkdirAll(dir, 0o777); err != nil {
			_ = os.RemoveAll(root)
			return nil, fmt.Errorf("create workspace dir %s: %w", dir, err)
		}
	}
	return &Workspace{ID: id, Root: root}, nil
}

// Close removes the workspace unconditionally. Per spec.md §9,
// cleanup failures are logged by the caller and swallowed — they must
// never replace the primary result, so Close only returns the error
// for the caller to log.
func (w *Workspace) Close() error {
	return os.RemoveAll(w.Root)
}

// CodePath returns the path a source file named name should be
// written to.
func (w *Workspace) CodePath(name string) string {
	return filepath.Join(w.Root, "code", name)
}

// InputPath returns the 1-based testcase input path.
func (w *Workspace) InputPath(i int) string {
	return filepath.Join(w.Root, "testcases", fmt.Sprintf("%d.in", i))
}

// ResultOut, ResultErr, ResultMeta return the 1-based per-case result
// file paths the Sandbox Runner writes into.
func (w *Workspace) ResultOut(i int) string  { return filepath.Join(w.Root, "results", fmt.Sprintf("%d.out", i)) }
func (w *Workspace) ResultErr(i int) string  { return filepath.Join(w.Root, "results", fmt.Sprintf("%d.err", i)) }
func (w *Workspace) ResultMeta(i int) string { return filepath.Join(w.Root, "results", fmt.Sprintf("%d.meta", i)) }

// WriteSource writes the submission source into code/<name>, with
// contents readable/writable by the unprivileged sandbox user per
// spec.md §4.2 step 3.
func (w *Workspace) WriteSource(name, contents string) error {
	return os.WriteFile(w.CodePath(name), []byte(contents), 0o666)
}

// WriteInputs writes all N testcase inputs concurrently-safe callers
// may parallelise over; this helper itself writes sequentially since
// the Batch Executor controls concurrency.
func (w *Workspace) WriteInputs(inputs []string) error {
	for i, in := range inputs {
		if err := os.WriteFile(w.InputPath(i+1), []byte(in), 0o666); err != nil {
			return fmt.Errorf("write input %d: %w", i+1, err)
		}
	}
	return nil
}
