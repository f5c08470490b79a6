package sandboxrunner

import (
	"fmt"
	"os"
	"path/filepath"
)

// metaRecord is one results/i.meta record, emitted as key=value lines
// per spec.md §4.1 step 6.
type metaRecord struct {
	verdict  string
	timeMs   int64
	memoryKB int64
	exitCode int
	note     string
}

func writeMeta(req Request, i int, rec metaRecord) error {
	path := filepath.Join(req.WorkDir, "results", fmt.Sprintf("%d.meta", i))
	body := fmt.Sprintf("verdict=%s\ntime=%d\nmemory=%d\nexitCode=%d\n", rec.verdict, rec.timeMs, rec.memoryKB, rec.exitCode)
	if rec.note != "" {
		body += fmt.Sprintf("note=%s\n", rec.note)
	}
	return os.WriteFile(path, []byte(body), 0o644)
}

// writeCE writes a compile-error meta record for case i, carrying the
// compiler's stderr, per spec.md §4.1: "on failure writes N meta
// records all tagged CE carrying the compiler's stderr".
func writeCE(req Request, i int, compileLog string) error {
	outPath := filepath.Join(req.WorkDir, "results", fmt.Sprintf("%d.out", i))
	errPath := filepath.Join(req.WorkDir, "results", fmt.Sprintf("%d.err", i))
	if err := os.WriteFile(outPath, nil, 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(errPath, []byte(compileLog), 0o644); err != nil {
		return err
	}
	return writeMeta(req, i, metaRecord{verdict: "CE"})
}
