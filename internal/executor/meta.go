package executor

import (
	"os"
	"strconv"
	"strings"

	"judgeengine/internal/judgetype"
)

type meta struct {
	verdict  judgetype.Verdict
	timeMs   int64
	memoryKB int64
	exitCode int
	hasVerdict bool
}

// readMeta parses the key=value results/i.meta schema of spec.md
// §4.1 step 6. A missing file or a record with no verdict key is
// reported via hasVerdict == false so the caller can attribute a
// verdict from the sandbox's own exit signal instead (step 5 of
// spec.md §4.2 — "the only place where a per-case verdict may be
// synthesised without SR evidence").
func readMeta(path string) meta {
	data, err := os.ReadFile(path)
	if err != nil {
		return meta{}
	}
	m := meta{}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		kv := strings.SplitN(line, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "verdict":
			if kv[1] != "" {
				m.verdict = judgetype.Verdict(kv[1])
				m.hasVerdict = true
			}
		case "time":
			m.timeMs, _ = strconv.ParseInt(kv[1], 10, 64)
		case "memory":
			m.memoryKB, _ = strconv.ParseInt(kv[1], 10, 64)
		case "exitCode":
			m.exitCode, _ = strconv.Atoi(kv[1])
		}
	}
	return m
}

func readFileOrEmpty(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}
