//go:build linux

package engine

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

func createCgroup(root, submissionID string) (string, error) {
	dir := filepath.Join(root, "judge-"+submissionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func applyCgroupLimits(dir string, memoryMB, pids int64) error {
	if memoryMB > 0 {
		if err := writeCgroupFile(dir, "memory.max", strconv.FormatInt(memoryMB*1024*1024, 10)); err != nil {
			return err
		}
		// no swap: cap memory.swap.max at zero.
		_ = writeCgroupFile(dir, "memory.swap.max", "0")
	}
	if pids > 0 {
		if err := writeCgroupFile(dir, "pids.max", strconv.FormatInt(pids, 10)); err != nil {
			return err
		}
	}
	// one logical CPU: 100000/100000 quota/period.
	_ = writeCgroupFile(dir, "cpu.max", "100000 100000")
	return nil
}

func writeCgroupFile(dir, name, value string) error {
	return os.WriteFile(filepath.Join(dir, name), []byte(value), 0o644)
}

func addProcessToCgroup(dir string, pid int) error {
	return writeCgroupFile(dir, "cgroup.procs", strconv.Itoa(pid))
}

func killCgroup(dir string) error {
	return writeCgroupFile(dir, "cgroup.kill", "1")
}

func removeCgroup(dir string) error {
	return os.Remove(dir)
}

// memoryPeakKB reads the cgroup's own peak counter (memory.peak),
// falling back to memory.current when no peak counter can be read,
// per spec.md §4.1 step 4.
func memoryPeakKB(dir string) int64 {
	data, err := os.ReadFile(filepath.Join(dir, "memory.peak"))
	if err != nil {
		data, err = os.ReadFile(filepath.Join(dir, "memory.current"))
		if err != nil {
			return 0
		}
	}
	v, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0
	}
	return v / 1024
}

func wasOomKilled(dir string) bool {
	data, err := os.ReadFile(filepath.Join(dir, "memory.events"))
	if err != nil {
		return false
	}
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[0] == "oom_kill" {
			n, _ := strconv.Atoi(fields[1])
			return n > 0
		}
	}
	return false
}
