//go:build !linux

package security

import "fmt"

// ApplySeccomp is unsupported outside Linux: it always returns an
// error, so the Sandbox Runner fails at startup there whenever
// SECCOMP_PROFILE is set.
func ApplySeccomp(profilePath string) error {
	return fmt.Errorf("seccomp is only supported on linux")
}
