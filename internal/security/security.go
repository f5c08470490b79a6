// Package security describes the isolation posture applied to a
// sandboxed execution: root filesystem, seccomp profile, and network
// policy. Grounded on the teacher's security.IsolationProfile.
package security

// IsolationProfile describes how one sandbox invocation is confined.
type IsolationProfile struct {
	RootFS         string
	SeccompProfile string
	DisableNetwork bool
}

// Default returns the isolation profile spec.md §4.2 mandates for
// every sandboxed submission: no network, no named rootfs override
// (neither engine reads RootFS or chroots), no
// seccomp profile configured by default (callers wire one via
// config; an empty path disables filtering rather than failing).
func Default() IsolationProfile {
	return IsolationProfile{DisableNetwork: true}
}
