//go:build !linux

package engine

import (
	"context"
	"fmt"
)

// ContainerEngine is unavailable outside linux: cgroups v2 and the
// namespace/seccomp isolation stack this backend relies on are
// linux-only kernel features.
type ContainerEngine struct{}

func NewContainerEngine(cfg Config) *ContainerEngine {
	return &ContainerEngine{}
}

func (e *ContainerEngine) Run(ctx context.Context, spec Spec) (Result, error) {
	return Result{}, fmt.Errorf("container engine is only supported on linux")
}

func (e *ContainerEngine) KillSubmission(ctx context.Context, submissionID string) error {
	return fmt.Errorf("container engine is only supported on linux")
}
