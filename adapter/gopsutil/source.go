// Package gopsutil reads the process table through gopsutil, which covers Linux, Windows,
// macOS and the BSDs.
package gopsutil

import (
	"context"

	"github.com/pkg/errors"
	"github.com/procwarden/procwarden/scanner/domain"
	"github.com/shirou/gopsutil/v3/process"
)

// BackendName is the configuration value that selects this source.
const BackendName = "gopsutil"

type Source struct{}

func NewSource() *Source {
	return &Source{}
}

func (s *Source) Name() string {
	return BackendName
}

// Enumerate lists the live processes with their image names. Executable paths are left for
// ResolvePath so that only matched processes pay for the lookup.
func (s *Source) Enumerate(ctx context.Context) ([]domain.ProcessDescriptor, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return []domain.ProcessDescriptor{}, errors.Wrapf(domain.ErrEnumerationUnavailable, "list processes: %v", err)
	}
	descriptors := make([]domain.ProcessDescriptor, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			// exited or inaccessible since the listing
			continue
		}
		descriptors = append(descriptors, domain.ProcessDescriptor{PID: p.Pid, ExecutableName: name})
	}
	return descriptors, nil
}

func (s *Source) ResolvePath(ctx context.Context, d domain.ProcessDescriptor) (string, error) {
	p, err := process.NewProcessWithContext(ctx, d.PID)
	if err != nil {
		return "", errors.Wrapf(domain.ErrProcessUnopenable, "pid %d: %v", d.PID, err)
	}
	exe, err := p.ExeWithContext(ctx)
	if err != nil {
		return "", errors.Wrapf(domain.ErrProcessUnopenable, "pid %d exe: %v", d.PID, err)
	}
	if exe == "" {
		return "", errors.Wrapf(domain.ErrProcessUnopenable, "pid %d has no executable image", d.PID)
	}
	return exe, nil
}

// Terminate kills the process without waiting for it to exit. A process that is already
// gone counts as terminated.
func (s *Source) Terminate(ctx context.Context, pid int32) error {
	if pid <= 0 {
		return errors.Wrapf(domain.ErrTerminationFailed, "invalid pid %d", pid)
	}
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		if errors.Is(err, process.ErrorProcessNotRunning) {
			return nil
		}
		return errors.Wrapf(domain.ErrTerminationFailed, "open pid %d: %v", pid, err)
	}
	err = p.KillWithContext(ctx)
	if err == nil || processGone(err) {
		return nil
	}
	if exists, existsErr := process.PidExistsWithContext(ctx, pid); existsErr == nil && !exists {
		return nil
	}
	return errors.Wrapf(domain.ErrTerminationFailed, "kill pid %d: %v", pid, err)
}
