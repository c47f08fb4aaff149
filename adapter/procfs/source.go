//go:build linux

// Package procfs reads the process table from a procfs mount.
package procfs

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/procwarden/procwarden/scanner/domain"
	"github.com/prometheus/procfs"
	"golang.org/x/sys/unix"
)

// BackendName is the configuration value that selects this source.
const BackendName = "procfs"

// the kernel appends this to the exe link target once the image is unlinked
const deletedSuffix = " (deleted)"

// Source enumerates, resolves and terminates processes using a procfs mount point.
type Source struct {
	fs   procfs.FS
	root string
}

func NewSource(procRoot string) (*Source, error) {
	if procRoot == "" {
		procRoot = procfs.DefaultMountPoint
	}
	fs, err := procfs.NewFS(procRoot)
	if err != nil {
		return nil, errors.Wrapf(err, "open procfs at %s", procRoot)
	}
	return &Source{fs: fs, root: procRoot}, nil
}

func (s *Source) Name() string {
	return BackendName
}

// Enumerate lists every numeric entry under the mount point. Processes that exit while
// being read are skipped.
func (s *Source) Enumerate(ctx context.Context) ([]domain.ProcessDescriptor, error) {
	procs, err := s.fs.AllProcs()
	if err != nil {
		return []domain.ProcessDescriptor{}, errors.Wrapf(domain.ErrEnumerationUnavailable, "list %s: %v", s.root, err)
	}
	descriptors := make([]domain.ProcessDescriptor, 0, len(procs))
	for _, p := range procs {
		comm, err := p.Comm()
		if err != nil {
			continue
		}
		d := domain.ProcessDescriptor{PID: int32(p.PID), ExecutableName: comm}
		// kernel threads and foreign processes without privileges have no readable exe link
		if exe, err := p.Executable(); err == nil && exe != "" {
			d.ExecutableName, d.ExecutablePath = s.describeImage(p.PID, exe)
		}
		descriptors = append(descriptors, d)
	}
	return descriptors, nil
}

// ResolvePath reads the exe link of a live process.
func (s *Source) ResolvePath(ctx context.Context, d domain.ProcessDescriptor) (string, error) {
	p, err := s.fs.Proc(int(d.PID))
	if err != nil {
		return "", errors.Wrapf(domain.ErrProcessUnopenable, "pid %d: %v", d.PID, err)
	}
	exe, err := p.Executable()
	if err != nil {
		return "", errors.Wrapf(domain.ErrProcessUnopenable, "pid %d exe: %v", d.PID, err)
	}
	if exe == "" {
		return "", errors.Wrapf(domain.ErrProcessUnopenable, "pid %d has no executable image", d.PID)
	}
	_, path := s.describeImage(int(d.PID), exe)
	return path, nil
}

// Terminate sends SIGKILL. A process that no longer exists counts as terminated.
func (s *Source) Terminate(ctx context.Context, pid int32) error {
	if pid <= 0 {
		return errors.Wrapf(domain.ErrTerminationFailed, "invalid pid %d", pid)
	}
	err := unix.Kill(int(pid), unix.SIGKILL)
	if err == nil || errors.Is(err, unix.ESRCH) {
		return nil
	}
	return errors.Wrapf(domain.ErrTerminationFailed, "kill pid %d: %v", pid, err)
}

// describeImage returns the image name and a readable path for an exe link target. When the
// image was unlinked, the path points at the exe link itself, which still opens the
// running image.
func (s *Source) describeImage(pid int, exe string) (string, string) {
	if trimmed, ok := strings.CutSuffix(exe, deletedSuffix); ok {
		return filepath.Base(trimmed), filepath.Join(s.root, strconv.Itoa(pid), "exe")
	}
	return filepath.Base(exe), exe
}
