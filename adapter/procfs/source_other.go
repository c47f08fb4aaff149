//go:build !linux

package procfs

import (
	"context"

	"github.com/pkg/errors"
	"github.com/procwarden/procwarden/scanner/domain"
)

const BackendName = "procfs"

var errUnsupported = errors.New("procfs backend is only available on linux")

type Source struct{}

func NewSource(procRoot string) (*Source, error) {
	return nil, errUnsupported
}

func (s *Source) Name() string {
	return BackendName
}

func (s *Source) Enumerate(ctx context.Context) ([]domain.ProcessDescriptor, error) {
	return []domain.ProcessDescriptor{}, errors.Wrap(domain.ErrEnumerationUnavailable, errUnsupported.Error())
}

func (s *Source) ResolvePath(ctx context.Context, d domain.ProcessDescriptor) (string, error) {
	return "", errors.Wrap(domain.ErrProcessUnopenable, errUnsupported.Error())
}

func (s *Source) Terminate(ctx context.Context, pid int32) error {
	return errors.Wrap(domain.ErrTerminationFailed, errUnsupported.Error())
}
