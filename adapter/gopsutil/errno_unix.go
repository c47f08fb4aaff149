//go:build !windows

package gopsutil

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Kill goes through os.Process.Signal, which reports ESRCH as os.ErrProcessDone.
func processGone(err error) bool {
	return errors.Is(err, os.ErrProcessDone) || errors.Is(err, unix.ESRCH)
}
