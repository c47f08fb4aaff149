//go:build windows

package gopsutil

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

// OpenProcess on an exited pid fails with ERROR_INVALID_PARAMETER.
func processGone(err error) bool {
	return errors.Is(err, windows.ERROR_INVALID_PARAMETER)
}
