package domain

import "errors"

var (
	ErrEnumerationUnavailable = errors.New("process enumeration unavailable")
	ErrProcessUnopenable      = errors.New("process cannot be opened for inspection")
	ErrTerminationFailed      = errors.New("process termination failed")
	ErrProtectedProcess       = errors.New("process is protected from termination")
	ErrCycleInFlight          = errors.New("a scan cycle is already in flight")
	ErrAlreadyRunning         = errors.New("scanner is already running")
	ErrNotRunning             = errors.New("scanner is not running")
	ErrDetectionStoreDisabled = errors.New("detection store is not configured")
	ErrInvalidCredentials     = errors.New("invalid operator credentials")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrAuthDisabled           = errors.New("authentication is not enabled")
)
