package domain

import (
	"context"
	"time"
)

// ProcessEnumerator snapshots the OS process table. On failure it returns an empty slice
// and an error wrapping ErrEnumerationUnavailable.
type ProcessEnumerator interface {
	Enumerate(ctx context.Context) ([]ProcessDescriptor, error)
}

// PathResolver resolves the on-disk executable of a live process. Failure wraps
// ErrProcessUnopenable.
type PathResolver interface {
	ResolvePath(ctx context.Context, d ProcessDescriptor) (string, error)
}

// Digester computes the lowercase hex SHA-256 of a file.
type Digester interface {
	Digest(ctx context.Context, path string) (string, error)
}

// Terminator asks the OS to terminate a process. A process that is already gone is
// success; other failures wrap ErrTerminationFailed.
type Terminator interface {
	Terminate(ctx context.Context, pid int32) error
}

// ProcessSource is what a platform backend provides.
type ProcessSource interface {
	ProcessEnumerator
	PathResolver
	Terminator
	Name() string
}

// FlaggedProcess is a process that matched a suspicious name in the latest cycle.
type FlaggedProcess struct {
	PID     int32
	Name    string
	Path    string
	Digest  string
	Result  ScanResult
	State   DetectionState
	Reason  string
	CycleID string
	SeenAt  time.Time
}

// Status describes the scanner for the control surface.
type Status struct {
	Running              bool
	Backend              string
	CyclePeriod          time.Duration
	Patterns             []string
	KnownDigests         int
	DigestSetFingerprint string
	CyclesCompleted      uint64
	LastCycle            *CycleReport
}

// Service defines the interface for the scanner service layer
type Service interface {
	// RunCycle runs one enumerate-and-evaluate pass; ErrCycleInFlight if one is running
	RunCycle(ctx context.Context) (*CycleReport, error)
	// Start launches the scan loop in the background
	Start(ctx context.Context) error
	// Stop cancels the scan loop and waits for the current cycle to unwind
	Stop(ctx context.Context) error
	// Status reports the loop state and the latest cycle
	Status(ctx context.Context) Status
	// ListFlagged returns processes flagged in the latest completed cycle
	ListFlagged(ctx context.Context) []FlaggedProcess
	// QueryDetections reads the detection audit trail; ErrDetectionStoreDisabled without a store
	QueryDetections(ctx context.Context, opt *QueryDetectionOptions) error
}

// Authenticator guards the control endpoints of the REST surface.
type Authenticator interface {
	// Enabled is false when the control endpoints are open
	Enabled() bool
	// IssueToken checks operator credentials and signs a bearer token
	IssueToken(ctx context.Context, clientID, password string) (string, time.Time, error)
	// VerifyToken parses a bearer token; failures wrap ErrInvalidToken
	VerifyToken(ctx context.Context, token string) (*Claims, error)
}
