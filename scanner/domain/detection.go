package domain

import (
	"context"
	"time"
)

// Detection is the audit record kept for every flagged process.
type Detection struct {
	ID         string
	CycleID    string
	MachineID  string
	PID        int32
	Name       string
	Path       string
	Digest     string
	Result     ScanResult
	State      DetectionState
	Reason     string
	DetectedAt time.Time
}

// NewDetection turns a flagged process into its audit record.
func NewDetection(f FlaggedProcess, machineID string) *Detection {
	return &Detection{
		CycleID:    f.CycleID,
		MachineID:  machineID,
		PID:        f.PID,
		Name:       f.Name,
		Path:       f.Path,
		Digest:     f.Digest,
		Result:     f.Result,
		State:      f.State,
		Reason:     f.Reason,
		DetectedAt: f.SeenAt,
	}
}

const DefaultDetectionQueryLimit = 100

// QueryDetectionOptions filters detections; zero values match everything. Matches are
// returned newest first in Result.
type QueryDetectionOptions struct {
	CycleID string
	PIDs    []int32
	Results []ScanResult
	Since   time.Time
	Limit   int64
	Result  []*Detection
}

// DetectionRepository stores detection audit records.
type DetectionRepository interface {
	InsertDetections(ctx context.Context, detections []*Detection) error
	QueryDetections(ctx context.Context, opt *QueryDetectionOptions) error
}
