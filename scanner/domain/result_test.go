package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDetectionStateResult(t *testing.T) {
	testCases := []struct {
		state DetectionState
		want  ScanResult
	}{
		{StateUnmatched, ResultClean},
		{StateMatchedPathUnresolved, ResultFlaggedNoMatch},
		{StateMatchedDigestUnavailable, ResultDigestUnavailable},
		{StateMatchedDigestClean, ResultFlaggedNoMatch},
		{StateMatchedDigestHitTerminated, ResultFlaggedAndTerminated},
		{StateMatchedDigestHitTerminationFailed, ResultFlaggedTerminationFailed},
	}
	for _, tc := range testCases {
		t.Run(tc.state.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.state.Result())
			assert.Equal(t, tc.want, Verdict{State: tc.state}.Result())
		})
	}
}

func TestCycleReport(t *testing.T) {
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	report := NewCycleReport("c1", start)
	assert.Zero(t, report.Duration(), "unfinished cycle has no duration")

	report.Counts[ResultClean] = 7
	report.Counts[ResultFlaggedNoMatch] = 2
	report.Counts[ResultFlaggedAndTerminated] = 1
	report.FinishedAt = start.Add(1500 * time.Millisecond)

	assert.Equal(t, 3, report.Flagged())
	assert.Equal(t, 1500*time.Millisecond, report.Duration())
}

func TestParseResultAndState(t *testing.T) {
	for _, r := range AllScanResults {
		got, ok := ParseScanResult(r.String())
		assert.True(t, ok, r.String())
		assert.Equal(t, r, got)
	}
	for _, st := range allDetectionStates {
		got, ok := ParseDetectionState(st.String())
		assert.True(t, ok, st.String())
		assert.Equal(t, st, got)
	}
	_, ok := ParseScanResult("quarantined")
	assert.False(t, ok)
	_, ok = ParseDetectionState("")
	assert.False(t, ok)
}

func TestNewDetection(t *testing.T) {
	seen := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	d := NewDetection(FlaggedProcess{
		PID:     42,
		Name:    "ntfsDump.exe",
		Path:    "/tmp/ntfsDump.exe",
		Digest:  "d2fd0344",
		Result:  ResultFlaggedAndTerminated,
		State:   StateMatchedDigestHitTerminated,
		CycleID: "c9",
		SeenAt:  seen,
	}, "host-a")
	assert.Empty(t, d.ID)
	assert.Equal(t, "host-a", d.MachineID)
	assert.Equal(t, int32(42), d.PID)
	assert.Equal(t, "c9", d.CycleID)
	assert.Equal(t, ResultFlaggedAndTerminated, d.Result)
	assert.Equal(t, seen, d.DetectedAt)
}
