package domain

import "time"

// ScanResult is the outcome of evaluating one process.
type ScanResult int

const (
	ResultClean ScanResult = iota
	ResultFlaggedNoMatch
	ResultFlaggedAndTerminated
	ResultFlaggedTerminationFailed
	ResultDigestUnavailable
)

// AllScanResults lists every result, in declaration order.
var AllScanResults = []ScanResult{
	ResultClean,
	ResultFlaggedNoMatch,
	ResultFlaggedAndTerminated,
	ResultFlaggedTerminationFailed,
	ResultDigestUnavailable,
}

func (r ScanResult) String() string {
	switch r {
	case ResultClean:
		return "clean"
	case ResultFlaggedNoMatch:
		return "flagged_no_match"
	case ResultFlaggedAndTerminated:
		return "flagged_and_terminated"
	case ResultFlaggedTerminationFailed:
		return "flagged_termination_failed"
	case ResultDigestUnavailable:
		return "digest_unavailable"
	default:
		return "unknown"
	}
}

// Flagged reports whether the process matched a suspicious name pattern.
func (r ScanResult) Flagged() bool {
	return r != ResultClean
}

// ParseScanResult is the inverse of ScanResult.String.
func ParseScanResult(s string) (ScanResult, bool) {
	for _, r := range AllScanResults {
		if r.String() == s {
			return r, true
		}
	}
	return ResultClean, false
}

// DetectionState is the terminal state reached by one evaluation.
type DetectionState int

const (
	StateUnmatched DetectionState = iota
	StateMatchedPathUnresolved
	StateMatchedDigestUnavailable
	StateMatchedDigestClean
	StateMatchedDigestHitTerminated
	StateMatchedDigestHitTerminationFailed
)

func (s DetectionState) String() string {
	switch s {
	case StateUnmatched:
		return "unmatched"
	case StateMatchedPathUnresolved:
		return "matched_path_unresolved"
	case StateMatchedDigestUnavailable:
		return "matched_digest_unavailable"
	case StateMatchedDigestClean:
		return "matched_digest_clean"
	case StateMatchedDigestHitTerminated:
		return "matched_digest_hit_terminated"
	case StateMatchedDigestHitTerminationFailed:
		return "matched_digest_hit_termination_failed"
	default:
		return "unknown"
	}
}

var allDetectionStates = []DetectionState{
	StateUnmatched,
	StateMatchedPathUnresolved,
	StateMatchedDigestUnavailable,
	StateMatchedDigestClean,
	StateMatchedDigestHitTerminated,
	StateMatchedDigestHitTerminationFailed,
}

func ParseDetectionState(s string) (DetectionState, bool) {
	for _, st := range allDetectionStates {
		if st.String() == s {
			return st, true
		}
	}
	return StateUnmatched, false
}

// Result maps the state onto the coarser ScanResult.
func (s DetectionState) Result() ScanResult {
	switch s {
	case StateMatchedPathUnresolved, StateMatchedDigestClean:
		return ResultFlaggedNoMatch
	case StateMatchedDigestUnavailable:
		return ResultDigestUnavailable
	case StateMatchedDigestHitTerminated:
		return ResultFlaggedAndTerminated
	case StateMatchedDigestHitTerminationFailed:
		return ResultFlaggedTerminationFailed
	default:
		return ResultClean
	}
}

// Verdict is what the evaluator returns for one descriptor.
type Verdict struct {
	Descriptor ProcessDescriptor
	State      DetectionState
	Path       string
	Digest     string
	// Err carries the failure behind a degraded state, if any.
	Err error
}

func (v Verdict) Result() ScanResult {
	return v.State.Result()
}

// CycleReport summarises one enumerate-and-evaluate pass.
type CycleReport struct {
	ID             string
	StartedAt      time.Time
	FinishedAt     time.Time
	Enumerated     int
	Evaluated      int
	Counts         map[ScanResult]int
	EnumerationErr error
	Cancelled      bool
}

func NewCycleReport(id string, startedAt time.Time) *CycleReport {
	return &CycleReport{
		ID:        id,
		StartedAt: startedAt,
		Counts:    make(map[ScanResult]int, len(AllScanResults)),
	}
}

func (r *CycleReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Flagged is the number of evaluated processes that matched a pattern.
func (r *CycleReport) Flagged() int {
	total := 0
	for result, n := range r.Counts {
		if result.Flagged() {
			total += n
		}
	}
	return total
}
