package rest

import (
	"net/http"
	"time"

	"github.com/procwarden/procwarden/scanner/domain"
)

type CycleView struct {
	ID               string         `json:"id"`
	StartedAt        time.Time      `json:"started_at"`
	FinishedAt       time.Time      `json:"finished_at"`
	DurationMs       int64          `json:"duration_ms"`
	Enumerated       int            `json:"enumerated"`
	Evaluated        int            `json:"evaluated"`
	Flagged          int            `json:"flagged"`
	Results          map[string]int `json:"results"`
	EnumerationError string         `json:"enumeration_error,omitempty"`
	Cancelled        bool           `json:"cancelled"`
}

func newCycleView(report *domain.CycleReport) *CycleView {
	if report == nil {
		return nil
	}
	view := &CycleView{
		ID:         report.ID,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		DurationMs: report.Duration().Milliseconds(),
		Enumerated: report.Enumerated,
		Evaluated:  report.Evaluated,
		Flagged:    report.Flagged(),
		Results:    make(map[string]int, len(domain.AllScanResults)),
		Cancelled:  report.Cancelled,
	}
	for _, r := range domain.AllScanResults {
		view.Results[r.String()] = report.Counts[r]
	}
	if report.EnumerationErr != nil {
		view.EnumerationError = report.EnumerationErr.Error()
	}
	return view
}

type StatusResponse struct {
	Running              bool       `json:"running"`
	Backend              string     `json:"backend"`
	CyclePeriod          string     `json:"cycle_period"`
	Patterns             []string   `json:"patterns"`
	KnownDigests         int        `json:"known_digests"`
	DigestSetFingerprint string     `json:"digest_set_fingerprint"`
	CyclesCompleted      uint64     `json:"cycles_completed"`
	LastCycle            *CycleView `json:"last_cycle,omitempty"`
}

// GetStatus godoc
// @Summary Scanner status
// @Description Returns whether the scan loop is running, its configuration and the latest cycle
// @Tags Scanner
// @Produce json
// @Success 200 {object} SuccessResponse[StatusResponse]
// @Router /api/v1/scanner/status [get]
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := h.Svc.Status(ctx)
	resp := StatusResponse{
		Running:              status.Running,
		Backend:              status.Backend,
		CyclePeriod:          status.CyclePeriod.String(),
		Patterns:             status.Patterns,
		KnownDigests:         status.KnownDigests,
		DigestSetFingerprint: status.DigestSetFingerprint,
		CyclesCompleted:      status.CyclesCompleted,
		LastCycle:            newCycleView(status.LastCycle),
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(&resp))
}

type FlaggedProcessView struct {
	PID     int32     `json:"pid"`
	Name    string    `json:"name"`
	Path    string    `json:"path,omitempty"`
	Digest  string    `json:"digest,omitempty"`
	Result  string    `json:"result"`
	State   string    `json:"state"`
	Reason  string    `json:"reason,omitempty"`
	CycleID string    `json:"cycle_id"`
	SeenAt  time.Time `json:"seen_at"`
}

type ListFlaggedResponse struct {
	Processes []FlaggedProcessView `json:"processes"`
}

// ListFlagged godoc
// @Summary Flagged processes
// @Description Returns the processes that matched a suspicious name in the latest completed cycle
// @Tags Scanner
// @Produce json
// @Success 200 {object} SuccessResponse[ListFlaggedResponse]
// @Router /api/v1/scanner/flagged [get]
func (h *Handler) ListFlagged(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	flagged := h.Svc.ListFlagged(ctx)
	resp := ListFlaggedResponse{Processes: make([]FlaggedProcessView, 0, len(flagged))}
	for _, f := range flagged {
		resp.Processes = append(resp.Processes, FlaggedProcessView{
			PID:     f.PID,
			Name:    f.Name,
			Path:    f.Path,
			Digest:  f.Digest,
			Result:  f.Result.String(),
			State:   f.State.String(),
			Reason:  f.Reason,
			CycleID: f.CycleID,
			SeenAt:  f.SeenAt,
		})
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(&resp))
}

type ControlResponse struct {
	Running bool `json:"running"`
}

// StartScanner godoc
// @Summary Start the scan loop
// @Tags Scanner
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse[ControlResponse]
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/scanner/start [post]
func (h *Handler) StartScanner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.Svc.Start(ctx); err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(&ControlResponse{Running: true}))
}

// StopScanner godoc
// @Summary Stop the scan loop
// @Tags Scanner
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse[ControlResponse]
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/scanner/stop [post]
func (h *Handler) StopScanner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.Svc.Stop(ctx); err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(&ControlResponse{Running: false}))
}

// RunCycle godoc
// @Summary Run one scan cycle now
// @Tags Scanner
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse[CycleView]
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/scanner/cycles [post]
func (h *Handler) RunCycle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	report, err := h.Svc.RunCycle(ctx)
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(newCycleView(report)))
}
