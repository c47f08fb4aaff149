package rest

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/procwarden/procwarden/scanner/domain"
)

type DetectionView struct {
	ID         string    `json:"id"`
	CycleID    string    `json:"cycle_id"`
	MachineID  string    `json:"machine_id"`
	PID        int32     `json:"pid"`
	Name       string    `json:"name"`
	Path       string    `json:"path,omitempty"`
	Digest     string    `json:"digest,omitempty"`
	Result     string    `json:"result"`
	State      string    `json:"state"`
	Reason     string    `json:"reason,omitempty"`
	DetectedAt time.Time `json:"detected_at"`
}

type ListDetectionsResponse struct {
	Detections []DetectionView `json:"detections"`
}

// ListDetections godoc
// @Summary Detection audit trail
// @Description Returns stored detections, newest first. Requires the MongoDB detection store.
// @Tags Detections
// @Produce json
// @Param cycle_id query string false "Only detections of this cycle"
// @Param pid query []int false "Only these pids" collectionFormat(multi)
// @Param result query []string false "Only these scan results" collectionFormat(multi)
// @Param since query string false "RFC3339 lower bound on detection time"
// @Param limit query int false "Maximum number of records (default 100)"
// @Success 200 {object} SuccessResponse[ListDetectionsResponse]
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/detections [get]
func (h *Handler) ListDetections(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	opt, err := parseDetectionQuery(r.URL.Query())
	if err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Svc.QueryDetections(ctx, opt); err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	resp := ListDetectionsResponse{Detections: make([]DetectionView, 0, len(opt.Result))}
	for _, d := range opt.Result {
		resp.Detections = append(resp.Detections, DetectionView{
			ID:         d.ID,
			CycleID:    d.CycleID,
			MachineID:  d.MachineID,
			PID:        d.PID,
			Name:       d.Name,
			Path:       d.Path,
			Digest:     d.Digest,
			Result:     d.Result.String(),
			State:      d.State.String(),
			Reason:     d.Reason,
			DetectedAt: d.DetectedAt,
		})
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(&resp))
}

func parseDetectionQuery(q url.Values) (*domain.QueryDetectionOptions, error) {
	opt := &domain.QueryDetectionOptions{CycleID: q.Get("cycle_id")}
	for _, raw := range q["pid"] {
		pid, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || pid <= 0 {
			return nil, fmt.Errorf("invalid pid %q", raw)
		}
		opt.PIDs = append(opt.PIDs, int32(pid))
	}
	for _, raw := range q["result"] {
		result, ok := domain.ParseScanResult(raw)
		if !ok {
			return nil, fmt.Errorf("invalid result %q", raw)
		}
		opt.Results = append(opt.Results, result)
	}
	if raw := q.Get("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid since %q: want RFC3339", raw)
		}
		opt.Since = since
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || limit <= 0 {
			return nil, fmt.Errorf("invalid limit %q", raw)
		}
		opt.Limit = limit
	}
	return opt, nil
}
