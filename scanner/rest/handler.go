package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/procwarden/procwarden/pkg/logger"
	"github.com/procwarden/procwarden/scanner/domain"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Version is overridden at build time with -ldflags "-X .../scanner/rest.Version=...".
var Version = "dev"

// ErrorResponse represents error response structure
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// SuccessResponse wraps a payload returned by the control API
type SuccessResponse[T any] struct {
	Success   bool   `json:"success"`
	Data      *T     `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
}

func NewSuccessResponse[T any](data *T) SuccessResponse[T] {
	return SuccessResponse[T]{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

type Params struct {
	fx.In
	Svc      domain.Service
	Auth     domain.Authenticator `optional:"true"`
	Gatherer prometheus.Gatherer  `optional:"true"`
}

func NewHandler(params Params) (*Handler, error) {
	gatherer := params.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Handler{
		Svc:      params.Svc,
		Auth:     params.Auth,
		Gatherer: gatherer,
	}, nil
}

type Handler struct {
	Svc      domain.Service
	Auth     domain.Authenticator
	Gatherer prometheus.Gatherer
}

const maxRequestBodyBytes = 1 << 20

// JSONBind decodes the request body into dst, rejecting unknown fields.
func (h *Handler) JSONBind(r *http.Request, dst any) error {
	defer r.Body.Close()
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func (h *Handler) JSONResponse(ctx context.Context, w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		logger.Logger(ctx).Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) ErrorResponse(ctx context.Context, w http.ResponseWriter, status int, errMsg string) {
	resp := ErrorResponse{
		Success: false,
		Error:   errMsg,
	}
	h.JSONResponse(ctx, w, status, resp)
}

// HandleError maps scanner control errors onto HTTP status codes.
func (h *Handler) HandleError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrCycleInFlight),
		errors.Is(err, domain.ErrAlreadyRunning),
		errors.Is(err, domain.ErrNotRunning):
		h.ErrorResponse(ctx, w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken):
		h.ErrorResponse(ctx, w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrAuthDisabled),
		errors.Is(err, domain.ErrDetectionStoreDisabled):
		h.ErrorResponse(ctx, w, http.StatusNotFound, err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		h.ErrorResponse(ctx, w, http.StatusServiceUnavailable, err.Error())
	default:
		logger.Logger(ctx).Error().Err(err).Msg("unexpected scanner error")
		h.ErrorResponse(ctx, w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"message":   "procwarden process integrity scanner",
		"version":   Version,
		"endpoints": "/api/v1/scanner/status (GET), /api/v1/scanner/flagged (GET), /api/v1/scanner/start (POST), /api/v1/scanner/stop (POST), /api/v1/scanner/cycles (POST), /api/v1/detections (GET), /api/v1/auth/token (POST), /metrics (GET), /health (GET), /swagger/index.html (GET)",
	}
	h.JSONResponse(r.Context(), w, http.StatusOK, response)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "procwarden",
	}
	h.JSONResponse(r.Context(), w, http.StatusOK, response)
}
