package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/procwarden/procwarden/pkg/logger"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
)

const (
	requestIDHeader = "X-Request-ID"
	// only this much of an error body is copied into the access log
	maxLoggedBodyBytes = 2048
)

// LoggerMiddleware tags every control request with a request id, puts a request scoped
// logger into the context and writes one access log line when the request completes.
// A panic in the handler is logged with its stack and answered with a JSON 500.
func LoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(requestIDHeader)
		if reqID == "" {
			reqID = xid.New().String()
		}
		w.Header().Set(requestIDHeader, reqID)

		log := logger.Logger(r.Context()).With().
			Str("req_id", reqID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Logger()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		began := time.Now()

		defer func() {
			if p := recover(); p != nil {
				log.Error().Interface("panic", p).Bytes("stack", debug.Stack()).Msg("control request panicked")
				if !rec.wroteHeader {
					writePanicResponse(rec)
				}
			}
			accessLog(log, rec, time.Since(began))
		}()

		next.ServeHTTP(rec, r.WithContext(log.WithContext(r.Context())))
	})
}

func accessLog(log zerolog.Logger, rec *statusRecorder, took time.Duration) {
	var ev *zerolog.Event
	switch {
	case rec.status >= http.StatusInternalServerError:
		ev = log.Error().Bytes("body", rec.errBody.Bytes())
	case rec.status >= http.StatusBadRequest:
		ev = log.Warn().Bytes("body", rec.errBody.Bytes())
	default:
		ev = log.Info()
	}
	ev.Int("status", rec.status).Dur("took", took).Msg("control request")
}

func writePanicResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Success: false, Error: "internal error"})
}

// statusRecorder remembers the status code and the head of an error response body.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	errBody     bytes.Buffer
}

func (rec *statusRecorder) WriteHeader(code int) {
	if rec.wroteHeader {
		return
	}
	rec.status = code
	rec.wroteHeader = true
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	if !rec.wroteHeader {
		rec.WriteHeader(http.StatusOK)
	}
	if rec.status >= http.StatusBadRequest {
		if room := maxLoggedBodyBytes - rec.errBody.Len(); room > 0 {
			rec.errBody.Write(b[:min(room, len(b))])
		}
	}
	return rec.ResponseWriter.Write(b)
}
