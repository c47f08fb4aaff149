package rest

import (
	"net/http"
	"strings"

	"github.com/procwarden/procwarden/pkg/logger"
)

// TokenRequest represents the request structure for operator token generation
type TokenRequest struct {
	ClientID string `json:"client_id"`
	Password string `json:"password"`
}

// TokenResponse represents the response structure for operator token generation
type TokenResponse struct {
	Token     string `json:"token,omitempty"`
	ExpiredAt int64  `json:"expired_at,omitempty"`
}

// GenToken godoc
// @Summary Issue an operator token
// @Description Exchanges the operator password for an RS256 bearer token used by the control endpoints.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body TokenRequest true "Operator credentials"
// @Success 200 {object} SuccessResponse[TokenResponse]
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/auth/token [post]
func (h *Handler) GenToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.Auth == nil || !h.Auth.Enabled() {
		h.ErrorResponse(ctx, w, http.StatusNotFound, "authentication is not enabled")
		return
	}
	var req TokenRequest
	if err := h.JSONBind(r, &req); err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	token, expiredAt, err := h.Auth.IssueToken(ctx, req.ClientID, req.Password)
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	resp := TokenResponse{
		Token:     token,
		ExpiredAt: expiredAt.Unix(),
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(&resp))
}

// GetAuthMiddleware requires a valid bearer token when authentication is enabled, and passes
// requests through otherwise.
func (h *Handler) GetAuthMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if h.Auth == nil || !h.Auth.Enabled() {
				next.ServeHTTP(w, r)
				return
			}
			tokenString := r.Header.Get("Authorization")
			if tokenString == "" {
				h.ErrorResponse(ctx, w, http.StatusUnauthorized, "Missing Authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(tokenString, bearerPrefix) || len(tokenString) == len(bearerPrefix) {
				h.ErrorResponse(ctx, w, http.StatusUnauthorized, "Invalid Authorization header format")
				return
			}
			tokenString = tokenString[len(bearerPrefix):]

			claims, err := h.Auth.VerifyToken(ctx, tokenString)
			if err != nil {
				h.HandleError(ctx, w, err)
				return
			}
			log := logger.Logger(ctx).With().Str("client_id", claims.ClientID).Logger()
			next.ServeHTTP(w, r.WithContext(log.WithContext(ctx)))
		})
	}
}
