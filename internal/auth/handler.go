package auth

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-social-go/internal/apperror"
	"github.com/ovaphlow/pitchfork/service-social-go/pkg/utilities"
)

type Handler struct {
	svc        *AuthService
	logger     *zap.SugaredLogger
	production bool
}

func NewHandler(svc *AuthService, logger *zap.SugaredLogger, production bool) *Handler {
	return &Handler{svc: svc, logger: logger, production: production}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken any `json:"refreshToken"`
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := utilities.DecodeJSON(w, r, &req); err != nil {
		h.fail(w, r, apperror.Validation("Invalid request body"))
		return
	}
	u, err := h.svc.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utilities.WriteJSON(w, http.StatusCreated, u)
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := utilities.DecodeJSON(w, r, &req); err != nil {
		h.fail(w, r, apperror.Validation("Invalid request body"))
		return
	}
	pair, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, pair)
}

// Refresh handles POST /api/auth/refresh. A refreshToken that is absent or
// not a string is a validation failure.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := utilities.DecodeJSON(w, r, &req); err != nil {
		h.fail(w, r, apperror.Validation("Invalid request body"))
		return
	}
	token, ok := req.RefreshToken.(string)
	if !ok {
		h.fail(w, r, apperror.Validation("Refresh token is required"))
		return
	}
	pair, err := h.svc.Refresh(r.Context(), token)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, pair)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	apperror.Write(w, r, h.logger, h.production, err)
}
