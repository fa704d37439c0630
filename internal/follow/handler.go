package follow

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-social-go/internal/apperror"
	"github.com/ovaphlow/pitchfork/service-social-go/internal/auth"
	"github.com/ovaphlow/pitchfork/service-social-go/pkg/utilities"
)

type Handler struct {
	svc        *FollowService
	logger     *zap.SugaredLogger
	production bool
}

func NewHandler(svc *FollowService, logger *zap.SugaredLogger, production bool) *Handler {
	return &Handler{svc: svc, logger: logger, production: production}
}

// Follow handles POST /api/follow/{userid}.
func (h *Handler) Follow(w http.ResponseWriter, r *http.Request) {
	caller, followee, err := h.edge(r)
	if err != nil {
		apperror.Write(w, r, h.logger, h.production, err)
		return
	}
	out, err := h.svc.Follow(r.Context(), caller, followee)
	if err != nil {
		apperror.Write(w, r, h.logger, h.production, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, map[string]string{"message": out.Message(followee)})
}

// Unfollow handles DELETE /api/follow/{userid}.
func (h *Handler) Unfollow(w http.ResponseWriter, r *http.Request) {
	caller, followee, err := h.edge(r)
	if err != nil {
		apperror.Write(w, r, h.logger, h.production, err)
		return
	}
	out, err := h.svc.Unfollow(r.Context(), caller, followee)
	if err != nil {
		apperror.Write(w, r, h.logger, h.production, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, map[string]string{"message": out.Message(followee)})
}

// Stats handles GET /api/users/{userid}/follows.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	id, err := utilities.PathID(r, "userid")
	if err != nil {
		apperror.Write(w, r, h.logger, h.production, apperror.Validation("Invalid user id"))
		return
	}
	stats, err := h.svc.Stats(r.Context(), id)
	if err != nil {
		apperror.Write(w, r, h.logger, h.production, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) edge(r *http.Request) (int64, int64, error) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		return 0, 0, apperror.Auth("Authorization header missing or invalid")
	}
	id, err := utilities.PathID(r, "userid")
	if err != nil {
		return 0, 0, apperror.Validation("Invalid user id")
	}
	return p.ID, id, nil
}
