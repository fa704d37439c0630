package user

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-social-go/internal/apperror"
	"github.com/ovaphlow/pitchfork/service-social-go/pkg/utilities"
)

// Handler exposes HTTP endpoints for user lookup.
type Handler struct {
	svc        *UserService
	logger     *zap.SugaredLogger
	production bool
}

func NewHandler(svc *UserService, logger *zap.SugaredLogger, production bool) *Handler {
	return &Handler{svc: svc, logger: logger, production: production}
}

// Search handles GET /api/users/search?q&limit.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	users, err := h.svc.Search(r.Context(), q.Get("q"), utilities.QueryInt(q.Get("limit")))
	if err != nil {
		apperror.Write(w, r, h.logger, h.production, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, map[string]any{"users": users})
}
