package feed

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-social-go/internal/apperror"
	"github.com/ovaphlow/pitchfork/service-social-go/internal/auth"
	"github.com/ovaphlow/pitchfork/service-social-go/pkg/utilities"
)

type Handler struct {
	svc        *FeedService
	logger     *zap.SugaredLogger
	production bool
}

func NewHandler(svc *FeedService, logger *zap.SugaredLogger, production bool) *Handler {
	return &Handler{svc: svc, logger: logger, production: production}
}

// Get handles GET /api/feed?page&limit for the authenticated caller.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		apperror.Write(w, r, h.logger, h.production, apperror.Auth("Authorization header missing or invalid"))
		return
	}
	q := r.URL.Query()
	page, err := h.svc.GetFeed(r.Context(), p.ID, utilities.QueryInt(q.Get("page")), utilities.QueryInt(q.Get("limit")))
	if err != nil {
		apperror.Write(w, r, h.logger, h.production, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, page)
}
