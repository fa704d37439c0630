package post

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-social-go/internal/apperror"
	"github.com/ovaphlow/pitchfork/service-social-go/internal/auth"
	"github.com/ovaphlow/pitchfork/service-social-go/pkg/utilities"
)

type Handler struct {
	svc        *PostService
	logger     *zap.SugaredLogger
	production bool
}

func NewHandler(svc *PostService, logger *zap.SugaredLogger, production bool) *Handler {
	return &Handler{svc: svc, logger: logger, production: production}
}

type createRequest struct {
	Content string `json:"content"`
}

// Create handles POST /api/posts.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.fail(w, r, apperror.Auth("Authorization header missing or invalid"))
		return
	}
	var req createRequest
	if err := utilities.DecodeJSON(w, r, &req); err != nil {
		h.fail(w, r, apperror.Validation("Invalid request body"))
		return
	}
	post, err := h.svc.Create(r.Context(), p.ID, req.Content)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utilities.WriteJSON(w, http.StatusCreated, post)
}

// Get handles GET /api/posts/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utilities.PathID(r, "id")
	if err != nil {
		h.fail(w, r, apperror.Validation("Invalid post id"))
		return
	}
	post, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, post)
}

// ListByUser handles GET /api/users/{userid}/posts?page&limit.
func (h *Handler) ListByUser(w http.ResponseWriter, r *http.Request) {
	id, err := utilities.PathID(r, "userid")
	if err != nil {
		h.fail(w, r, apperror.Validation("Invalid user id"))
		return
	}
	q := r.URL.Query()
	page, err := h.svc.ListByUser(r.Context(), id, utilities.QueryInt(q.Get("page")), utilities.QueryInt(q.Get("limit")))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	apperror.Write(w, r, h.logger, h.production, err)
}
