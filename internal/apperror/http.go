package apperror

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-social-go/pkg/utilities"
)

// Write renders err as {"error": message} with the status of its kind.
// Internal failures are always logged; other kinds are logged with full
// detail only outside production.
func Write(w http.ResponseWriter, r *http.Request, logger *zap.SugaredLogger, production bool, err error) {
	e := From(err)
	status := e.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if logger != nil {
		switch {
		case e.Kind == KindInternal:
			logger.Errorw("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		case !production:
			logger.Debugw("request rejected", "method", r.Method, "path", r.URL.Path, "kind", e.Kind.String(), "err", err)
		}
	}
	utilities.WriteJSON(w, status, map[string]string{"error": e.Message})
}
