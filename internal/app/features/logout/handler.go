// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/dalemusser/devshowcase/internal/app/system/auth"
	"github.com/dalemusser/devshowcase/internal/app/system/httpjson"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
}

func NewHandler(sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
	}
}

// ServeLogout handles POST /logout. The session cookie is cleared even
// when it failed to decode; the client ends up signed out either way.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("logout: clear session", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to sign out")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{"user": nil})
}
