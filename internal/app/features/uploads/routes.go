// internal/app/features/uploads/routes.go
package uploads

import (
	"github.com/dalemusser/devshowcase/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers the asset pass-through endpoints on the supplied
// router. Uploads require a signed-in session; the token endpoint is
// public because client-side rendering needs it before sign-in.
func MountRoutes(r chi.Router, h *Handler, sm *auth.SessionManager) {
	r.Get("/api/token", h.ServeToken)
	r.With(sm.RequireSignedIn).Post("/api/upload", h.ServeUpload)
}
