// internal/app/features/users/routes.go
package users

import (
	"github.com/dalemusser/devshowcase/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router for the user API. Reads are public; the
// profile update requires a signed-in session.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Get("/{id}", h.ServeGet)
	r.Get("/{id}/projects", h.ServeProjects)
	r.With(sm.RequireSignedIn).Put("/{id}", h.ServeUpdateProfile)
	return r
}

// MountSession registers GET /api/session on the supplied router. No
// auth middleware is required because the handler itself checks the
// session via auth.CurrentUser.
func MountSession(r chi.Router, h *Handler) {
	r.Get("/api/session", h.ServeSession)
}
