// internal/app/features/projects/routes.go
package projects

import (
	"github.com/dalemusser/devshowcase/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router for the project API. Reads are public;
// writes require a signed-in session.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeGet)

	r.Group(func(r chi.Router) {
		r.Use(sm.RequireSignedIn)
		r.Post("/", h.ServeCreate)
		r.Put("/{id}", h.ServeUpdate)
		r.Delete("/{id}", h.ServeDelete)
	})

	return r
}
