// internal/app/features/users/handler.go
package users

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	projectstore "github.com/dalemusser/devshowcase/internal/app/store/projects"
	userstore "github.com/dalemusser/devshowcase/internal/app/store/users"
	"github.com/dalemusser/devshowcase/internal/app/system/auth"
	"github.com/dalemusser/devshowcase/internal/app/system/httpjson"
	"github.com/dalemusser/devshowcase/internal/app/system/timeouts"
	"github.com/dalemusser/devshowcase/internal/app/system/viewmodel"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves user profiles and the current-session endpoint.
type Handler struct {
	Users    *userstore.Store
	Projects *projectstore.Store
	Log      *zap.Logger
}

// NewHandler creates a new user API handler.
func NewHandler(users *userstore.Store, projects *projectstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Users:    users,
		Projects: projects,
		Log:      logger,
	}
}

// ServeGet handles GET /api/users/{id} and returns {"user": …}, or
// 404 {"user": null} when the id does not resolve.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Write(w, http.StatusNotFound, map[string]any{"user": nil})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.Write(w, http.StatusNotFound, map[string]any{"user": nil})
			return
		}
		h.Log.Error("get user failed", zap.Error(err), zap.String("user_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{"user": viewmodel.NewUser(user)})
}

// ServeProjects handles GET /api/users/{id}/projects?last= and returns the
// user together with their newest projects in the connection envelope:
//
//	{ "user": { …, "projects": { "edges": […], "pageInfo": {…} } } }
//
// The last parameter caps the list; it defaults to 4 when absent or
// unparseable.
func (h *Handler) ServeProjects(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Write(w, http.StatusNotFound, map[string]any{"user": nil})
		return
	}

	limit := 0
	if raw := query.Get(r, "last"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	owner, projects, err := h.Projects.ByOwner(ctx, id, limit)
	if err != nil {
		if errors.Is(err, projectstore.ErrOwnerNotFound) {
			httpjson.Write(w, http.StatusNotFound, map[string]any{"user": nil})
			return
		}
		h.Log.Error("get user projects failed", zap.Error(err), zap.String("user_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "failed to fetch user projects")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"user": viewmodel.NewUserWithProjects(owner, projects),
	})
}

// profileInput is the request body for the profile update.
type profileInput struct {
	Description string `json:"description"`
	GithubURL   string `json:"githubUrl"`
	LinkedInURL string `json:"linkedinUrl"`
}

// ServeUpdateProfile handles PUT /api/users/{id}. Users can only edit
// their own profile; the response carries the refreshed user.
func (h *Handler) ServeUpdateProfile(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "user not found")
		return
	}
	if id.Hex() != su.ID {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return
	}

	var in profileInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Users.UpdateProfile(ctx, id, in.Description, in.GithubURL, in.LinkedInURL); err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error("update profile failed", zap.Error(err), zap.String("user_id", su.ID))
		httpjson.Error(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	user, err := h.Users.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("reload user failed", zap.Error(err), zap.String("user_id", su.ID))
		httpjson.Error(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{"user": viewmodel.NewUser(user)})
}

// ServeSession handles GET /api/session. Signed-out callers get
// {"user": null} with a 200, mirroring what a session probe expects.
func (h *Handler) ServeSession(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Write(w, http.StatusOK, map[string]any{"user": nil})
		return
	}

	id, err := primitive.ObjectIDFromHex(su.ID)
	if err != nil {
		httpjson.Write(w, http.StatusOK, map[string]any{"user": nil})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			// Session cookie outlived the account record
			httpjson.Write(w, http.StatusOK, map[string]any{"user": nil})
			return
		}
		h.Log.Error("session user lookup failed", zap.Error(err), zap.String("user_id", su.ID))
		httpjson.Error(w, http.StatusInternalServerError, "failed to fetch session")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{"user": viewmodel.NewUser(user)})
}
