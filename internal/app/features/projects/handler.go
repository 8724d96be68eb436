// internal/app/features/projects/handler.go
package projects

import (
	"context"
	"errors"
	"net/http"

	projectstore "github.com/dalemusser/devshowcase/internal/app/store/projects"
	"github.com/dalemusser/devshowcase/internal/app/system/auth"
	"github.com/dalemusser/devshowcase/internal/app/system/htmlsanitize"
	"github.com/dalemusser/devshowcase/internal/app/system/httpjson"
	"github.com/dalemusser/devshowcase/internal/app/system/timeouts"
	"github.com/dalemusser/devshowcase/internal/app/system/viewmodel"
	"github.com/dalemusser/devshowcase/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the project API.
type Handler struct {
	Projects *projectstore.Store
	Log      *zap.Logger
}

// NewHandler creates a new project API handler.
func NewHandler(projects *projectstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Projects: projects,
		Log:      logger,
	}
}

// projectInput is the request body for create and update.
type projectInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	LiveSiteURL string `json:"liveSiteUrl"`
	GithubURL   string `json:"githubUrl"`
	Category    string `json:"category"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api/projects?category=&endcursor=                                       |
| Lists the newest projects, optionally filtered by category.                  |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeList returns {"projectSearch": connection}. The endcursor parameter
// is part of the external contract but has no effect on the result.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	category := query.Get(r, "category")
	_ = query.Get(r, "endcursor")

	projects, owners, err := h.Projects.List(ctx, category)
	if err != nil {
		h.Log.Error("list projects failed", zap.Error(err), zap.String("category", category))
		httpjson.Error(w, http.StatusInternalServerError, "failed to list projects")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"projectSearch": viewmodel.NewConnection(viewmodel.NewProjects(projects, owners)),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/projects                                                           |
| Creates a project owned by the signed-in user.                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ownerID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		h.Log.Error("session user has malformed id", zap.String("user_id", user.ID))
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in projectInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, owner, err := h.Projects.Create(ctx, in.toModel(ownerID))
	if err != nil {
		if errors.Is(err, projectstore.ErrOwnerNotFound) {
			httpjson.Error(w, http.StatusNotFound, "owner not found")
			return
		}
		if projectstore.IsValidation(err) {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Log.Error("create project failed", zap.Error(err), zap.String("owner_id", user.ID))
		httpjson.Error(w, http.StatusInternalServerError, "failed to create project")
		return
	}

	h.Log.Info("project created",
		zap.String("project_id", created.ID.Hex()),
		zap.String("owner_id", user.ID))

	vm := viewmodel.NewProject(created, &owner)
	httpjson.Write(w, http.StatusCreated, map[string]any{"project": vm})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api/projects/{id}                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeGet returns {"project": …}, or 404 {"project": null} when the id
// does not resolve.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Write(w, http.StatusNotFound, map[string]any{"project": nil})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	project, owner, err := h.Projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, projectstore.ErrNotFound) {
			httpjson.Write(w, http.StatusNotFound, map[string]any{"project": nil})
			return
		}
		h.Log.Error("get project failed", zap.Error(err), zap.String("project_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "failed to fetch project")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"project": viewmodel.NewProject(project, owner),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| PUT /api/projects/{id}                                                       |
| Replaces the mutable fields. Only the owner may update.                      |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "project not found")
		return
	}

	var in projectInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	existing, _, err := h.Projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, projectstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "project not found")
			return
		}
		h.Log.Error("get project failed", zap.Error(err), zap.String("project_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "failed to update project")
		return
	}
	if existing.CreatedBy.Hex() != user.ID {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return
	}

	updated, owner, err := h.Projects.Update(ctx, id, in.toModel(existing.CreatedBy))
	if err != nil {
		if errors.Is(err, projectstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "project not found")
			return
		}
		if projectstore.IsValidation(err) {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Log.Error("update project failed", zap.Error(err), zap.String("project_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "failed to update project")
		return
	}

	h.Log.Info("project updated",
		zap.String("project_id", id.Hex()),
		zap.String("owner_id", user.ID))

	httpjson.Write(w, http.StatusOK, map[string]any{
		"project": viewmodel.NewProject(updated, owner),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| DELETE /api/projects/{id}                                                    |
| Removes the project and the owner's back-reference.                          |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeDelete responds with {"deletedId": hex} on success.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "project not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	existing, _, err := h.Projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, projectstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "project not found")
			return
		}
		h.Log.Error("get project failed", zap.Error(err), zap.String("project_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "failed to delete project")
		return
	}
	if existing.CreatedBy.Hex() != user.ID {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return
	}

	deletedID, err := h.Projects.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, projectstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "project not found")
			return
		}
		h.Log.Error("delete project failed", zap.Error(err), zap.String("project_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "failed to delete project")
		return
	}

	h.Log.Info("project deleted",
		zap.String("project_id", deletedID.Hex()),
		zap.String("owner_id", user.ID))

	httpjson.Write(w, http.StatusOK, map[string]string{"deletedId": deletedID.Hex()})
}

// toModel builds the storage document from the request body. Descriptions
// may carry user-authored HTML, so they pass through the UGC sanitizer.
func (in projectInput) toModel(ownerID primitive.ObjectID) models.Project {
	return models.Project{
		Title:       in.Title,
		Description: htmlsanitize.Sanitize(in.Description),
		Image:       in.Image,
		LiveSiteURL: in.LiveSiteURL,
		GithubURL:   in.GithubURL,
		Category:    in.Category,
		CreatedBy:   ownerID,
	}
}
