// internal/app/system/viewmodel/viewmodel.go

// Package viewmodel converts storage documents into the flat shapes the API
// returns.
//
// The contract: every entity leaving the server carries a string `id`
// derived from its ObjectID, alongside all persisted fields. A populated
// reference (project owner, user's project list) is normalized the same
// way, exactly one level deep; nothing in this system nests further.
//
// Lists travel in an edge/cursor connection envelope. The envelope shape is
// a fixed external contract, but pagination itself is not implemented:
// the pageInfo flags are always false and the cursors always empty, no
// matter how many documents match beyond the returned page.
package viewmodel

import (
	"time"

	"github.com/dalemusser/devshowcase/internal/domain/models"
)

// PageInfo is the pagination stub carried by every connection.
type PageInfo struct {
	HasNextPage     bool   `json:"hasNextPage"`
	HasPreviousPage bool   `json:"hasPreviousPage"`
	StartCursor     string `json:"startCursor"`
	EndCursor       string `json:"endCursor"`
}

// Edge wraps a single node in a connection.
type Edge[T any] struct {
	Node T `json:"node"`
}

// Connection is the list envelope: edges plus the pagination stub.
type Connection[T any] struct {
	Edges    []Edge[T] `json:"edges"`
	PageInfo PageInfo  `json:"pageInfo"`
}

// NewConnection wraps nodes in the envelope. Edges is never null in JSON,
// even for an empty result.
func NewConnection[T any](nodes []T) Connection[T] {
	edges := make([]Edge[T], 0, len(nodes))
	for _, n := range nodes {
		edges = append(edges, Edge[T]{Node: n})
	}
	return Connection[T]{Edges: edges, PageInfo: PageInfo{}}
}

// User is the flat user view-model.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	AvatarURL   string    `json:"avatarUrl"`
	Description string    `json:"description,omitempty"`
	GithubURL   string    `json:"githubUrl,omitempty"`
	LinkedInURL string    `json:"linkedinUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Project is the flat project view-model. CreatedBy is present when the
// query resolved the owner reference.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	LiveSiteURL string    `json:"liveSiteUrl"`
	GithubURL   string    `json:"githubUrl"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	CreatedBy   *User     `json:"createdBy,omitempty"`
}

// UserWithProjects is a user plus their owned projects in the connection
// envelope, as returned by the user-projects endpoint.
type UserWithProjects struct {
	User
	Projects Connection[Project] `json:"projects"`
}

// NewUser normalizes a user document.
func NewUser(u models.User) User {
	return User{
		ID:          u.ID.Hex(),
		Email:       u.Email,
		Name:        u.Name,
		AvatarURL:   u.AvatarURL,
		Description: u.Description,
		GithubURL:   u.GithubURL,
		LinkedInURL: u.LinkedInURL,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// NewProject normalizes a project document. owner may be nil when the
// query did not resolve the reference.
func NewProject(p models.Project, owner *models.User) Project {
	vp := Project{
		ID:          p.ID.Hex(),
		Title:       p.Title,
		Description: p.Description,
		Image:       p.Image,
		LiveSiteURL: p.LiveSiteURL,
		GithubURL:   p.GithubURL,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if owner != nil {
		u := NewUser(*owner)
		vp.CreatedBy = &u
	}
	return vp
}

// NewProjects normalizes a slice of projects against a map of resolved
// owners keyed by hex ID. Projects whose owner was not resolved keep a nil
// CreatedBy rather than dropping out of the list.
func NewProjects(ps []models.Project, owners map[string]models.User) []Project {
	out := make([]Project, 0, len(ps))
	for _, p := range ps {
		var owner *models.User
		if u, ok := owners[p.CreatedBy.Hex()]; ok {
			owner = &u
		}
		out = append(out, NewProject(p, owner))
	}
	return out
}

// NewUserWithProjects normalizes a user together with their resolved
// project list. The embedded projects do not re-embed the owner; the
// resolution is one level deep.
func NewUserWithProjects(u models.User, projects []models.Project) UserWithProjects {
	views := make([]Project, 0, len(projects))
	for _, p := range projects {
		views = append(views, NewProject(p, nil))
	}
	return UserWithProjects{
		User:     NewUser(u),
		Projects: NewConnection(views),
	}
}
