// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a signed-in creator.
//
// NOTE:
//   - Email is the unique lookup key; users are created on first successful
//     Google sign-in and never deleted.
//   - Projects is a denormalized, ordered list of owned project IDs. It is
//     the source of truth for ownership and must be kept in sync by the
//     project store (append on create, pull on delete).
type User struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Email       string               `bson:"email" json:"email"`
	Name        string               `bson:"name" json:"name"`
	AvatarURL   string               `bson:"avatar_url" json:"avatarUrl"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	GithubURL   string               `bson:"github_url,omitempty" json:"githubUrl,omitempty"`
	LinkedInURL string               `bson:"linkedin_url,omitempty" json:"linkedinUrl,omitempty"`
	Projects    []primitive.ObjectID `bson:"projects" json:"projects"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
