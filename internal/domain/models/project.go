// internal/domain/models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project is a showcased piece of work owned by exactly one User.
//
// CreatedBy is a reference, not an embedded document. The owning user also
// carries this project's ID in its Projects list; that back-reference is
// maintained by the project store on create and delete.
type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Image       string             `bson:"image" json:"image"`
	LiveSiteURL string             `bson:"live_site_url" json:"liveSiteUrl"`
	GithubURL   string             `bson:"github_url" json:"githubUrl"`
	Category    string             `bson:"category" json:"category"`
	CreatedBy   primitive.ObjectID `bson:"created_by" json:"created_by"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
