// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/devshowcase/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given profile fields.
// Returns the created user with its generated ID and an empty project list.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, avatarURL string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Name:      name,
		AvatarURL: avatarURL,
		Projects:  []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateProject creates a test project owned by the given user and appends
// it to the owner's project list, mirroring what the project store does.
func (f *Fixtures) CreateProject(ctx context.Context, title, category string, ownerID primitive.ObjectID) models.Project {
	f.t.Helper()
	return f.CreateProjectAt(ctx, title, category, ownerID, time.Now().UTC())
}

// CreateProjectAt is CreateProject with an explicit creation time, for
// tests that assert ordering.
func (f *Fixtures) CreateProjectAt(ctx context.Context, title, category string, ownerID primitive.ObjectID, createdAt time.Time) models.Project {
	f.t.Helper()

	project := models.Project{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: "Test project description",
		Image:       "https://cdn.example.com/shot.png",
		LiveSiteURL: "https://example.com",
		GithubURL:   "https://github.com/example/repo",
		Category:    category,
		CreatedBy:   ownerID,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}

	if _, err := f.db.Collection("projects").InsertOne(ctx, project); err != nil {
		f.t.Fatalf("failed to create test project: %v", err)
	}
	if _, err := f.db.Collection("users").UpdateByID(ctx, ownerID, bson.M{
		"$push": bson.M{"projects": project.ID},
	}); err != nil {
		f.t.Fatalf("failed to append project to owner: %v", err)
	}

	return project
}
