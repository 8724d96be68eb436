// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/devshowcase/internal/app/system/normalize"
	"github.com/dalemusser/devshowcase/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when no user matches the given identifier.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")

	errEmailRequired = errors.New("email is required")
	errNameRequired  = errors.New("name is required")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByID loads a user by ObjectID. Returns ErrNotFound if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns ErrNotFound if absent.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

// Create inserts a new user after normalizing fields. The projects list
// starts empty; ownership is only ever added through project creation.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Email = normalize.Email(u.Email)
	u.Name = normalize.Name(u.Name)
	u.AvatarURL = normalize.URL(u.AvatarURL)
	if u.Projects == nil {
		u.Projects = []primitive.ObjectID{}
	}

	if u.Email == "" {
		return models.User{}, errEmailRequired
	}
	if u.Name == "" {
		return models.User{}, errNameRequired
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// GetOrCreateByEmail returns the user with the given email, creating one
// with the supplied profile fields if none exists. Called during the OAuth
// callback; calling it twice with the same email never creates a second
// record (the unique email index backs this up under concurrent sign-ins).
func (s *Store) GetOrCreateByEmail(ctx context.Context, email, name, avatarURL string) (models.User, bool, error) {
	u, err := s.GetByEmail(ctx, email)
	if err == nil {
		return u, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return models.User{}, false, err
	}

	created, err := s.Create(ctx, models.User{
		Email:     email,
		Name:      name,
		AvatarURL: avatarURL,
	})
	if err == nil {
		return created, true, nil
	}
	if errors.Is(err, ErrDuplicateEmail) {
		// Lost a race with a concurrent first sign-in; the record exists now.
		u, err = s.GetByEmail(ctx, email)
		return u, false, err
	}
	return models.User{}, false, err
}

// UpdateProfile sets the optional profile fields a user can edit about
// themselves. Empty strings clear the field.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, description, githubURL, linkedinURL string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"description":  strings.TrimSpace(description),
		"github_url":   normalize.URL(githubURL),
		"linkedin_url": normalize.URL(linkedinURL),
		"updated_at":   time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
