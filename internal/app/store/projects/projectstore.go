// internal/app/store/projects/projectstore.go
package projectstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/devshowcase/internal/app/system/categories"
	"github.com/dalemusser/devshowcase/internal/app/system/normalize"
	"github.com/dalemusser/devshowcase/internal/app/system/txn"
	"github.com/dalemusser/devshowcase/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ListPageSize caps the category listing. The list endpoint always returns
// at most this many projects, newest first; there is no way to page past
// them (the envelope's cursors are a stub).
const ListPageSize = 8

// DefaultOwnerLimit caps a user's project list when the caller does not ask
// for a specific count.
const DefaultOwnerLimit = 4

var (
	// ErrNotFound is returned when no project matches the given identifier.
	ErrNotFound = errors.New("project not found")
	// ErrOwnerNotFound is returned when the referenced owning user does not exist.
	ErrOwnerNotFound = errors.New("owner not found")

	errTitleRequired       = errors.New("title is required")
	errDescriptionRequired = errors.New("description is required")
	errImageRequired       = errors.New("image is required")
	errCategoryRequired    = errors.New("category is required")
	errBadLiveSiteURL      = errors.New("liveSiteUrl must be a valid http(s) URL")
	errBadGithubURL        = errors.New("githubUrl must be a valid http(s) URL")
)

type Store struct {
	db       *mongo.Database
	projects *mongo.Collection
	users    *mongo.Collection
	log      *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{
		db:       db,
		projects: db.Collection("projects"),
		users:    db.Collection("users"),
		log:      logger,
	}
}

// Create inserts a new project for the given owner and appends its ID to
// the owner's project list. The owner must exist at creation time; this is
// the only referential check the system performs.
//
// Both writes run through txn.Run, so on a replica set a failed append
// rolls back the insert instead of leaving an orphaned project.
//
// The returned owner reflects the appended list.
func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, models.User, error) {
	if err := validate(&p); err != nil {
		return models.Project{}, models.User{}, err
	}

	var owner models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": p.CreatedBy}).Decode(&owner); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Project{}, models.User{}, ErrOwnerNotFound
		}
		return models.Project{}, models.User{}, err
	}

	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now

	err := txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		if _, err := s.projects.InsertOne(ctx, p); err != nil {
			return err
		}
		_, err := s.users.UpdateByID(ctx, owner.ID, bson.M{
			"$push": bson.M{"projects": p.ID},
			"$set":  bson.M{"updated_at": now},
		})
		return err
	})
	if err != nil {
		return models.Project{}, models.User{}, err
	}

	owner.Projects = append(owner.Projects, p.ID)
	owner.UpdatedAt = now
	return p, owner, nil
}

// GetByID returns a project with its owner resolved. A dangling owner
// reference is tolerated on read: the project comes back with a nil owner
// rather than an error.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Project, *models.User, error) {
	var p models.Project
	if err := s.projects.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Project{}, nil, ErrNotFound
		}
		return models.Project{}, nil, err
	}
	owner, err := s.resolveOwner(ctx, p.CreatedBy)
	if err != nil {
		return models.Project{}, nil, err
	}
	return p, owner, nil
}

// List returns up to ListPageSize projects sorted by creation time
// descending, optionally filtered by exact category match. The sentinel
// "All" (or an empty string) lists across categories.
//
// Owners are batch-resolved in a second query; the returned map is keyed by
// owner hex ID.
func (s *Store) List(ctx context.Context, category string) ([]models.Project, map[string]models.User, error) {
	filter := bson.M{}
	if categories.IsFilter(category) {
		filter["category"] = category
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(ListPageSize))

	cur, err := s.projects.Find(ctx, filter, opts)
	if err != nil {
		return nil, nil, err
	}
	defer cur.Close(ctx)

	var projects []models.Project
	if err := cur.All(ctx, &projects); err != nil {
		return nil, nil, err
	}

	owners, err := s.resolveOwners(ctx, projects)
	if err != nil {
		return nil, nil, err
	}
	return projects, owners, nil
}

// ByOwner returns the user and their projects sorted by creation time
// descending, capped at limit (DefaultOwnerLimit when limit <= 0).
//
// The user's denormalized project list is the source of truth: projects are
// fetched by the IDs it holds, not by a reverse created_by query.
func (s *Store) ByOwner(ctx context.Context, ownerID primitive.ObjectID, limit int) (models.User, []models.Project, error) {
	if limit <= 0 {
		limit = DefaultOwnerLimit
	}

	var owner models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": ownerID}).Decode(&owner); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.User{}, nil, ErrOwnerNotFound
		}
		return models.User{}, nil, err
	}

	if len(owner.Projects) == 0 {
		return owner, []models.Project{}, nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := s.projects.Find(ctx, bson.M{"_id": bson.M{"$in": owner.Projects}}, opts)
	if err != nil {
		return models.User{}, nil, err
	}
	defer cur.Close(ctx)

	projects := []models.Project{}
	if err := cur.All(ctx, &projects); err != nil {
		return models.User{}, nil, err
	}
	return owner, projects, nil
}

// Update replaces the mutable fields of a project in place and returns the
// post-update document with its owner resolved. Returns ErrNotFound if the
// identifier does not resolve.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.Project) (models.Project, *models.User, error) {
	if err := validate(&mut); err != nil {
		return models.Project{}, nil, err
	}

	set := bson.M{
		"title":         mut.Title,
		"description":   mut.Description,
		"image":         mut.Image,
		"live_site_url": mut.LiveSiteURL,
		"github_url":    mut.GithubURL,
		"category":      mut.Category,
		"updated_at":    time.Now().UTC(),
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p models.Project
	err := s.projects.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Project{}, nil, ErrNotFound
		}
		return models.Project{}, nil, err
	}

	owner, err := s.resolveOwner(ctx, p.CreatedBy)
	if err != nil {
		return models.Project{}, nil, err
	}
	return p, owner, nil
}

// Delete removes the project's ID from its owner's project list and deletes
// the document, returning the deleted ID. Returns ErrNotFound if the
// identifier does not resolve.
//
// Like Create, the paired mutations run through txn.Run so a crash between
// them cannot leave a dangling reference on servers that support
// transactions.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (primitive.ObjectID, error) {
	var p models.Project
	if err := s.projects.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return primitive.NilObjectID, ErrNotFound
		}
		return primitive.NilObjectID, err
	}

	err := txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		if _, err := s.users.UpdateByID(ctx, p.CreatedBy, bson.M{
			"$pull": bson.M{"projects": id},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		}); err != nil {
			return err
		}
		_, err := s.projects.DeleteOne(ctx, bson.M{"_id": id})
		return err
	})
	if err != nil {
		return primitive.NilObjectID, err
	}
	return id, nil
}

// IsValidation reports whether err is a field validation failure rather
// than a storage error, so handlers can answer 400 instead of 500.
func IsValidation(err error) bool {
	for _, e := range []error{
		errTitleRequired,
		errDescriptionRequired,
		errImageRequired,
		errCategoryRequired,
		errBadLiveSiteURL,
		errBadGithubURL,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// resolveOwner fetches a single owner, tolerating a dangling reference.
func (s *Store) resolveOwner(ctx context.Context, ownerID primitive.ObjectID) (*models.User, error) {
	var owner models.User
	err := s.users.FindOne(ctx, bson.M{"_id": ownerID}).Decode(&owner)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &owner, nil
}

// resolveOwners batch-fetches the distinct owners of the given projects.
func (s *Store) resolveOwners(ctx context.Context, projects []models.Project) (map[string]models.User, error) {
	owners := make(map[string]models.User)
	if len(projects) == 0 {
		return owners, nil
	}

	idSet := make(map[primitive.ObjectID]struct{}, len(projects))
	for _, p := range projects {
		idSet[p.CreatedBy] = struct{}{}
	}
	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	cur, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		owners[u.ID.Hex()] = u
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return owners, nil
}

// validate normalizes and checks the submitted fields. The category set is
// advisory, so any non-empty category string passes.
func validate(p *models.Project) error {
	p.Title = strings.TrimSpace(p.Title)
	p.Category = strings.TrimSpace(p.Category)
	p.Image = normalize.URL(p.Image)
	p.LiveSiteURL = normalize.URL(p.LiveSiteURL)
	p.GithubURL = normalize.URL(p.GithubURL)

	if p.Title == "" {
		return errTitleRequired
	}
	if strings.TrimSpace(p.Description) == "" {
		return errDescriptionRequired
	}
	if p.Image == "" {
		return errImageRequired
	}
	if p.Category == "" {
		return errCategoryRequired
	}
	if p.LiveSiteURL != "" && !urlutil.IsValidAbsHTTPURL(p.LiveSiteURL) {
		return errBadLiveSiteURL
	}
	if p.GithubURL != "" && !urlutil.IsValidAbsHTTPURL(p.GithubURL) {
		return errBadGithubURL
	}
	return nil
}
