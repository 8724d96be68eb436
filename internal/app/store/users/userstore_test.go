package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/dalemusser/devshowcase/internal/app/store/users"
	"github.com/dalemusser/devshowcase/internal/app/system/indexes"
	"github.com/dalemusser/devshowcase/internal/domain/models"
	"github.com/dalemusser/devshowcase/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		Email:     "a@x.com",
		Name:      "A",
		AvatarURL: "https://avatars.example.com/a.png",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Projects == nil || len(created.Projects) != 0 {
		t.Error("expected empty (non-nil) projects list")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_Create_NormalizesEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{Email: "  A@X.Com ", Name: "A", AvatarURL: "u"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Email != "a@x.com" {
		t.Errorf("email: got %q, want %q", created.Email, "a@x.com")
	}

	found, err := store.GetByEmail(ctx, "A@x.COM")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID: got %v, want %v", found.ID, created.ID)
	}
}

func TestStore_Create_MissingFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.User{Name: "A"}); err == nil {
		t.Error("expected error for missing email")
	}
	if _, err := store.Create(ctx, models.User{Email: "a@x.com"}); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	if _, err := store.Create(ctx, models.User{Email: "dup@x.com", Name: "One", AvatarURL: "u"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err := store.Create(ctx, models.User{Email: "dup@x.com", Name: "Two", AvatarURL: "u"})
	if !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByID(ctx, primitive.NewObjectID())
	if !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_GetOrCreateByEmail_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, created, err := store.GetOrCreateByEmail(ctx, "a@x.com", "A", "https://avatars.example.com/a.png")
	if err != nil {
		t.Fatalf("first GetOrCreateByEmail failed: %v", err)
	}
	if !created {
		t.Error("expected first call to create")
	}

	second, created, err := store.GetOrCreateByEmail(ctx, "a@x.com", "Different Name", "other")
	if err != nil {
		t.Fatalf("second GetOrCreateByEmail failed: %v", err)
	}
	if created {
		t.Error("expected second call to look up, not create")
	}
	if second.ID != first.ID {
		t.Errorf("ID changed between calls: %v vs %v", second.ID, first.ID)
	}
	// Existing profile is not overwritten by later sign-ins
	if second.Name != "A" {
		t.Errorf("name: got %q, want %q", second.Name, "A")
	}
}

func TestStore_UpdateProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "A", "a@x.com", "u")

	err := store.UpdateProfile(ctx, user.ID, "Builds things", "https://github.com/a", "https://linkedin.com/in/a")
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	found, err := store.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found.Description != "Builds things" {
		t.Errorf("description: got %q", found.Description)
	}
	if found.GithubURL != "https://github.com/a" {
		t.Errorf("githubUrl: got %q", found.GithubURL)
	}
}

func TestStore_UpdateProfile_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.UpdateProfile(ctx, primitive.NewObjectID(), "d", "", "")
	if !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
