package bootstrap

import (
	"testing"

	"github.com/dalemusser/devshowcase/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func TestEnsureSchema(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoClient: db.Client(), MongoDatabase: db}

	if err := EnsureSchema(ctx, nil, AppConfig{}, deps, zap.NewNop()); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}

	// The unique email index enforces get-or-create idempotency
	cur, err := db.Collection("users").Indexes().List(ctx)
	if err != nil {
		t.Fatalf("list indexes failed: %v", err)
	}
	defer cur.Close(ctx)

	found := false
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			t.Fatalf("decode index: %v", err)
		}
		if idx["name"] == "uniq_email" {
			found = true
		}
	}
	if !found {
		t.Error("expected uniq_email index on users")
	}

	// Second run must be a no-op, not an error
	if err := EnsureSchema(ctx, nil, AppConfig{}, deps, zap.NewNop()); err != nil {
		t.Fatalf("second EnsureSchema failed: %v", err)
	}
}
