package users

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	projectstore "github.com/dalemusser/devshowcase/internal/app/store/projects"
	userstore "github.com/dalemusser/devshowcase/internal/app/store/users"
	"github.com/dalemusser/devshowcase/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := NewHandler(userstore.New(db), projectstore.New(db, zap.NewNop()), zap.NewNop())
	return h, testutil.NewFixtures(t, db)
}

func TestServeGet(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "A", "a@x.com", "https://avatars.example.com/a.png")

	req := testutil.NewRequest(http.MethodGet, "/api/users/"+user.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", user.ID.Hex())
	rec := httptest.NewRecorder()

	h.ServeGet(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d; body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		User struct {
			ID        string `json:"id"`
			Email     string `json:"email"`
			AvatarURL string `json:"avatarUrl"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.User.ID != user.ID.Hex() {
		t.Errorf("id: got %q, want %q", resp.User.ID, user.ID.Hex())
	}
	if resp.User.AvatarURL != "https://avatars.example.com/a.png" {
		t.Errorf("avatarUrl: got %q", resp.User.AvatarURL)
	}
}

func TestServeGet_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewRequest(http.MethodGet, "/api/users/x", nil)
	req = testutil.WithChiURLParam(req, "id", primitive.NewObjectID().Hex())
	rec := httptest.NewRecorder()

	h.ServeGet(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
	if !strings.Contains(rec.Body.String(), `"user":null`) {
		t.Errorf("expected null user body, got %s", rec.Body.String())
	}
}

func TestServeProjects_SingleProject(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "A", "a@x.com", "u")
	project := fixtures.CreateProject(ctx, "T", "Frontend", user.ID)

	req := testutil.NewRequest(http.MethodGet, "/api/users/"+user.ID.Hex()+"/projects", nil)
	req = testutil.WithChiURLParam(req, "id", user.ID.Hex())
	rec := httptest.NewRecorder()

	h.ServeProjects(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d; body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		User struct {
			ID       string `json:"id"`
			Projects struct {
				Edges []struct {
					Node struct {
						ID       string `json:"id"`
						Category string `json:"category"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"projects"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.User.ID != user.ID.Hex() {
		t.Errorf("user id: got %q, want %q", resp.User.ID, user.ID.Hex())
	}
	if len(resp.User.Projects.Edges) != 1 {
		t.Fatalf("edges: got %d, want exactly 1", len(resp.User.Projects.Edges))
	}
	if resp.User.Projects.Edges[0].Node.ID != project.ID.Hex() {
		t.Errorf("node id: got %q, want %q", resp.User.Projects.Edges[0].Node.ID, project.ID.Hex())
	}
}

func TestServeProjects_LastParam(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "A", "a@x.com", "u")
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 6; i++ {
		fixtures.CreateProjectAt(ctx, "P", "Frontend", user.ID, base.Add(time.Duration(i)*time.Minute))
	}

	req := testutil.NewRequest(http.MethodGet, "/api/users/"+user.ID.Hex()+"/projects?last=2", nil)
	req = testutil.WithChiURLParam(req, "id", user.ID.Hex())
	rec := httptest.NewRecorder()

	h.ServeProjects(rec, req)

	var resp struct {
		User struct {
			Projects struct {
				Edges []json.RawMessage `json:"edges"`
			} `json:"projects"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.User.Projects.Edges) != 2 {
		t.Errorf("edges: got %d, want 2", len(resp.User.Projects.Edges))
	}
}

func TestServeProjects_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewRequest(http.MethodGet, "/api/users/x/projects", nil)
	req = testutil.WithChiURLParam(req, "id", primitive.NewObjectID().Hex())
	rec := httptest.NewRecorder()

	h.ServeProjects(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestServeUpdateProfile(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "A", "a@x.com", "u")

	body := `{"description":"Builds things","githubUrl":"https://github.com/a","linkedinUrl":"https://linkedin.com/in/a"}`
	req := testutil.NewRequest(http.MethodPut, "/api/users/"+user.ID.Hex(), strings.NewReader(body))
	req = testutil.WithChiURLParam(req, "id", user.ID.Hex())
	req = testutil.WithUser(req, user)
	rec := httptest.NewRecorder()

	h.ServeUpdateProfile(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d; body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"description":"Builds things"`) {
		t.Errorf("expected updated description in body, got %s", rec.Body.String())
	}
}

func TestServeUpdateProfile_OtherUser(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	target := fixtures.CreateUser(ctx, "A", "a@x.com", "u")
	caller := fixtures.CreateUser(ctx, "B", "b@x.com", "u")

	req := testutil.NewRequest(http.MethodPut, "/api/users/"+target.ID.Hex(), strings.NewReader(`{"description":"x"}`))
	req = testutil.WithChiURLParam(req, "id", target.ID.Hex())
	req = testutil.WithUser(req, caller)
	rec := httptest.NewRecorder()

	h.ServeUpdateProfile(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestServeSession_SignedOut(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewRequest(http.MethodGet, "/api/session", nil)
	rec := httptest.NewRecorder()

	h.ServeSession(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"user":null`) {
		t.Errorf("expected null user, got %s", rec.Body.String())
	}
}

func TestServeSession_SignedIn(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "A", "a@x.com", "u")

	req := testutil.NewRequest(http.MethodGet, "/api/session", nil)
	req = testutil.WithUser(req, user)
	rec := httptest.NewRecorder()

	h.ServeSession(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d; body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), user.ID.Hex()) {
		t.Errorf("expected session user id in body, got %s", rec.Body.String())
	}
}
