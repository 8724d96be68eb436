package logout

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/devshowcase/internal/app/system/auth"
	"go.uber.org/zap"
)

func TestServeLogout(t *testing.T) {
	sm, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "devshowcase-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	h := NewHandler(sm, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()

	h.ServeLogout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"user":null`) {
		t.Errorf("expected null user body, got %s", rec.Body.String())
	}

	// The session cookie must be expired
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "devshowcase-session" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected session cookie to be cleared")
	}
}
