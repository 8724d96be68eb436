package authgoogle

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dalemusser/devshowcase/internal/app/system/auth"
	"go.uber.org/zap"
)

const testKey = "0123456789abcdef0123456789abcdef"

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	sm, err := auth.NewSessionManager(testKey, "devshowcase_session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return NewHandler(nil, sm, "client-id", "client-secret", "http://localhost:8080", testKey, false, zap.NewNop())
}

func TestServeLogin(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/google", nil)
	rec := httptest.NewRecorder()

	h.ServeLogin(rec, req)

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusTemporaryRedirect)
	}

	loc, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse redirect: %v", err)
	}
	if loc.Host != "accounts.google.com" {
		t.Errorf("redirect host: got %q", loc.Host)
	}
	state := loc.Query().Get("state")
	if state == "" {
		t.Error("expected state in redirect URL")
	}

	// State must round-trip through the signed cookie
	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == stateCookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("expected state cookie to be set")
	}
	var payload statePayload
	if err := h.codec.Decode(stateCookieName, cookie.Value, &payload); err != nil {
		t.Fatalf("decode state cookie: %v", err)
	}
	if payload.State != state {
		t.Errorf("cookie state %q does not match redirect state %q", payload.State, state)
	}
}

func TestServeLogin_NotConfigured(t *testing.T) {
	h := newTestHandler(t)
	h.ClientID = ""

	req := httptest.NewRequest(http.MethodGet, "/auth/google", nil)
	rec := httptest.NewRecorder()

	h.ServeLogin(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if !strings.Contains(rec.Header().Get("Location"), "google_not_configured") {
		t.Errorf("redirect: got %q", rec.Header().Get("Location"))
	}
}

func TestServeCallback_MissingState(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=abc", nil)
	rec := httptest.NewRecorder()

	h.ServeCallback(rec, req)

	if !strings.Contains(rec.Header().Get("Location"), "invalid_state") {
		t.Errorf("redirect: got %q", rec.Header().Get("Location"))
	}
}

func TestServeCallback_StateMismatch(t *testing.T) {
	h := newTestHandler(t)

	encoded, err := h.codec.Encode(stateCookieName, statePayload{State: "expected"})
	if err != nil {
		t.Fatalf("encode state cookie: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=forged&code=abc", nil)
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: encoded})
	rec := httptest.NewRecorder()

	h.ServeCallback(rec, req)

	if !strings.Contains(rec.Header().Get("Location"), "invalid_state") {
		t.Errorf("redirect: got %q", rec.Header().Get("Location"))
	}
}

func TestServeCallback_ProviderError(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?error=access_denied", nil)
	rec := httptest.NewRecorder()

	h.ServeCallback(rec, req)

	if !strings.Contains(rec.Header().Get("Location"), "google_denied") {
		t.Errorf("redirect: got %q", rec.Header().Get("Location"))
	}
}
