package httpjson

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, 201, map[string]string{"deletedId": "abc"})

	if rec.Code != 201 {
		t.Errorf("status: got %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `"deletedId":"abc"`) {
		t.Errorf("body: got %q", rec.Body.String())
	}
}

func TestDecode_UnknownField(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"T","bogus":1}`))
	var dst struct {
		Title string `json:"title"`
	}
	if err := Decode(req, &dst); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestDecode_TrailingDocument(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"T"}{"title":"U"}`))
	var dst struct {
		Title string `json:"title"`
	}
	if err := Decode(req, &dst); err == nil {
		t.Error("expected error for second JSON document")
	}
}

func TestDecode_OK(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"T"}`))
	var dst struct {
		Title string `json:"title"`
	}
	if err := Decode(req, &dst); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if dst.Title != "T" {
		t.Errorf("title: got %q, want %q", dst.Title, "T")
	}
}
