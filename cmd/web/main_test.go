package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tomz197/centerfire/internal/config"
)

func TestLandingPage(t *testing.T) {
	h := newHandler(config.Settings{SSHDisplayHost: "play.example.com", SSHPort: "2222"}, log.New(io.Discard))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "ssh -t -p 2222 play@play.example.com") {
		t.Errorf("page does not show the ssh command:\n%s", body)
	}
}

func TestUnknownPathIsNotFound(t *testing.T) {
	h := newHandler(config.Settings{}, log.New(io.Discard))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
