package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/5w1tchy/password-meter/internal/api/handlers"
)

func TestHealth(t *testing.T) {
	h := handlers.Health(map[string]handlers.Pinger{
		"postgres": handlers.PingFunc(func(context.Context) error { return nil }),
		"redis":    handlers.PingFunc(func(context.Context) error { return errors.New("refused") }),
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "degraded" || body.Components["redis"] != "down" || body.Components["postgres"] != "up" {
		t.Fatalf("body = %+v", body)
	}
}

func TestHealth_NoDeps(t *testing.T) {
	rec := httptest.NewRecorder()
	handlers.Health(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if got := rec.Body.String(); got != "{\"components\":{},\"status\":\"ok\"}\n" {
		t.Fatalf("body = %s", got)
	}
}

func TestRootHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	handlers.RootHandler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handlers.RootHandler(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}
