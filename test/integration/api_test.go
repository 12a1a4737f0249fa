package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/settings-registry/internal/api"
	"github.com/eugenenazirov/settings-registry/internal/registry"
)

func newRouter(t *testing.T, reg *registry.Memory) http.Handler {
	t.Helper()

	logger := zaptest.NewLogger(t)
	handler := api.NewHandler(reg, api.WithHandlerLogger(logger))
	return api.NewRouter(handler, logger)
}

func performRequest(t *testing.T, handler http.Handler, method, target string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func settingValue(t *testing.T, handler http.Handler, key string) string {
	t.Helper()

	rec := performRequest(t, handler, http.MethodGet, "/api/settings/"+key, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 reading %s, got %d", key, rec.Code)
	}
	var body struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode setting: %v", err)
	}
	return body.Value
}

func TestIntegrationFlow(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ENVIRONMENT", "")

	reg := registry.New("https://meet.example.com")
	handler := newRouter(t, reg)

	rec := performRequest(t, handler, http.MethodGet, "/api/health", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from health, got %d", rec.Code)
	}

	if got := settingValue(t, handler, "LOG_LEVEL"); got != "debug" {
		t.Fatalf("expected environment override debug, got %q", got)
	}
	if got := settingValue(t, handler, "ENVIRONMENT"); got != "production" {
		t.Fatalf("expected default environment, got %q", got)
	}

	payload, _ := json.Marshal(map[string]string{"value": "warn"})
	rec = performRequest(t, handler, http.MethodPut, "/api/settings/LOG_LEVEL", payload, map[string]string{"Content-Type": "application/json"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from setting update, got %d", rec.Code)
	}

	if got := settingValue(t, handler, "LOG_LEVEL"); got != "warn" {
		t.Fatalf("expected updated level warn, got %q", got)
	}
	if got, _ := reg.Get("LOG_LEVEL"); got != "warn" {
		t.Fatalf("expected registry to reflect update, got %q", got)
	}

	rec = performRequest(t, handler, http.MethodGet, "/api/settings", nil, nil)
	var all struct {
		Settings map[string]string `json:"settings"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&all); err != nil {
		t.Fatalf("failed to decode settings: %v", err)
	}
	if all.Settings["SIDEPANEL_URL"] != "https://meet.example.com/sidepanel.html" {
		t.Fatalf("unexpected sidepanel url %q", all.Settings["SIDEPANEL_URL"])
	}

	rec = performRequest(t, handler, http.MethodGet, "/api/settings/UNKNOWN", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown key, got %d", rec.Code)
	}
}
