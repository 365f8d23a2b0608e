package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"gridadmin/config"
	"gridadmin/services"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// newTestSessions builds a session store over the embedded grid definitions.
func newTestSessions(t *testing.T) *SessionStore {
	t.Helper()
	return newTestSessionsWith(t, "")
}

// newTestSessionsWith merges override YAML over the embedded grid
// definitions before building the store.
func newTestSessionsWith(t *testing.T, override string) *SessionStore {
	t.Helper()
	t.Setenv(config.EnvGridsFile, "")

	path := ""
	if override != "" {
		path = filepath.Join(t.TempDir(), "grids.yaml")
		if err := os.WriteFile(path, []byte(override), 0o644); err != nil {
			t.Fatalf("failed to write grid override: %v", err)
		}
	}
	settings, err := config.Load(path)
	if err != nil {
		t.Fatalf("failed to load grid config: %v", err)
	}
	reg, err := services.NewGridRegistry(settings)
	if err != nil {
		t.Fatalf("failed to build grid registry: %v", err)
	}
	return NewSessionStore(reg)
}

// gridCall describes one request against a grid handler.
type gridCall struct {
	method string
	target string
	form   url.Values
	path   map[string]string
	htmx   bool
}

// serve runs handler for call and returns the recorded response.
func serve(t *testing.T, app *pocketbase.PocketBase, handler func(*core.RequestEvent) error, call gridCall) *httptest.ResponseRecorder {
	t.Helper()

	method := call.method
	if method == "" {
		method = http.MethodGet
	}
	var req *http.Request
	if call.form != nil {
		req = httptest.NewRequest(method, call.target, strings.NewReader(call.form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, call.target, nil)
	}
	for k, v := range call.path {
		req.SetPathValue(k, v)
	}
	if call.htmx {
		req.Header.Set("HX-Request", "true")
	}

	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}
