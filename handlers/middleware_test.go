package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase/core"
)

func TestGetClientID_FromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), ClientIDKey, "client-1"))

	if got := GetClientID(req); got != "client-1" {
		t.Errorf("expected client-1, got %q", got)
	}
}

func TestGetClientID_Fallbacks(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetClientID(req); got != anonymousClient {
		t.Errorf("expected %q without cookie, got %q", anonymousClient, got)
	}

	req.AddCookie(&http.Cookie{Name: ClientCookie, Value: "from-cookie"})
	if got := GetClientID(req); got != "from-cookie" {
		t.Errorf("expected cookie value, got %q", got)
	}
}

// runMiddleware calls ClientMiddleware and returns the client id left in
// the request context for downstream handlers.
func runMiddleware(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, string) {
	t.Helper()

	rec := httptest.NewRecorder()
	e := &core.RequestEvent{}
	e.Request = req
	e.Response = rec

	if err := ClientMiddleware()(e); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	seen, _ := e.Request.Context().Value(ClientIDKey).(string)
	return rec, seen
}

func TestClientMiddleware_IssuesCookie(t *testing.T) {
	rec, seen := runMiddleware(t, httptest.NewRequest(http.MethodGet, "/grids", nil))

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected a uuid client id, got %q", seen)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != ClientCookie || cookies[0].Value != seen {
		t.Errorf("expected %s cookie with %q, got %v", ClientCookie, seen, cookies)
	}
}

func TestClientMiddleware_KeepsValidCookie(t *testing.T) {
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/grids", nil)
	req.AddCookie(&http.Cookie{Name: ClientCookie, Value: id})

	rec, seen := runMiddleware(t, req)
	if seen != id {
		t.Errorf("expected client %q, got %q", id, seen)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("expected no new cookie for a valid client id")
	}
}

func TestClientMiddleware_ReplacesMalformedCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/grids", nil)
	req.AddCookie(&http.Cookie{Name: ClientCookie, Value: "not-a-uuid"})

	_, seen := runMiddleware(t, req)
	if seen == "not-a-uuid" {
		t.Error("expected malformed client id to be replaced")
	}
}
