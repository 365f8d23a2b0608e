package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase/core"
)

type contextKey string

const ClientIDKey contextKey = "clientID"

// ClientCookie names the cookie that identifies a browser across requests.
const ClientCookie = "gridadmin_client"

// anonymousClient is used when a request carries no client id, e.g. in tests
// that call handlers without the middleware.
const anonymousClient = "anonymous"

// GetClientID returns the client id of the request: the context value set by
// ClientMiddleware, else the cookie, else a shared anonymous id.
func GetClientID(r *http.Request) string {
	if val, ok := r.Context().Value(ClientIDKey).(string); ok && val != "" {
		return val
	}
	if cookie, err := r.Cookie(ClientCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return anonymousClient
}

// ClientMiddleware reads the client cookie, issuing a new random id when the
// cookie is missing or malformed, and stores the id in the request context.
// Grid sessions and persisted page state are keyed by this id.
func ClientMiddleware() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var clientID string
		if cookie, err := e.Request.Cookie(ClientCookie); err == nil {
			if id, err := uuid.Parse(cookie.Value); err == nil {
				clientID = id.String()
			}
		}
		if clientID == "" {
			clientID = uuid.NewString()
			http.SetCookie(e.Response, &http.Cookie{
				Name:     ClientCookie,
				Value:    clientID,
				Path:     "/",
				MaxAge:   365 * 24 * 60 * 60,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(e.Request.Context(), ClientIDKey, clientID)
		e.Request = e.Request.WithContext(ctx)

		return e.Next()
	}
}
