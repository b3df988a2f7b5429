package context

import (
	"context"
	"net/http"

	"github.com/cradoe/safetrain/internal/session"
)

type contextKey string

const (
	sessionContextKey = contextKey("session")
	tokenContextKey   = contextKey("sessionToken")
)

func ContextSetSession(r *http.Request, sess *session.Session, token string) *http.Request {
	ctx := context.WithValue(r.Context(), sessionContextKey, sess)
	ctx = context.WithValue(ctx, tokenContextKey, token)
	return r.WithContext(ctx)
}

func ContextGetSession(r *http.Request) *session.Session {
	sess, ok := r.Context().Value(sessionContextKey).(*session.Session)
	if !ok {
		return nil
	}

	return sess
}

func ContextGetSessionToken(r *http.Request) string {
	token, ok := r.Context().Value(tokenContextKey).(string)
	if !ok {
		return ""
	}

	return token
}

type routeHolder struct {
	pattern string
}

const routeContextKey = contextKey("route")

// ContextWithRoute prepares r to carry the matched route pattern back out of the router.
func ContextWithRoute(r *http.Request) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), routeContextKey, &routeHolder{}))
}

// ContextSetRoute records pattern on the holder installed by ContextWithRoute, if any.
func ContextSetRoute(r *http.Request, pattern string) {
	if holder, ok := r.Context().Value(routeContextKey).(*routeHolder); ok {
		holder.pattern = pattern
	}
}

func ContextGetRoute(r *http.Request) string {
	holder, ok := r.Context().Value(routeContextKey).(*routeHolder)
	if !ok {
		return ""
	}

	return holder.pattern
}
