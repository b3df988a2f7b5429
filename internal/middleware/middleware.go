package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cradoe/safetrain/internal/context"
	"github.com/cradoe/safetrain/internal/errHandler"
	"github.com/cradoe/safetrain/internal/metrics"
	"github.com/cradoe/safetrain/internal/response"
	"github.com/cradoe/safetrain/internal/session"

	"github.com/tomasen/realip"
)

type Middleware struct {
	errHandler *errHandler.ErrorHandler
	logger     *slog.Logger
	sessions   *session.Manager
}

func New(errHandler *errHandler.ErrorHandler, logger *slog.Logger, sessions *session.Manager) *Middleware {
	return &Middleware{
		errHandler: errHandler,
		logger:     logger,
		sessions:   sessions,
	}
}

func (mid *Middleware) RecoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			err := recover()
			if err != nil {
				mid.errHandler.ServerError(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// LogAccess writes one access log line per request and records it in the HTTP metrics.
// The route label is the mux pattern reported by RecordRoute.
func (mid *Middleware) LogAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		r = context.ContextWithRoute(r)

		mw := response.NewMetricsResponseWriter(w)
		next.ServeHTTP(mw, r)

		var (
			ip     = realip.FromRequest(r)
			method = r.Method
			url    = r.URL.String()
			proto  = r.Proto
		)

		metrics.ObserveRequest(method, context.ContextGetRoute(r), mw.StatusCode, time.Since(start))

		userAttrs := slog.Group("user", "ip", ip)
		requestAttrs := slog.Group("request", "method", method, "url", url, "proto", proto)
		responseAttrs := slog.Group("response", "status", mw.StatusCode, "size", mw.BytesCount)

		mid.logger.Info("access", userAttrs, requestAttrs, responseAttrs)
	})
}

// Authenticate resolves the session cookie, if any, and stores the session in the request context.
// Requests without a usable session continue anonymously; a bad or stale cookie is cleared.
func (mid *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Cookie")

		cookie, err := r.Cookie(mid.sessions.CookieName())
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		sess, found, err := mid.sessions.Resolve(r.Context(), cookie.Value)
		switch {
		case errors.Is(err, session.ErrInvalidToken):
			http.SetCookie(w, mid.sessions.ExpiredCookie())
		case err != nil:
			mid.errHandler.ServerError(w, r, err)
			return
		case !found:
			http.SetCookie(w, mid.sessions.ExpiredCookie())
		default:
			r = context.ContextSetSession(r, sess, cookie.Value)
		}

		next.ServeHTTP(w, r)
	})
}

// RecordRoute serves mux and reports the matched pattern back to LogAccess. The mux sets r.Pattern on
// the request it receives, which may be a copy of the one LogAccess holds.
// Unmatched requests get the JSON 404 or 405 instead of the mux's plain text replies.
func (mid *Middleware) RecordRoute(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, pattern := mux.Handler(r)
		if pattern == "" {
			sw := &statusWriter{header: w.Header()}
			h.ServeHTTP(sw, r)

			if sw.status == http.StatusMethodNotAllowed {
				mid.errHandler.MethodNotAllowed(w, r)
				return
			}

			mid.errHandler.NotFound(w, r)
			return
		}

		mux.ServeHTTP(w, r)
		context.ContextSetRoute(r, r.Pattern)
	})
}

// statusWriter records the status of the mux's fallback handlers and discards their body.
// Headers such as Allow go straight to the real response.
type statusWriter struct {
	header http.Header
	status int
}

func (sw *statusWriter) Header() http.Header { return sw.header }

func (sw *statusWriter) Write(b []byte) (int, error) { return len(b), nil }

func (sw *statusWriter) WriteHeader(status int) { sw.status = status }
