// Package middleware holds the HTTP middleware shared by every handler.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"carepath/pkg/requestcontext"
)

// actorHeader names the caller identity forwarded by the API gateway.
// Audit stamps fall back to "anonymous" when absent.
const actorHeader = "X-Carepath-Actor"

// RequestContext pins the request arrival time and the acting identity on
// the context so every audit stamp within one request agrees on both.
func RequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())

		actor := r.Header.Get(actorHeader)
		if actor == "" {
			actor = "anonymous"
		}
		ctx = requestcontext.WithActor(ctx, actor)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestLogger logs one line per request with method, path, status, and
// duration.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.InfoContext(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
