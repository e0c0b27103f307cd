package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
	"github.com/sirupsen/logrus"
	"github.com/tomasen/realip"

	"github.com/Decentr-net/agora/internal/entities"
	"github.com/Decentr-net/agora/internal/metrics"
	"github.com/Decentr-net/agora/internal/token"
)

type actorCtxKey struct{}

// loggerMiddleware logs every request and records its metrics.
func loggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		d := time.Since(start)
		metrics.RecordAPIRequest(r.Method, route, status, d)

		log.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"ip":         realip.FromRequest(r),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     status,
			"duration":   d,
		}).Debug("request served")
	})
}

// bodyLimiterMiddleware restricts request body to n bytes.
func bodyLimiterMiddleware(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, n)
			next.ServeHTTP(w, r)
		})
	}
}

// timeoutMiddleware cancels request context after timeout.
func timeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// rateLimitMiddleware limits requests per ip in window.
func rateLimitMiddleware(limit int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(limit, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			metrics.APIRateLimitHits.WithLabelValues(route).Inc()

			writeError(w, http.StatusTooManyRequests, "too many requests")
		}),
	)
}

// authMiddleware puts the bearer token owner into request context.
// Requests without Authorization header are served as anonymous.
func authMiddleware(tokens *token.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" {
				next.ServeHTTP(w, r)
				return
			}

			const prefix = "Bearer "
			if !strings.HasPrefix(h, prefix) {
				writeError(w, http.StatusUnauthorized, "invalid authorization header")
				return
			}

			claims, err := tokens.Parse(strings.TrimPrefix(h, prefix), token.AccessKind)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			actor, err := claims.Actor()
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorCtxKey{}, actor)))
		})
	}
}

// requireAuth rejects anonymous requests.
func requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := actorFromContext(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// actorFromContext returns the authenticated caller. Anonymous caller is a zero Actor.
func actorFromContext(ctx context.Context) (entities.Actor, bool) {
	a, ok := ctx.Value(actorCtxKey{}).(entities.Actor)
	return a, ok
}

func getActor(r *http.Request) entities.Actor {
	a, _ := actorFromContext(r.Context())
	return a
}
