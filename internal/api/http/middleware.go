package http

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/jcamiloaa/experienciaas/internal/domain"
	"github.com/jcamiloaa/experienciaas/internal/logger"
	"github.com/jcamiloaa/experienciaas/internal/service"
)

type contextKey string

const userContextKey contextKey = "currentUser"

// currentUser returns the authenticated user, or nil for anonymous
// requests that passed through optionalAuth.
func currentUser(r *http.Request) *domain.User {
	user, _ := r.Context().Value(userContextKey).(*domain.User)
	return user
}

// requireAuth rejects requests without a valid access token. The user
// is loaded fresh from the database on every request, so suspensions
// and deactivations bite immediately rather than at token expiry.
func requireAuth(auth *service.AuthService, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		user, err := auth.CurrentUser(r.Context(), token)
		if err != nil {
			writeServiceError(w, err, nil)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	}
}

// optionalAuth attaches the user when a valid token is present and
// passes the request through anonymously otherwise. Tracking endpoints
// use it to attribute views without requiring login.
func optionalAuth(auth *service.AuthService, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := bearerToken(r); token != "" {
			if user, err := auth.CurrentUser(r.Context(), token); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), userContextKey, user))
			}
		}
		next(w, r)
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// clientIP prefers the first X-Forwarded-For hop, falling back to the
// socket address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// requestLogging logs method, path, status and latency for every call.
func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
