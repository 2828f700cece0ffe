package api

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/xmkt/marketplace/internal/auth"
)

// Header names used across the admin and shared-secret gates.
const (
	headerMasterKey = "X-Master-Key"
	headerAPIKey    = "X-Api-Key"
)

// RequireMaster gates a route behind the master secret, presented either as
// the raw X-Master-Key header or as a Bearer token from /admin/login.
func RequireMaster(masterKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key := r.Header.Get(headerMasterKey); key != "" {
				if subtle.ConstantTimeCompare([]byte(key), []byte(masterKey)) == 1 {
					next.ServeHTTP(w, r)
					return
				}
				jsonError(w, http.StatusUnauthorized, "invalid master key")
				return
			}

			if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
				token := strings.TrimPrefix(header, "Bearer ")
				if _, err := auth.ValidateAdminToken(masterKey, token); err == nil {
					next.ServeHTTP(w, r)
					return
				}
				jsonError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			jsonError(w, http.StatusUnauthorized, "master key required")
		})
	}
}

// RequireSharedSecret gates read endpoints behind the shared API secret (or
// the master secret). With no API key configured it is a no-op, matching
// deployments that leave the listing public.
func RequireSharedSecret(apiKey, masterKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if apiKey == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !auth.VerifySharedSecret(r.Header.Get(headerAPIKey), apiKey, masterKey) {
				jsonError(w, http.StatusUnauthorized, "api key required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs HTTP requests with method, path, status, and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.RequestURI(), rec.status, time.Since(start).Round(time.Millisecond))
	})
}
