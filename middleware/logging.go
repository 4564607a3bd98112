package middleware

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"baf-backend/services"
)

// responseWriter wrapper to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// isCriticalError reports whether a status should trigger a Slack alert.
// Server errors (5xx) and 403s are critical; plain client errors are not.
func isCriticalError(statusCode int) bool {
	if statusCode >= http.StatusInternalServerError {
		return true
	}

	// 403 usually means a CORS misconfiguration or a blocked admin route
	if statusCode == http.StatusForbidden {
		return true
	}

	return false
}

// Logging logs HTTP requests and notifies Slack on critical errors
func Logging(slackService *services.SlackService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			duration := time.Since(start)
			statusCode := rw.statusCode

			if statusCode >= http.StatusBadRequest {
				log.Printf(
					"⚠️ %s %s -> %d (%s)",
					r.Method,
					r.RequestURI,
					statusCode,
					duration,
				)

				if isCriticalError(statusCode) && slackService != nil {
					origin := r.Header.Get("Origin")
					userAgent := r.Header.Get("User-Agent")
					statusCodeStr := strconv.Itoa(statusCode)

					if statusCode >= http.StatusInternalServerError {
						errorMessage := http.StatusText(statusCode)
						slackService.SendCriticalError(r.Method, r.RequestURI, statusCodeStr, errorMessage, origin, userAgent)
					} else if statusCode == http.StatusForbidden {
						if origin != "" {
							slackService.SendCORSError(r.Method, r.RequestURI, origin, userAgent)
						} else {
							slackService.SendCriticalError(r.Method, r.RequestURI, statusCodeStr, "Access denied", origin, userAgent)
						}
					}
				}
			}
		})
	}
}
