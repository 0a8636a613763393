package api

import (
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/reelhouse/catalog-server/internal/http/response"
	"github.com/reelhouse/catalog-server/internal/ratelimit"
)

// Recoverer turns a panicking handler into a 500 envelope and logs the
// stack with the request id.
func Recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("panic recovered",
					"panic", rec,
					"request_id", middleware.GetReqID(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				response.InternalError(w, logger)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// WriteRateLimitMiddleware rejects POST, PUT and PATCH requests from a client
// IP that has used up its budget. Reads are never limited.
func WriteRateLimitMiddleware(limiter *ratelimit.KeyedRateLimiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch:
			default:
				next.ServeHTTP(w, r)
				return
			}

			key := clientIP(r)
			if delay := limiter.Reserve(key); delay > 0 {
				logger.Warn("write rate limit exceeded", "ip", key, "path", r.URL.Path)
				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(delay.Seconds())))
				response.TooManyRequests(w, "too many requests, please try again later", logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the request's remote IP without the port. RealIP has
// already applied X-Forwarded-For and X-Real-IP.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func retryAfterSeconds(seconds float64) int {
	n := int(seconds)
	if float64(n) < seconds {
		n++
	}
	return max(n, 1)
}
