package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ormawadev/orgapi/internal"
	"github.com/ormawadev/orgapi/internal/metrics"
	"github.com/ormawadev/orgapi/internal/ratelimit"
	"github.com/ormawadev/orgapi/internal/transport"
)

// RateLimit gates every request through the admission-control limiter before
// any handler or query work runs. Rejections write the uniform 429 envelope
// with the window reset time; a broken quota store fails the request with an
// internal error rather than waving it through.
func RateLimit(limiter ratelimit.Limiter, recorder metrics.Recorder, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := ratelimit.ClientIP(r)

			result, err := limiter.Admit(r.Context(), identity)
			if err != nil {
				logger.Error("rate limiter unavailable", "error", err, "client", identity)
				writeEnvelope(w, internal.NewInternalError("Internal server error", err))
				return
			}

			if !result.Allowed {
				logger.Warn("rate limit exceeded", "client", identity, "path", r.URL.Path)
				recorder.RecordRateLimited(r.URL.Path)
				w.Header().Set("Retry-After", retryAfter(result.ResetAt))
				writeEnvelope(w, internal.NewTooManyRequestsError(result.ResetAt))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeEnvelope(w http.ResponseWriter, appErr *internal.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	_ = json.NewEncoder(w).Encode(
		transport.NewErrorEnvelope(appErr.Message, string(appErr.Code), appErr.Metadata),
	)
}

func retryAfter(resetAt time.Time) string {
	secs := int(time.Until(resetAt).Seconds())
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
