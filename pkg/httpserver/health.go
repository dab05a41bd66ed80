package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/rulebuilder/pkg/logger"
)

// Check reports whether a dependency is ready to serve.
type Check func(ctx context.Context) error

// HealthHandler serves probes. Without checks it is a liveness probe that
// answers "ALIVE". With checks it answers "READY", or 503 "NOT_READY" when
// any check fails.
func HealthHandler(log *slog.Logger, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if len(checks) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}

		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
