// Package httpapi assembles the public HTTP surface: screening routes,
// health, and metrics.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sichrplace/internal/screening/handler"
	"sichrplace/pkg/platform/httputil"
	"sichrplace/pkg/platform/middleware/requestid"
	"sichrplace/pkg/platform/middleware/requesttime"
)

// HealthCheck probes one dependency. A nil error means healthy.
type HealthCheck func(ctx context.Context) error

// Deps carries everything the router mounts.
type Deps struct {
	Screening *handler.Handler
	Logger    *slog.Logger

	// HealthChecks by dependency name. Optional dependencies that are not
	// configured should simply be absent.
	HealthChecks map[string]HealthCheck
}

// NewRouter wires all public endpoints.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/healthz", handleHealth(deps))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	deps.Screening.Register(r)
	return r
}

func handleHealth(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		status := http.StatusOK
		checks := make(map[string]string, len(deps.HealthChecks))

		for name, check := range deps.HealthChecks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				checks[name] = "unhealthy"
				if deps.Logger != nil {
					deps.Logger.WarnContext(ctx, "health check failed",
						"dependency", name,
						"error", err,
					)
				}
				continue
			}
			checks[name] = "ok"
		}

		body := map[string]any{"status": "ok"}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		if len(checks) > 0 {
			body["checks"] = checks
		}
		httputil.WriteJSON(w, status, body)
	}
}
