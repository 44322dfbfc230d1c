package controllers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/brickshare-es/brickshare-backend/api/responses"
	"github.com/brickshare-es/brickshare-backend/pkg/config"
	pkgerrors "github.com/brickshare-es/brickshare-backend/pkg/errors"
	"github.com/brickshare-es/brickshare-backend/pkg/logger"
)

const readinessTimeout = 5 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Brickshare-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies every backing dependency before reporting ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Brickshare-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		var combined error
		results := map[string]string{}
		for name, dep := range deps {
			if dep == nil {
				results[name] = "not configured"
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				combined = multierr.Append(combined, err)
				results[name] = "unavailable"
				continue
			}
			results[name] = "ok"
		}

		if combined != nil {
			err := pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "readiness check failed").
				WithDetails(results)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": results})
	}
}

// ReadinessDeps builds the dependency map for HealthReady. Nil entries
// are reported as not configured instead of failing the probe.
func ReadinessDeps(db Pinger, redis Pinger) map[string]Pinger {
	return map[string]Pinger{
		"postgres": db,
		"redis":    redis,
	}
}
