package controllers

import (
	"context"
	"net/http"

	"github.com/DangTDuy/ev-dealer-management-sub001/api/responses"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/config"
	pkgerrors "github.com/DangTDuy/ev-dealer-management-sub001/pkg/errors"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/logger"
)

const envHeader = "X-EVDR-Env"

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, db, rds Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		checks := map[string]Pinger{"db": db, "redis": rds}
		for name, dep := range checks {
			if dep == nil {
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" not ready"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
