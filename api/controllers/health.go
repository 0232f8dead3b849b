package controllers

import (
	"net/http"

	"github.com/sbaral/bookpasal-backend/api/responses"
	"github.com/sbaral/bookpasal-backend/pkg/config"
	"github.com/sbaral/bookpasal-backend/pkg/db"
	pkgerrors "github.com/sbaral/bookpasal-backend/pkg/errors"
	"github.com/sbaral/bookpasal-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-BookPasal-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when every wired datasource answers a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, pingers ...db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-BookPasal-Env", cfg.App.Env)

		for _, p := range pingers {
			if p == nil {
				continue
			}
			if err := p.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "datasource unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
