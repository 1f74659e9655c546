package controllers

import (
	"net/http"

	"github.com/swiftcart/swiftcart-backend/api/responses"
	"github.com/swiftcart/swiftcart-backend/pkg/config"
	"github.com/swiftcart/swiftcart-backend/pkg/db"
	pkgerrors "github.com/swiftcart/swiftcart-backend/pkg/errors"
	"github.com/swiftcart/swiftcart-backend/pkg/logger"
	"github.com/swiftcart/swiftcart-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SwiftCart-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks the datasources. The database is load-bearing;
// the cache is reported but never fails readiness because OTP storage
// degrades to memory without it.
func HealthReady(cfg *config.Config, database db.Pinger, cache redis.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SwiftCart-Env", cfg.App.Env)

		if database == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "database unavailable"))
			return
		}
		if err := database.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
			return
		}

		redisStatus := "ok"
		if cache == nil {
			redisStatus = "disabled"
		} else if err := cache.Ping(r.Context()); err != nil {
			redisStatus = "unavailable"
			if logg != nil {
				logg.Warn(r.Context(), "redis ping failed during readiness check")
			}
		}

		responses.WriteSuccess(w, map[string]string{
			"status": "ready",
			"redis":  redisStatus,
		})
	}
}
