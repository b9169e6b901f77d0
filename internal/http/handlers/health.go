package handlers

import (
	"context"
	"net/http"
	"time"
)

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "provider": a.Generator.Provider()}
	if a.Ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.Ping(ctx); err != nil {
			a.Logger.Warn().Err(err).Msg("http: database ping failed")
			status["status"] = "degraded"
			a.json(w, http.StatusServiceUnavailable, status)
			return
		}
	}
	a.json(w, http.StatusOK, status)
}
