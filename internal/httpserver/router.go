package httpserver

import (
	"encoding/json"
	"net/http"

	"log/slog"

	"authcore/internal/audit"
	"authcore/internal/auth"
	"authcore/internal/lockout"
	"authcore/internal/metrics"
)

// APIVersion prefixes every versioned route.
const APIVersion = "v1"

const apiPrefix = "/api/" + APIVersion

func NewRouter(
	logger *slog.Logger,
	authSvc *auth.Service,
	recorder *auth.Recorder,
	auditStore *audit.Store,
	lockoutStore *lockout.Store,
	loginLimit *LoginLimiter,
) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Auth
	loginH := &auth.LoginHandler{Service: authSvc, Logger: logger}
	mux.Handle(apiPrefix+"/auth/login", loginLimit.Wrap(loginH))
	mux.Handle(apiPrefix+"/auth/logout", &auth.LogoutHandler{Service: authSvc, Logger: logger})
	mux.Handle(apiPrefix+"/auth/refresh", &auth.RefreshHandler{Service: authSvc, Logger: logger})

	secured := auth.Middleware(authSvc)
	mux.Handle(apiPrefix+"/me", secured(&auth.MeHandler{Logger: logger}))

	// Admin
	auditH := &audit.ListHandler{Store: auditStore, Logger: logger}
	lockoutH := &lockout.ListHandler{Store: lockoutStore, Logger: logger}
	statsH := &auth.StatsHandler{Recorder: recorder, Logger: logger}
	mux.Handle(apiPrefix+"/admin/audit", secured(auth.RequireRole(auditH.ServeHTTP, auth.RoleAdmin)))
	mux.Handle(apiPrefix+"/admin/lockouts", secured(auth.RequireRole(lockoutH.ServeHTTP, auth.RoleAdmin)))
	mux.Handle(apiPrefix+"/admin/stats", secured(auth.RequireRole(statsH.ServeHTTP, auth.RoleAdmin)))

	// Prometheus
	mux.Handle("/metrics", metrics.Handler())

	// CORS wrapper (simple, for local UI/tools).
	return withCORS(mux)
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
