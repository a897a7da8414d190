package httpserver

import (
	"encoding/json"
	"net/http"

	"golang.org/x/time/rate"
)

// LoginLimiter throttles the login endpoint to blunt credential
// stuffing before the per-account lockout kicks in.
type LoginLimiter struct {
	limiter *rate.Limiter
}

func NewLoginLimiter(perSec float64, burst int) *LoginLimiter {
	return &LoginLimiter{limiter: rate.NewLimiter(rate.Limit(perSec), burst)}
}

func (l *LoginLimiter) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.limiter.Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "too many login attempts, try again later"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
