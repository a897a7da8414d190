// Package metrics exposes Prometheus collectors for the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LoginAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "authcore_login_attempts_total",
		Help: "Login attempts by outcome.",
	}, []string{"outcome"})

	SessionsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "authcore_sessions_created_total",
		Help: "Sessions persisted since start.",
	})

	LockoutsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "authcore_lockouts_created_total",
		Help: "Account lockouts created since start.",
	})
)

func Register() {
	prometheus.MustRegister(LoginAttempts, SessionsCreated, LockoutsCreated)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
