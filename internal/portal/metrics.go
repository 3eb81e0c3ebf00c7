// internal/portal/metrics.go
package portal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workgate_login_attempts_total",
		Help: "Login attempts by outcome code.",
	}, []string{"outcome"})

	menuDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workgate_menu_access_denied_total",
		Help: "Requests rejected by the menu authorization filter, by reason.",
	}, []string{"reason"})
)
