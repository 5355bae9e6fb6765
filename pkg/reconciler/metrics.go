package reconciler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

var metricsFactory = promauto.With(metrics.Registry)

var (
	reconcileTotal = metricsFactory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "locust_operator_reconcile_total",
			Help: "Total number of handled LocustTest events",
		},
		[]string{"action"}, // create, skip-update or cleanup
	)

	stepFailuresTotal = metricsFactory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "locust_operator_step_failures_total",
			Help: "Total number of failed create or delete steps",
		},
		[]string{"step"},
	)

	reconcileDuration = metricsFactory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "locust_operator_reconcile_duration_seconds",
			Help:    "Duration of LocustTest event handling in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"action"},
	)
)
