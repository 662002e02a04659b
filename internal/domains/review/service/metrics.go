package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reviewSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_submissions_total",
			Help: "Total number of stored review submissions by initial status",
		},
		[]string{"status"},
	)

	reviewTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_status_transitions_total",
			Help: "Total number of applied moderation transitions",
		},
		[]string{"from", "to"},
	)

	reviewStatsCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_statistics_cache_total",
			Help: "Statistics cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)
)
