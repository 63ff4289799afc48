package initializers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "churchportal_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "churchportal_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	CheckInsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "churchportal_attendance_checkins_total",
		Help: "Attendance records created.",
	})

	OpenSessionConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "churchportal_attendance_open_session_conflicts_total",
		Help: "Check-ins rejected because the member already had an open session.",
	})
)
