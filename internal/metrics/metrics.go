package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "reviews", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "reviews", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	SentimentRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "reviews", Name: "sentiment_requests_total", Help: "Classifier calls."},
		[]string{"outcome"}, // outcome: ok|degraded
	)
	ReviewsCreated = promauto.NewCounter(
		prometheus.CounterOpts{Namespace: "reviews", Name: "created_total", Help: "Reviews persisted."},
	)
	ReviewsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{Namespace: "reviews", Name: "deleted_total", Help: "Reviews hard-deleted by admins."},
	)
)
