package forum

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "forumview",
			Name:      "fetch_total",
			Help:      "Total number of collection fetches",
		},
		[]string{"forum", "resource", "outcome"},
	)

	fetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "forumview",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of collection fetches in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"forum", "resource"},
	)

	viewStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "forumview",
			Name:      "view_status",
			Help:      "Current view status (0 = loading, 1 = ready, 2 = error)",
		},
		[]string{"forum"},
	)
)

func recordFetch(forum, resource string, err error, seconds float64) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	fetchTotal.WithLabelValues(forum, resource, outcome).Inc()
	fetchDuration.WithLabelValues(forum, resource).Observe(seconds)
}

func recordStatus(forum string, status Status) {
	viewStatus.WithLabelValues(forum).Set(float64(status))
}
