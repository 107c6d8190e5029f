package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ClockEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ponto", Name: "clock_events_total", Help: "Persisted clock events by type",
	}, []string{"type"})
	GeofenceRejections = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ponto", Name: "geofence_rejections_total", Help: "Clock events rejected by the geofence",
	}, []string{"code"})
	AbsenceReviews = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ponto", Name: "absence_reviews_total", Help: "Absence reviews by outcome",
	}, []string{"status"})
)

func init() {
	prometheus.MustRegister(ClockEvents, GeofenceRejections, AbsenceReviews)
}

// Handler exposes the metrics endpoint.
func Handler() http.Handler { return promhttp.Handler() }
