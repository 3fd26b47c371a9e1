package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CreationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wellspring_connections_created_total",
		Help: "Connection creation attempts by factory mode and outcome.",
	}, []string{"mode", "status"})

	CreationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wellspring_connection_create_duration_seconds",
		Help:    "Time to create and initialize one connection.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	})

	PropertyWarningsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wellspring_property_warnings_total",
		Help: "Provider properties ignored during factory construction.",
	})
)

// ObserveCreation records one CreateConnection outcome.
func ObserveCreation(mode string, err error, elapsed time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	CreationsTotal.WithLabelValues(mode, status).Inc()
	if err == nil {
		CreationDuration.Observe(elapsed.Seconds())
	}
}

// Listener counts factory warnings. Wire it into wellspring.New alongside
// any logging listener.
type Listener struct{}

func (Listener) OnWarning(string) { PropertyWarningsTotal.Inc() }
