// Package metrics records gameplay and storage metrics for the SSH server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder receives gameplay events from the platform.
type Recorder interface {
	SessionStarted()
	SessionEnded()
	FoodEaten()
	GameFinished(score, level int, cause string)
}

// Nop is a Recorder that discards everything. Used for local play.
type Nop struct{}

func (Nop) SessionStarted()                 {}
func (Nop) SessionEnded()                   {}
func (Nop) FoodEaten()                      {}
func (Nop) GameFinished(_, _ int, _ string) {}

// Prometheus records metrics into its own registry.
type Prometheus struct {
	registry *prometheus.Registry

	sessions    prometheus.Gauge
	games       *prometheus.CounterVec
	scores      prometheus.Histogram
	levels      prometheus.Histogram
	food        prometheus.Counter
	storeCalls  *prometheus.HistogramVec
	storeErrors *prometheus.CounterVec
}

var _ Recorder = (*Prometheus)(nil)

// NewPrometheus creates and registers the snake collectors.
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "snake",
			Subsystem: "ssh",
			Name:      "sessions_active",
			Help:      "Connected SSH sessions.",
		}),
		games: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "snake",
			Subsystem: "game",
			Name:      "finished_total",
			Help:      "Finished games by how they ended.",
		}, []string{"cause"}),
		scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "snake",
			Subsystem: "game",
			Name:      "score",
			Help:      "Final score of finished games.",
			Buckets:   prometheus.ExponentialBuckets(100, 2, 10),
		}),
		levels: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "snake",
			Subsystem: "game",
			Name:      "level",
			Help:      "Level reached in finished games.",
			Buckets:   prometheus.LinearBuckets(0, 5, 10),
		}),
		food: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "snake",
			Subsystem: "game",
			Name:      "food_eaten_total",
			Help:      "Food eaten across all games.",
		}),
		storeCalls: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "snake",
			Subsystem: "store",
			Name:      "calls",
			Help:      "Calls processed by the score store.",
		}, []string{"method"}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "snake",
			Subsystem: "store",
			Name:      "errors_total",
			Help:      "Failed score store calls.",
		}, []string{"method"}),
	}

	p.registry.MustRegister(
		p.sessions,
		p.games,
		p.scores,
		p.levels,
		p.food,
		p.storeCalls,
		p.storeErrors,
		prometheus.NewGoCollector(),
	)
	return p
}

func (p *Prometheus) SessionStarted() { p.sessions.Inc() }

func (p *Prometheus) SessionEnded() { p.sessions.Dec() }

func (p *Prometheus) FoodEaten() { p.food.Inc() }

func (p *Prometheus) GameFinished(score, level int, cause string) {
	p.games.WithLabelValues(cause).Inc()
	p.scores.Observe(float64(score))
	p.levels.Observe(float64(level))
}

// Registry exposes the underlying registry, mainly for tests.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the Prometheus text format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
