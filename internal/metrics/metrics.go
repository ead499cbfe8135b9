package metrics

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	Searches      prometheus.Counter
	SearchResults prometheus.Histogram

	PanelTransitions *prometheus.CounterVec // labels: event, to

	ActiveSessions  prometheus.Gauge
	SessionsCreated prometheus.Counter
	SessionsClosed  prometheus.Counter

	ThemeChanges    *prometheus.CounterVec // label: preference
	ThemeSaveErrors prometheus.Counter

	AuthSubmits *prometheus.CounterVec // label: kind (login|signup)

	EventsPublished   prometheus.Counter
	EventPublishErrs  prometheus.Counter
	NATSConnected     prometheus.Gauge
	PublishDuration   prometheus.Histogram
	RequestDuration   *prometheus.HistogramVec // labels: method, route
	SearchLimit       prometheus.Gauge
	LoginDelaySeconds prometheus.Gauge
}

func NewCollector(searchLimit int, loginDelay time.Duration) *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Searches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transit_searches_total",
			Help: "Destination searches evaluated.",
		}),
		SearchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "transit_search_results",
			Help:    "Number of destinations returned per search.",
			Buckets: prometheus.LinearBuckets(0, 1, 9),
		}),
		PanelTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transit_panel_transitions_total",
			Help: "Map panel state machine events by resulting state.",
		}, []string{"event", "to"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "transit_active_sessions",
			Help: "Number of open map sessions.",
		}),
		SessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transit_sessions_created_total",
			Help: "Total map sessions created.",
		}),
		SessionsClosed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transit_sessions_closed_total",
			Help: "Total map sessions closed.",
		}),
		ThemeChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transit_theme_changes_total",
			Help: "Theme preference changes by new preference.",
		}, []string{"preference"}),
		ThemeSaveErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transit_theme_save_errors_total",
			Help: "Theme preference writes that failed to persist.",
		}),
		AuthSubmits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transit_auth_submits_total",
			Help: "Simulated auth submits.",
		}, []string{"kind"}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transit_events_published_total",
			Help: "Total NATS events published.",
		}),
		EventPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transit_event_publish_errors_total",
			Help: "Total NATS publish errors.",
		}),
		NATSConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "transit_nats_connected",
			Help: "1 if NATS connection is established, 0 otherwise.",
		}),
		PublishDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "transit_publish_duration_seconds",
			Help:    "Duration to marshal and publish a NATS message.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 15),
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "transit_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 15),
		}, []string{"method", "route"}),
		SearchLimit: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "transit_search_limit",
			Help: "Configured destination result cap.",
		}),
		LoginDelaySeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "transit_login_delay_seconds",
			Help: "Configured simulated login delay.",
		}),
	}

	reg.MustRegister(
		c.Searches, c.SearchResults, c.PanelTransitions,
		c.ActiveSessions, c.SessionsCreated, c.SessionsClosed,
		c.ThemeChanges, c.ThemeSaveErrors, c.AuthSubmits,
		c.EventsPublished, c.EventPublishErrs, c.NATSConnected, c.PublishDuration,
		c.RequestDuration, c.SearchLimit, c.LoginDelaySeconds,
	)

	c.SearchLimit.Set(float64(searchLimit))
	c.LoginDelaySeconds.Set(loginDelay.Seconds())

	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// Serve starts an HTTP server exposing /metrics on the given address.
func (c *Collector) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
	log.Printf("metrics listening on %s", addr)
	return srv
}
