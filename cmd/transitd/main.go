package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"transit-cnmi/internal/auth"
	"transit-cnmi/internal/catalog"
	"transit-cnmi/internal/config"
	"transit-cnmi/internal/httpapi"
	"transit-cnmi/internal/metrics"
	"transit-cnmi/internal/publisher"
	"transit-cnmi/internal/session"
	"transit-cnmi/internal/store"
	"transit-cnmi/internal/theme"
)

func main() {
	// Load configuration from .env and environment
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// Root context with cancellation on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("catalog error: %v", err)
	}

	dsn := cfg.SQLitePath
	if cfg.StoreDriver == "postgres" {
		dsn = cfg.DatabaseURL
	}
	st, err := store.Open(ctx, cfg.StoreDriver, dsn)
	if err != nil {
		log.Fatalf("store error: %v", err)
	}
	defer st.Close()

	// Metrics setup
	var mcol *metrics.Collector
	if cfg.MetricsAddr != "" {
		mcol = metrics.NewCollector(cfg.SearchLimit, cfg.LoginDelay)
		srv := mcol.Serve(cfg.MetricsAddr)
		defer shutdown(srv)
	}

	// Event publisher; disabled without NATS_URL
	var pub publisher.Publisher = publisher.Nop{}
	if cfg.NATSURL != "" {
		np, err := publisher.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubjectPrefix, cfg.LogNATSSubjects, wrapPublisherMetrics(mcol))
		if err != nil {
			log.Fatalf("nats error: %v", err)
		}
		pub = np
	}
	defer pub.Close()

	th := theme.NewSettings(st, theme.FixedScheme(cfg.SystemScheme))
	th.OnChange(func(c theme.Change) {
		if mcol != nil {
			mcol.ThemeChanges.WithLabelValues(string(c.Preference)).Inc()
		}
		err := pub.PublishTheme(publisher.ThemeMessage{
			Preference: string(c.Preference),
			Resolved:   string(c.Resolved),
			Timestamp:  time.Now().UTC(),
		})
		if err != nil {
			log.Printf("publish theme: %v", err)
		}
	})
	th.Load(ctx)
	log.Printf("theme preference %q (resolved %q)", th.Preference(), th.Resolved())

	mgr := session.NewManager(cat, cfg.SearchLimit, pub, mcol, cfg.SessionTTL)
	if cfg.SessionTTL > 0 {
		mgr.StartSweeper(ctx, cfg.SessionTTL/2)
	}

	h := httpapi.NewHandler(httpapi.Deps{
		Catalog:     cat,
		Sessions:    mgr,
		Theme:       th,
		Auth:        auth.NewSimulator(cfg.LoginDelay),
		SnapPoints:  cfg.SnapPoints,
		SearchLimit: cfg.SearchLimit,
		Metrics:     mcol,
	})
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(h, cfg.CORSOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("listening on %s (store=%s)", cfg.HTTPAddr, cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	// Block until context cancelled
	<-ctx.Done()
	shutdown(srv)
	mgr.Stop()
	log.Println("shutdown complete")
}

func shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown %s: %v", srv.Addr, err)
	}
}

// wrapPublisherMetrics adapts our Collector to the PublisherMetrics interface.
func wrapPublisherMetrics(c *metrics.Collector) publisher.PublisherMetrics {
	if c == nil {
		return nil
	}
	return &pubMetrics{c: c}
}

type pubMetrics struct{ c *metrics.Collector }

func (p *pubMetrics) NATSPublishedInc()              { p.c.EventsPublished.Inc() }
func (p *pubMetrics) NATSPublishErrInc()             { p.c.EventPublishErrs.Inc() }
func (p *pubMetrics) PublishObserve(d time.Duration) { p.c.PublishDuration.Observe(d.Seconds()) }
func (p *pubMetrics) NATSSetConnected(b bool) {
	if b {
		p.c.NATSConnected.Set(1)
	} else {
		p.c.NATSConnected.Set(0)
	}
}
