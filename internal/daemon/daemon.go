package daemon

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/enttlevo/mapai/internal/api"
	"github.com/enttlevo/mapai/internal/app/chat"
	"github.com/enttlevo/mapai/internal/geo"
	"github.com/enttlevo/mapai/internal/health"
	"github.com/enttlevo/mapai/internal/infra/assistant"
	"github.com/enttlevo/mapai/internal/infra/registry"
	"github.com/enttlevo/mapai/internal/infra/sqlite"
)

// Daemon is the core mapai runtime. It wires together all services.
type Daemon struct {
	Config  Config
	DB      *sqlite.DB
	Regions *registry.Manager
	Chat    *chat.Service
	Server  *api.Server
	Health  *health.Checker

	dataset atomic.Pointer[geo.FeatureCollection]
	index   atomic.Pointer[geo.Index]
	watcher *geo.Watcher
	cancel  context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	db, err := sqlite.Open(mapaiHome())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	d := &Daemon{Config: cfg, DB: db}

	// Load the boundary dataset and compile the province index. A missing
	// dataset degrades to an alias-only index rather than failing startup;
	// the health check reports it.
	fc, err := geo.LoadDataset(cfg.Geo.Dataset)
	if err != nil {
		log.Printf("[daemon] dataset unavailable, resolver runs on aliases only: %v", err)
		fc = nil
	}
	d.dataset.Store(fc)
	d.index.Store(geo.BuildIndex(fc))

	if cfg.Geo.Watch {
		d.watcher = geo.NewWatcher(cfg.Geo.Dataset, func(fc *geo.FeatureCollection, idx *geo.Index) {
			d.dataset.Store(fc)
			d.index.Store(idx)
		})
	}

	timeout := time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second
	ttl := time.Duration(cfg.Upstream.RefreshMinutes) * time.Minute

	d.Regions = registry.NewManager(cfg.Upstream.RegionsURL, db, ttl)

	var asker assistant.Asker
	var chatClient *assistant.Client
	if cfg.Upstream.ChatURL != "" {
		chatClient = assistant.NewClient(cfg.Upstream.ChatURL, timeout)
		asker = chatClient
	} else {
		log.Printf("[daemon] WARNING: no chat_url configured, chat endpoints will fail")
		asker = assistant.NewClient("", timeout)
	}

	d.Chat = chat.NewService(db, asker, d.Regions, d.Index)
	d.Health = health.NewChecker(db, cfg.Geo.Dataset, chatClient)

	srv := api.NewServer(d.Chat, d.Regions, db, d.Dataset, d.Index)
	srv.SetHealth(d.Health)
	srv.SetCORSOrigins(cfg.API.CORSOrigins)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}
	d.Server = srv

	return d, nil
}

// Dataset returns the current boundary snapshot.
func (d *Daemon) Dataset() *geo.FeatureCollection { return d.dataset.Load() }

// Index returns the current province index snapshot.
func (d *Daemon) Index() *geo.Index { return d.index.Load() }

// Serve runs the HTTP server until a signal or ctx cancellation.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	if path := d.Config.Logging.File; path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600); err == nil {
			log.SetOutput(io.MultiWriter(os.Stderr, f))
		} else {
			log.Printf("[daemon] log file unavailable: %v", err)
		}
	}

	go d.Health.Run(ctx)

	if d.watcher != nil {
		if err := d.watcher.Start(ctx); err != nil {
			log.Printf("[daemon] dataset watcher failed to start: %v", err)
		}
	}

	// Warm the region cache; failures fall back to whatever is cached.
	go func() {
		warmCtx, warmCancel := context.WithTimeout(ctx, 30*time.Second)
		defer warmCancel()
		if err := d.Regions.Refresh(warmCtx); err != nil {
			log.Printf("[daemon] region warm-up failed: %v", err)
		}
	}()

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute, // chat answers can be slow
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("mapai serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Close shuts the daemon down outside of Serve.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
