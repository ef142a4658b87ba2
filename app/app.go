package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Black-And-White-Club/dart-stats/app/eventbus"
	"github.com/Black-And-White-Club/dart-stats/app/modules/game"
	gameservice "github.com/Black-And-White-Club/dart-stats/app/modules/game/application"
	"github.com/Black-And-White-Club/dart-stats/config"
	"github.com/Black-And-White-Club/dart-stats/db/bundb"
	"github.com/Black-And-White-Club/dart-stats/internal/httpmw"
	"github.com/Black-And-White-Club/dart-stats/internal/observability"
	"github.com/Black-And-White-Club/dart-stats/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 15 * time.Second

// App wires configuration, storage, the event bus and the modules together.
type App struct {
	Config        *config.Config
	Observability *observability.Observability
	DB            *bun.DB
	EventBus      *eventbus.EventBus
	Router        *message.Router
	GameModule    *game.Module

	httpServer    *http.Server
	metricsServer *http.Server
}

// NewApp connects to the database and event bus and builds every module.
func NewApp(ctx context.Context, cfg *config.Config, obs *observability.Observability) (*App, error) {
	app := &App{Config: cfg, Observability: obs}
	if err := app.initialize(ctx); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

func (app *App) initialize(ctx context.Context) error {
	logger := app.Observability.Logger
	cfg := app.Config

	db, err := bundb.Open(ctx, cfg.Postgres.DSN)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.DB = db

	bus, err := eventbus.NewEventBus(ctx, eventbus.Config{
		URL:        cfg.NATS.URL,
		NKeySeed:   cfg.NATS.NKeySeed,
		QueueGroup: "dart-stats",
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create event bus: %w", err)
	}
	app.EventBus = bus

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: shutdownTimeout}, watermill.NewSlogLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create Watermill router: %w", err)
	}
	app.Router = router

	loc, err := cfg.Stats.Location()
	if err != nil {
		return err
	}

	gameModule, err := game.NewGameModule(ctx, app.Observability, game.Deps{
		DB:         db,
		Publisher:  bus,
		Subscriber: bus,
		Router:     router,
		Options: gameservice.Options{
			DefaultLimit:  cfg.Stats.DefaultLimit,
			MaxLimit:      cfg.Stats.MaxLimit,
			Location:      loc,
			DefaultLocale: cfg.Stats.Locale,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize game module: %w", err)
	}
	app.GameModule = gameModule

	if addr := cfg.Observability.MetricsAddress; addr != "" && addr != cfg.HTTP.Addr {
		mux := http.NewServeMux()
		mux.Handle("/metrics", app.metricsHandler())
		app.metricsServer = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	}
	app.httpServer = &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return nil
}

// Handler returns the HTTP API. /metrics is mounted here unless a separate
// metrics address is configured.
func (app *App) Handler() http.Handler {
	logger := app.Observability.Logger
	cfg := app.Config

	r := chi.NewRouter()
	r.Use(
		middleware.RealIP,
		httpmw.CorrelationID,
		httpmw.RequestLogger(logger),
		middleware.Recoverer,
		httpmw.CORS(cfg.HTTP.AllowedOrigins),
	)

	r.Get("/healthz", app.handleHealthz)
	if app.metricsServer == nil {
		r.Handle("/metrics", app.metricsHandler())
	}

	r.Group(func(r chi.Router) {
		r.Use(httpmw.RateLimit(httpmw.NewIPRateLimiter(rate.Limit(cfg.HTTP.RateLimitRPS), cfg.HTTP.RateLimitBurst)))
		app.GameModule.RegisterRoutes(r)
	})
	return r
}

func (app *App) metricsHandler() http.Handler {
	return promhttp.HandlerFor(app.Observability.Registry, promhttp.HandlerOpts{
		Registry: app.Observability.Registry,
	})
}

func (app *App) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if app.DB != nil {
		if err := app.DB.PingContext(ctx); err != nil {
			app.Observability.Logger.WarnContext(ctx, "Health check failed", attr.Error(err))
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

// Run serves events and HTTP until ctx is canceled or a server fails, then
// shuts everything down.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Logger

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 4)
	var wg sync.WaitGroup

	wg.Add(1)
	go app.GameModule.Run(ctx, &wg)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.Router.Run(ctx); err != nil {
			errCh <- fmt.Errorf("watermill router: %w", err)
		}
	}()

	for _, srv := range []*http.Server{app.httpServer, app.metricsServer} {
		if srv == nil {
			continue
		}
		wg.Add(1)
		go func(srv *http.Server) {
			defer wg.Done()
			logger.InfoContext(ctx, "HTTP server listening", attr.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("http server %s: %w", srv.Addr, err)
			}
		}(srv)
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown requested")
	case runErr = <-errCh:
		logger.Error("Component failed, shutting down", attr.Error(runErr))
	}
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	for _, srv := range []*http.Server{app.httpServer, app.metricsServer} {
		if srv != nil {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("HTTP server shutdown failed", attr.Error(err))
			}
		}
	}

	wg.Wait()
	return errors.Join(runErr, app.Close())
}

// Close releases the modules, event bus and database.
func (app *App) Close() error {
	var errs []error
	if app.GameModule != nil {
		errs = append(errs, app.GameModule.Close())
	} else if app.Router != nil {
		errs = append(errs, app.Router.Close())
	}
	if app.EventBus != nil {
		errs = append(errs, app.EventBus.Close())
	}
	if app.DB != nil {
		errs = append(errs, app.DB.Close())
	}
	return errors.Join(errs...)
}
