package game

import (
	"context"
	"fmt"
	"sync"

	gameservice "github.com/Black-And-White-Club/dart-stats/app/modules/game/application"
	gamehandlers "github.com/Black-And-White-Club/dart-stats/app/modules/game/infrastructure/handlers"
	gamedb "github.com/Black-And-White-Club/dart-stats/app/modules/game/infrastructure/repositories"
	gamerouter "github.com/Black-And-White-Club/dart-stats/app/modules/game/infrastructure/router"
	"github.com/Black-And-White-Club/dart-stats/internal/observability"
	gamemetrics "github.com/Black-And-White-Club/dart-stats/internal/observability/metrics/game"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"
)

// Module represents the game module.
type Module struct {
	GameService   gameservice.Service
	GameRouter    *gamerouter.GameRouter
	handlers      *gamehandlers.GameHandlers
	cancelFunc    context.CancelFunc
	observability *observability.Observability
}

// Deps are the shared resources the module is built on.
type Deps struct {
	DB         *bun.DB
	Publisher  message.Publisher
	Subscriber message.Subscriber
	Router     *message.Router
	Options    gameservice.Options
}

// NewGameModule creates and initializes a new game module.
func NewGameModule(ctx context.Context, obs *observability.Observability, deps Deps) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "game.NewGameModule initializing")

	// 1. Initialize Repository
	repo := gamedb.NewRepository(deps.DB)

	// 2. Initialize Metrics
	metrics := gamemetrics.NewNoop()
	if obs.Registry != nil {
		m, err := gamemetrics.NewPrometheus(obs.Registry)
		if err != nil {
			return nil, fmt.Errorf("failed to register game metrics: %w", err)
		}
		metrics = m
	}

	// 3. Initialize Service
	service := gameservice.NewGameService(repo, deps.Publisher, logger, metrics, tracer, deps.DB, deps.Options)

	// 4. Initialize Handlers
	handlers := gamehandlers.NewGameHandlers(service, logger, tracer)

	module := &Module{
		GameService:   service,
		handlers:      handlers,
		observability: obs,
	}

	// 5. Initialize Router and register event handlers
	if deps.Router != nil {
		var reg prometheus.Registerer
		if obs.Registry != nil {
			reg = obs.Registry
		}
		gameRouter := gamerouter.NewGameRouter(logger, deps.Router, deps.Subscriber, deps.Publisher, tracer, reg)
		if err := gameRouter.Configure(ctx, handlers); err != nil {
			return nil, fmt.Errorf("failed to configure game router: %w", err)
		}
		module.GameRouter = gameRouter
	}

	return module, nil
}

// RegisterRoutes mounts the module's HTTP API.
func (m *Module) RegisterRoutes(mux chi.Router) {
	gamerouter.RegisterRoutes(mux, m.handlers)
}

// Run starts the game module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting game module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Game module goroutine stopped")
}

// Close shuts down the game module.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping game module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.GameRouter != nil {
		if err := m.GameRouter.Close(); err != nil {
			logger.Error("Error closing GameRouter from module", "error", err)
			return fmt.Errorf("error closing GameRouter: %w", err)
		}
	}

	logger.Info("Game module stopped")
	return nil
}
