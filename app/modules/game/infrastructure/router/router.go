package gamerouter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gameevents "github.com/Black-And-White-Club/dart-stats/app/modules/game/events"
	gamehandlers "github.com/Black-And-White-Club/dart-stats/app/modules/game/infrastructure/handlers"
	"github.com/Black-And-White-Club/dart-stats/internal/handlerwrapper"
	"github.com/Black-And-White-Club/dart-stats/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

// GameRouter binds game handlers to event topics and HTTP routes.
type GameRouter struct {
	logger         *slog.Logger
	Router         *message.Router
	subscriber     message.Subscriber
	publisher      message.Publisher
	tracer         trace.Tracer
	metricsBuilder *metrics.PrometheusMetricsBuilder
}

func NewGameRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	publisher message.Publisher,
	tracer trace.Tracer,
	prometheusRegistry prometheus.Registerer,
) *GameRouter {
	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if prometheusRegistry != nil {
		builder := metrics.NewPrometheusMetricsBuilder(prometheusRegistry, "", "")
		metricsBuilder = &builder
	}
	return &GameRouter{
		logger:         logger,
		Router:         router,
		subscriber:     subscriber,
		publisher:      publisher,
		tracer:         tracer,
		metricsBuilder: metricsBuilder,
	}
}

// Configure adds middleware and registers the game event handlers.
func (r *GameRouter) Configure(ctx context.Context, handlers gamehandlers.Handlers) error {
	if r.metricsBuilder != nil {
		r.logger.InfoContext(ctx, "Adding Prometheus router metrics middleware")
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	}

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 100 * time.Millisecond,
		}.Middleware,
	)

	if err := r.RegisterHandlers(ctx, handlers); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

// RegisterHandlers subscribes every game topic. Handlers publish their own
// results, so each is added as a consumer handler.
func (r *GameRouter) RegisterHandlers(ctx context.Context, handlers gamehandlers.Handlers) error {
	if handlers == nil {
		return fmt.Errorf("handlers is nil")
	}

	eventsToHandlers := map[string]message.NoPublishHandlerFunc{
		gameevents.GameRecordRequestedV1: handlerwrapper.WrapTransformingTyped(
			"HandleGameRecordRequested", r.logger, r.tracer, r.publisher, handlers.HandleGameRecordRequested),
		gameevents.RankingsRequestedV1: handlerwrapper.WrapTransformingTyped(
			"HandleRankingsRequested", r.logger, r.tracer, r.publisher, handlers.HandleRankingsRequested),
	}

	for topic, handlerFunc := range eventsToHandlers {
		handlerName := "game." + topic
		r.Router.AddConsumerHandler(handlerName, topic, r.subscriber, handlerFunc)
		r.logger.InfoContext(ctx, "Registered game handler",
			attr.String("handler", handlerName),
			attr.String("topic", topic),
		)
	}
	return nil
}

// RegisterRoutes mounts the game HTTP API on mux.
func RegisterRoutes(mux chi.Router, h gamehandlers.HTTPHandlers) {
	mux.Route("/users/{userID}", func(r chi.Router) {
		r.Post("/games", h.HandleHTTPRecordGame)
		r.Get("/games", h.HandleHTTPListGames)
		r.Get("/rankings", h.HandleHTTPRankings)
		r.Get("/rankings.xlsx", h.HandleHTTPRankingsExport)
		r.Get("/history", h.HandleHTTPHistory)
		r.Get("/players/{name}/chart.png", h.HandleHTTPPlayerChart)
	})
}

func (r *GameRouter) Close() error {
	return r.Router.Close()
}
