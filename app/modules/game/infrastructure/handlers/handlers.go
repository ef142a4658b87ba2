package gamehandlers

import (
	"errors"
	"log/slog"

	gameservice "github.com/Black-And-White-Club/dart-stats/app/modules/game/application"
	gameevents "github.com/Black-And-White-Club/dart-stats/app/modules/game/events"
	"go.opentelemetry.io/otel/trace"
)

// GameHandlers serves game events and HTTP requests from one service.
type GameHandlers struct {
	service gameservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewGameHandlers creates a new GameHandlers.
func NewGameHandlers(service gameservice.Service, logger *slog.Logger, tracer trace.Tracer) *GameHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &GameHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

var (
	_ Handlers     = (*GameHandlers)(nil)
	_ HTTPHandlers = (*GameHandlers)(nil)
)

// failureCode maps a service error onto the code carried by failure events.
func failureCode(err error) string {
	switch {
	case errors.Is(err, gameservice.ErrAccessDenied):
		return gameevents.CodeAccessDenied
	case errors.Is(err, gameservice.ErrMalformedInput):
		return gameevents.CodeMalformedInput
	case errors.Is(err, gameservice.ErrInvalidLimit):
		return gameevents.CodeInvalidLimit
	default:
		return gameevents.CodeTransportFailure
	}
}
