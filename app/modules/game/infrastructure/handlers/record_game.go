package gamehandlers

import (
	"context"
	"errors"

	gameevents "github.com/Black-And-White-Club/dart-stats/app/modules/game/events"
	"github.com/Black-And-White-Club/dart-stats/internal/handlerwrapper"
	"github.com/Black-And-White-Club/dart-stats/internal/observability/attr"
)

// HandleGameRecordRequested records a finished game. The service announces
// success itself; the handler only emits game.record.failed.v1.
//
// Storage failures are reported rather than returned: the service never
// retries a write and neither does the router.
func (h *GameHandlers) HandleGameRecordRequested(ctx context.Context, payload *gameevents.GameRecordRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload is nil")
	}

	h.logger.InfoContext(ctx, "Received game record request",
		attr.ExtractCorrelationID(ctx),
		attr.UserID(payload.UserID),
		attr.Int("players", len(payload.Players)),
	)

	result, err := h.service.RecordGame(ctx, *payload)
	if err == nil && result.Failure != nil {
		err = *result.Failure
	}
	if err != nil {
		h.logger.WarnContext(ctx, "Game record request failed",
			attr.ExtractCorrelationID(ctx),
			attr.UserID(payload.UserID),
			attr.Error(err),
		)
		return []handlerwrapper.Result{{
			Topic: gameevents.GameRecordFailedV1,
			Payload: &gameevents.GameRecordFailedPayloadV1{
				UserID: payload.UserID,
				Code:   failureCode(err),
				Reason: err.Error(),
			},
		}}, nil
	}

	if result.Success != nil {
		h.logger.InfoContext(ctx, "Game recorded",
			attr.ExtractCorrelationID(ctx),
			attr.GameID(result.Success.ID),
		)
	}
	return nil, nil
}
