package gamehandlers

import (
	"context"
	"errors"

	gameservice "github.com/Black-And-White-Club/dart-stats/app/modules/game/application"
	gamedomain "github.com/Black-And-White-Club/dart-stats/app/modules/game/domain"
	gameevents "github.com/Black-And-White-Club/dart-stats/app/modules/game/events"
	"github.com/Black-And-White-Club/dart-stats/internal/handlerwrapper"
	"github.com/Black-And-White-Club/dart-stats/internal/observability/attr"
)

// HandleRankingsRequested answers a rankings request. A reply_to topic on the
// request overrides both the response and the failure topic.
func (h *GameHandlers) HandleRankingsRequested(ctx context.Context, payload *gameevents.RankingsRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload is nil")
	}

	result, err := h.service.GetRankings(ctx, gameservice.RankingsQuery{
		UserID: payload.UserID,
		Limit:  payload.Limit,
	})
	if err == nil && result.Failure != nil {
		err = *result.Failure
	}
	if err != nil {
		h.logger.WarnContext(ctx, "Rankings request failed",
			attr.ExtractCorrelationID(ctx),
			attr.UserID(payload.UserID),
			attr.Error(err),
		)
		return []handlerwrapper.Result{{
			Topic: handlerwrapper.ReplyTopic(ctx, gameevents.RankingsFailedV1),
			Payload: &gameevents.RankingsFailedPayloadV1{
				UserID: payload.UserID,
				Code:   failureCode(err),
				Reason: err.Error(),
			},
		}}, nil
	}

	resp := &gameevents.RankingsResponsePayloadV1{
		UserID:   payload.UserID,
		Rankings: []gamedomain.PlayerRanking{},
	}
	if result.Success != nil && *result.Success != nil {
		resp.Rankings = *result.Success
	}
	return []handlerwrapper.Result{{
		Topic:   handlerwrapper.ReplyTopic(ctx, gameevents.RankingsResponseV1),
		Payload: resp,
	}}, nil
}
