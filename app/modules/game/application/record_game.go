package gameservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	gamedomain "github.com/Black-And-White-Club/dart-stats/app/modules/game/domain"
	gameevents "github.com/Black-And-White-Club/dart-stats/app/modules/game/events"
	gamedb "github.com/Black-And-White-Club/dart-stats/app/modules/game/infrastructure/repositories"
	"github.com/Black-And-White-Club/dart-stats/internal/observability/attr"
	"github.com/Black-And-White-Club/dart-stats/internal/results"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/uptrace/bun"
)

// RecordGame validates a finished game, reduces every player's throw history
// into a summary, and appends the record. The record's ID and timestamp are
// assigned on insert. A failed write leaves nothing behind.
func (s *GameService) RecordGame(ctx context.Context, req gameevents.GameRecordRequestedPayloadV1) (RecordGameResult, error) {
	return withTelemetry(s, ctx, "RecordGame", req.UserID, func(ctx context.Context) (RecordGameResult, error) {
		cfg, players, err := toDomainGame(req)
		if err != nil {
			return results.FailureResult[gamedomain.GameRecord, error](err), nil
		}

		rec, err := gamedomain.BuildGameRecord(req.UserID, cfg, players)
		if err != nil {
			return results.FailureResult[gamedomain.GameRecord, error](fmt.Errorf("%w: %w", ErrMalformedInput, err)), nil
		}

		result, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (RecordGameResult, error) {
			row := gamedb.FromRecord(rec)
			if err := s.repo.Insert(ctx, db, row); err != nil {
				return RecordGameResult{}, err
			}
			return results.SuccessResult[gamedomain.GameRecord, error](row.ToRecord()), nil
		})
		if err != nil {
			return RecordGameResult{}, saveError(err)
		}

		stored := *result.Success
		s.metrics.RecordGameRecorded(ctx, stored.GameMode, len(stored.Players))
		s.publishRecorded(ctx, stored)
		return result, nil
	})
}

// publishRecorded announces a committed record. The write has already
// succeeded, so a publish failure is only logged.
func (s *GameService) publishRecorded(ctx context.Context, rec gamedomain.GameRecord) {
	if s.publisher == nil {
		return
	}

	payload, err := json.Marshal(gameevents.GameRecordedPayloadV1{Game: rec})
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to marshal game recorded payload",
			attr.GameID(rec.ID),
			attr.Error(err),
		)
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	correlationID := attr.CorrelationIDFromContext(ctx)
	if correlationID == "" {
		correlationID = watermill.NewUUID()
	}
	middleware.SetCorrelationID(correlationID, msg)
	msg.Metadata.Set("user_id", rec.UserID)
	msg.Metadata.Set("game_id", rec.ID)

	if err := s.publisher.Publish(gameevents.GameRecordedV1, msg); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish game recorded event",
			attr.ExtractCorrelationID(ctx),
			attr.GameID(rec.ID),
			attr.UserID(rec.UserID),
			attr.Error(err),
		)
	}
}

// toDomainGame checks a request and converts it into the summary builder's
// input. Missing scoreAfter or total is rejected, never defaulted.
func toDomainGame(req gameevents.GameRecordRequestedPayloadV1) (gamedomain.GameConfig, []gamedomain.PlayerHistory, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return gamedomain.GameConfig{}, nil, malformed("userId is required")
	}
	if len(req.Players) == 0 {
		return gamedomain.GameConfig{}, nil, malformed("%v", gamedomain.ErrNoPlayers)
	}
	if req.LegsPlayed < 1 {
		return gamedomain.GameConfig{}, nil, malformed("%v", gamedomain.ErrInvalidLegs)
	}

	cfg := gamedomain.GameConfig{
		GameMode:   strings.TrimSpace(req.GameMode),
		FinishMode: req.FinishMode,
		LegsPlayed: req.LegsPlayed,
	}
	if cfg.FinishMode == "" {
		cfg.FinishMode = gamedomain.FinishModeDouble
	}
	if _, err := cfg.StartingScore(); err != nil {
		return gamedomain.GameConfig{}, nil, malformed("%v", err)
	}

	players := make([]gamedomain.PlayerHistory, len(req.Players))
	for i, p := range req.Players {
		if strings.TrimSpace(p.Name) == "" {
			return gamedomain.GameConfig{}, nil, malformed("players[%d]: name is required", i)
		}
		if p.LegsWon < 0 {
			return gamedomain.GameConfig{}, nil, malformed("players[%d]: legsWon must not be negative", i)
		}

		throws := make([]gamedomain.ThrowEvent, len(p.ThrowHistory))
		for j, t := range p.ThrowHistory {
			ev, err := toThrowEvent(t)
			if err != nil {
				return gamedomain.GameConfig{}, nil, malformed("players[%d].throwHistory[%d]: %v", i, j, err)
			}
			throws[j] = ev
		}

		players[i] = gamedomain.PlayerHistory{
			Name:    strings.TrimSpace(p.Name),
			LegsWon: p.LegsWon,
			Throws:  throws,
		}
	}
	return cfg, players, nil
}

func toThrowEvent(t gameevents.ThrowInputV1) (gamedomain.ThrowEvent, error) {
	switch {
	case t.ScoreAfter == nil:
		return gamedomain.ThrowEvent{}, errors.New("scoreAfter is required")
	case t.Total == nil:
		return gamedomain.ThrowEvent{}, errors.New("total is required")
	case *t.ScoreAfter < 0:
		return gamedomain.ThrowEvent{}, errors.New("scoreAfter must not be negative")
	case *t.Total < 0:
		return gamedomain.ThrowEvent{}, errors.New("total must not be negative")
	}

	ev := gamedomain.ThrowEvent{
		ScoreAfter: *t.ScoreAfter,
		Total:      *t.Total,
		WasBust:    t.WasBust,
	}
	if t.DartsActuallyThrown != nil {
		d := *t.DartsActuallyThrown
		if d < 1 || d > gamedomain.DefaultDartsPerTurn {
			return gamedomain.ThrowEvent{}, errors.New("dartsActuallyThrown must be between 1 and 3")
		}
		ev.DartsThrown = d
	}
	return ev, nil
}
