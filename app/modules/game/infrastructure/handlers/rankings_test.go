package gamehandlers

import (
	"context"
	"fmt"
	"testing"

	gameservice "github.com/Black-And-White-Club/dart-stats/app/modules/game/application"
	gamedomain "github.com/Black-And-White-Club/dart-stats/app/modules/game/domain"
	gameevents "github.com/Black-And-White-Club/dart-stats/app/modules/game/events"
	"github.com/Black-And-White-Club/dart-stats/internal/handlerwrapper"
	"github.com/Black-And-White-Club/dart-stats/internal/results"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameHandlers_HandleRankingsRequested(t *testing.T) {
	rankings := []gamedomain.PlayerRanking{{Name: "alice", GamesPlayed: 2, Wins: 1, WinPct: 50, AvgPer3: 60}}

	t.Run("response", func(t *testing.T) {
		svc := NewFakeGameService()
		var gotQuery gameservice.RankingsQuery
		svc.GetRankingsFunc = func(_ context.Context, q gameservice.RankingsQuery) (gameservice.RankingsResult, error) {
			gotQuery = q
			return results.SuccessResult[[]gamedomain.PlayerRanking, error](rankings), nil
		}

		out, err := newTestHandlers(svc).HandleRankingsRequested(context.Background(),
			&gameevents.RankingsRequestedPayloadV1{UserID: "user-1", Limit: 20})
		require.NoError(t, err)

		assert.Equal(t, "user-1", gotQuery.UserID)
		assert.Equal(t, 20, gotQuery.Limit)
		require.Len(t, out, 1)
		assert.Equal(t, gameevents.RankingsResponseV1, out[0].Topic)
		resp := out[0].Payload.(*gameevents.RankingsResponsePayloadV1)
		assert.Equal(t, rankings, resp.Rankings)
	})

	t.Run("reply_to overrides topic", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), handlerwrapper.CtxKeyReplyTo, "inbox.7")
		out, err := newTestHandlers(NewFakeGameService()).HandleRankingsRequested(ctx,
			&gameevents.RankingsRequestedPayloadV1{UserID: "user-1"})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "inbox.7", out[0].Topic)
		resp := out[0].Payload.(*gameevents.RankingsResponsePayloadV1)
		assert.NotNil(t, resp.Rankings)
		assert.Empty(t, resp.Rankings)
	})

	t.Run("invalid limit", func(t *testing.T) {
		svc := NewFakeGameService()
		svc.GetRankingsFunc = func(context.Context, gameservice.RankingsQuery) (gameservice.RankingsResult, error) {
			return results.FailureResult[[]gamedomain.PlayerRanking, error](fmt.Errorf("%w: 9000", gameservice.ErrInvalidLimit)), nil
		}
		out, err := newTestHandlers(svc).HandleRankingsRequested(context.Background(),
			&gameevents.RankingsRequestedPayloadV1{UserID: "user-1", Limit: 9000})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, gameevents.RankingsFailedV1, out[0].Topic)
		failed := out[0].Payload.(*gameevents.RankingsFailedPayloadV1)
		assert.Equal(t, gameevents.CodeInvalidLimit, failed.Code)
	})

	t.Run("storage error", func(t *testing.T) {
		svc := NewFakeGameService()
		svc.GetRankingsFunc = func(context.Context, gameservice.RankingsQuery) (gameservice.RankingsResult, error) {
			return gameservice.RankingsResult{}, fmt.Errorf("%w: conn reset", gameservice.ErrTransportFailure)
		}
		out, err := newTestHandlers(svc).HandleRankingsRequested(context.Background(),
			&gameevents.RankingsRequestedPayloadV1{UserID: "user-1"})
		require.NoError(t, err)
		require.Len(t, out, 1)
		failed := out[0].Payload.(*gameevents.RankingsFailedPayloadV1)
		assert.Equal(t, gameevents.CodeTransportFailure, failed.Code)
	})

	t.Run("nil payload", func(t *testing.T) {
		_, err := newTestHandlers(NewFakeGameService()).HandleRankingsRequested(context.Background(), nil)
		assert.Error(t, err)
	})
}
