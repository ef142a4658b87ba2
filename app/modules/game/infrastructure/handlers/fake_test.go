package gamehandlers

import (
	"context"

	gameservice "github.com/Black-And-White-Club/dart-stats/app/modules/game/application"
	gamedomain "github.com/Black-And-White-Club/dart-stats/app/modules/game/domain"
	gameevents "github.com/Black-And-White-Club/dart-stats/app/modules/game/events"
	"github.com/Black-And-White-Club/dart-stats/internal/results"
)

// ------------------------
// Fake Game Service
// ------------------------

// FakeGameService provides a programmable stub for the gameservice.Service interface.
type FakeGameService struct {
	trace []string

	RecordGameFunc                func(ctx context.Context, req gameevents.GameRecordRequestedPayloadV1) (gameservice.RecordGameResult, error)
	ListGamesFunc                 func(ctx context.Context, userID string, limit int) (gameservice.GamesResult, error)
	GetRankingsFunc               func(ctx context.Context, q gameservice.RankingsQuery) (gameservice.RankingsResult, error)
	GetHistoryFunc                func(ctx context.Context, q gameservice.HistoryQuery) (gameservice.HistoryResult, error)
	ExportRankingsFunc            func(ctx context.Context, q gameservice.RankingsQuery) (gameservice.FileResult, error)
	RenderMonthlyAverageChartFunc func(ctx context.Context, q gameservice.ChartQuery) (gameservice.FileResult, error)
}

func NewFakeGameService() *FakeGameService {
	return &FakeGameService{trace: []string{}}
}

func (f *FakeGameService) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of service methods called.
func (f *FakeGameService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeGameService) RecordGame(ctx context.Context, req gameevents.GameRecordRequestedPayloadV1) (gameservice.RecordGameResult, error) {
	f.record("RecordGame")
	if f.RecordGameFunc != nil {
		return f.RecordGameFunc(ctx, req)
	}
	return results.SuccessResult[gamedomain.GameRecord, error](gamedomain.GameRecord{UserID: req.UserID}), nil
}

func (f *FakeGameService) ListGames(ctx context.Context, userID string, limit int) (gameservice.GamesResult, error) {
	f.record("ListGames")
	if f.ListGamesFunc != nil {
		return f.ListGamesFunc(ctx, userID, limit)
	}
	return results.SuccessResult[[]gamedomain.GameRecord, error](nil), nil
}

func (f *FakeGameService) GetRankings(ctx context.Context, q gameservice.RankingsQuery) (gameservice.RankingsResult, error) {
	f.record("GetRankings")
	if f.GetRankingsFunc != nil {
		return f.GetRankingsFunc(ctx, q)
	}
	return results.SuccessResult[[]gamedomain.PlayerRanking, error](nil), nil
}

func (f *FakeGameService) GetHistory(ctx context.Context, q gameservice.HistoryQuery) (gameservice.HistoryResult, error) {
	f.record("GetHistory")
	if f.GetHistoryFunc != nil {
		return f.GetHistoryFunc(ctx, q)
	}
	return results.SuccessResult[gameservice.History, error](gameservice.History{Groups: []gamedomain.MonthGroup{}}), nil
}

func (f *FakeGameService) ExportRankings(ctx context.Context, q gameservice.RankingsQuery) (gameservice.FileResult, error) {
	f.record("ExportRankings")
	if f.ExportRankingsFunc != nil {
		return f.ExportRankingsFunc(ctx, q)
	}
	return results.SuccessResult[gameservice.File, error](gameservice.File{}), nil
}

func (f *FakeGameService) RenderMonthlyAverageChart(ctx context.Context, q gameservice.ChartQuery) (gameservice.FileResult, error) {
	f.record("RenderMonthlyAverageChart")
	if f.RenderMonthlyAverageChartFunc != nil {
		return f.RenderMonthlyAverageChartFunc(ctx, q)
	}
	return results.SuccessResult[gameservice.File, error](gameservice.File{}), nil
}

var _ gameservice.Service = (*FakeGameService)(nil)
