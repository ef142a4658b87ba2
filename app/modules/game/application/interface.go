package gameservice

import (
	"context"
	"time"

	gamedomain "github.com/Black-And-White-Club/dart-stats/app/modules/game/domain"
	gameevents "github.com/Black-And-White-Club/dart-stats/app/modules/game/events"
	"github.com/Black-And-White-Club/dart-stats/internal/results"
)

// Result aliases keep the generic signatures readable.
type (
	RecordGameResult = results.OperationResult[gamedomain.GameRecord, error]
	GamesResult      = results.OperationResult[[]gamedomain.GameRecord, error]
	RankingsResult   = results.OperationResult[[]gamedomain.PlayerRanking, error]
	HistoryResult    = results.OperationResult[History, error]
	FileResult       = results.OperationResult[File, error]
)

// RankingsQuery selects the games rankings are computed over.
type RankingsQuery struct {
	UserID string
	// Limit <= 0 uses the configured default.
	Limit int
	// Identity overrides the name-based player merge.
	Identity gamedomain.IdentityFunc
}

// HistoryQuery selects the games grouped into months.
type HistoryQuery struct {
	UserID string
	Limit  int
	// Locales picks the month label language, best match first.
	Locales []string
	// Since drops games dated before it. Undated games are never grouped.
	Since *time.Time
}

// ChartQuery selects the player and games a chart is drawn from.
type ChartQuery struct {
	UserID string
	Limit  int
	Player string
}

// History is a user's games bucketed by calendar month.
type History struct {
	Groups        []gamedomain.MonthGroup `json:"groups"`
	MostRecentKey string                  `json:"mostRecentKey,omitempty"`
}

// File is a rendered artifact.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Service defines the contract for game statistics operations.
//
// Domain failures (malformed input, invalid limit) travel in the result's
// Failure; storage failures are returned as errors wrapping ErrAccessDenied,
// ErrTransportFailure or ErrSaveFailed.
type Service interface {
	// --- WRITE ---

	// RecordGame summarizes a finished game and stores it.
	RecordGame(ctx context.Context, req gameevents.GameRecordRequestedPayloadV1) (RecordGameResult, error)

	// --- READS ---

	ListGames(ctx context.Context, userID string, limit int) (GamesResult, error)
	GetRankings(ctx context.Context, q RankingsQuery) (RankingsResult, error)
	GetHistory(ctx context.Context, q HistoryQuery) (HistoryResult, error)

	// --- RENDERING ---

	ExportRankings(ctx context.Context, q RankingsQuery) (FileResult, error)
	RenderMonthlyAverageChart(ctx context.Context, q ChartQuery) (FileResult, error)
}
