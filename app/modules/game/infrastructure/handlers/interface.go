package gamehandlers

import (
	"context"
	"net/http"

	gameevents "github.com/Black-And-White-Club/dart-stats/app/modules/game/events"
	"github.com/Black-And-White-Club/dart-stats/internal/handlerwrapper"
)

// Handlers defines the event handlers of the game module.
type Handlers interface {
	HandleGameRecordRequested(ctx context.Context, payload *gameevents.GameRecordRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleRankingsRequested(ctx context.Context, payload *gameevents.RankingsRequestedPayloadV1) ([]handlerwrapper.Result, error)
}

// HTTPHandlers defines the HTTP endpoints of the game module.
type HTTPHandlers interface {
	HandleHTTPRecordGame(w http.ResponseWriter, r *http.Request)
	HandleHTTPListGames(w http.ResponseWriter, r *http.Request)
	HandleHTTPRankings(w http.ResponseWriter, r *http.Request)
	HandleHTTPRankingsExport(w http.ResponseWriter, r *http.Request)
	HandleHTTPHistory(w http.ResponseWriter, r *http.Request)
	HandleHTTPPlayerChart(w http.ResponseWriter, r *http.Request)
}
