package gameevents

import gamedomain "github.com/Black-And-White-Club/dart-stats/app/modules/game/domain"

// ThrowInputV1 is one turn as submitted by a client. Numeric fields are
// pointers so a missing value can be told apart from zero.
type ThrowInputV1 struct {
	ScoreAfter          *int `json:"scoreAfter"`
	DartsActuallyThrown *int `json:"dartsActuallyThrown,omitempty"`
	Total               *int `json:"total"`
	WasBust             bool `json:"wasBust"`
}

// PlayerInputV1 is one player's result and full throw history.
type PlayerInputV1 struct {
	Name         string         `json:"name"`
	LegsWon      int            `json:"legsWon"`
	ThrowHistory []ThrowInputV1 `json:"throwHistory"`
}

// GameRecordRequestedPayloadV1 is a finished game awaiting summarization.
type GameRecordRequestedPayloadV1 struct {
	UserID     string          `json:"userId"`
	GameMode   string          `json:"gameMode"`
	FinishMode string          `json:"finishMode,omitempty"`
	LegsPlayed int             `json:"legsPlayed"`
	Players    []PlayerInputV1 `json:"players"`
}

// GameRecordedPayloadV1 announces a committed game record.
type GameRecordedPayloadV1 struct {
	Game gamedomain.GameRecord `json:"game"`
}

// Failure codes carried by failure payloads.
const (
	CodeMalformedInput   = "malformed_input"
	CodeAccessDenied     = "access_denied"
	CodeTransportFailure = "transport_failure"
	CodeInvalidLimit     = "invalid_limit"
)

// GameRecordFailedPayloadV1 reports why a record request was not stored.
type GameRecordFailedPayloadV1 struct {
	UserID string `json:"userId"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// RankingsRequestedPayloadV1 asks for rankings over a user's last Limit games.
// Limit <= 0 means the configured default.
type RankingsRequestedPayloadV1 struct {
	UserID string `json:"userId"`
	Limit  int    `json:"limit,omitempty"`
}

// RankingsResponsePayloadV1 carries computed rankings.
type RankingsResponsePayloadV1 struct {
	UserID   string                     `json:"userId"`
	Rankings []gamedomain.PlayerRanking `json:"rankings"`
}

// RankingsFailedPayloadV1 reports why rankings could not be computed.
type RankingsFailedPayloadV1 struct {
	UserID string `json:"userId"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
}
