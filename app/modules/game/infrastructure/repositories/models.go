package gamedb

import (
	"time"

	gamedomain "github.com/Black-And-White-Club/dart-stats/app/modules/game/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Game is one completed game owned by a user.
type Game struct {
	bun.BaseModel `bun:"table:games,alias:g"`

	ID     uuid.UUID `bun:"id,pk,type:uuid"`
	UserID string    `bun:"user_id,notnull"`
	// CreatedAt is assigned by the database on insert.
	CreatedAt  *time.Time                     `bun:"created_at,nullzero,default:current_timestamp"`
	GameMode   string                         `bun:"game_mode,notnull"`
	FinishMode string                         `bun:"finish_mode,notnull"`
	LegsPlayed int                            `bun:"legs_played,notnull"`
	Winner     string                         `bun:"winner,notnull"`
	Players    []gamedomain.PlayerGameSummary `bun:"players,type:jsonb,notnull"`
}

// ToRecord converts the row into the domain record.
func (g *Game) ToRecord() gamedomain.GameRecord {
	rec := gamedomain.GameRecord{
		UserID:     g.UserID,
		Timestamp:  g.CreatedAt,
		GameMode:   g.GameMode,
		FinishMode: g.FinishMode,
		LegsPlayed: g.LegsPlayed,
		Winner:     g.Winner,
		Players:    g.Players,
	}
	if g.ID != uuid.Nil {
		rec.ID = g.ID.String()
	}
	return rec
}

// FromRecord builds a row from a domain record. An empty or malformed ID
// yields uuid.Nil, which Insert replaces.
func FromRecord(rec gamedomain.GameRecord) *Game {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		id = uuid.Nil
	}
	return &Game{
		ID:         id,
		UserID:     rec.UserID,
		CreatedAt:  rec.Timestamp,
		GameMode:   rec.GameMode,
		FinishMode: rec.FinishMode,
		LegsPlayed: rec.LegsPlayed,
		Winner:     rec.Winner,
		Players:    rec.Players,
	}
}
