package gamedb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new game repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// Insert stores a game and reads back the server-assigned timestamp.
func (r *Impl) Insert(ctx context.Context, db bun.IDB, game *Game) error {
	db = r.resolveDB(db)
	if game.ID == uuid.Nil {
		game.ID = uuid.New()
	}
	// The timestamp always comes from the database clock.
	game.CreatedAt = nil

	_, err := db.NewInsert().
		Model(game).
		Returning("created_at").
		Exec(ctx)
	if err != nil {
		return classify(fmt.Errorf("failed to insert game: %w", err))
	}
	return nil
}

// ListByUser returns a user's games, most recent first. Rows without a
// timestamp sort last.
func (r *Impl) ListByUser(ctx context.Context, db bun.IDB, userID string, limit int) ([]Game, error) {
	db = r.resolveDB(db)
	var games []Game
	q := db.NewSelect().
		Model(&games).
		Where("user_id = ?", userID).
		OrderExpr("created_at DESC NULLS LAST").
		OrderExpr("id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, classify(fmt.Errorf("failed to list games: %w", err))
	}
	return games, nil
}
