package gamedb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for game persistence.
//
// Error semantics:
//   - ErrAccessDenied: the backend refused the caller (permissions, auth)
//   - ErrTransport: the backend could not be reached or dropped the connection
//   - Other errors: query or decoding failures
type Repository interface {
	// Insert stores a game. The ID is generated when empty and CreatedAt is
	// populated from the database clock.
	Insert(ctx context.Context, db bun.IDB, game *Game) error

	// ListByUser returns up to limit games for userID, most recent first.
	// A limit <= 0 means no limit.
	ListByUser(ctx context.Context, db bun.IDB, userID string, limit int) ([]Game, error)
}
