package gamemigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating games table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS games (
					id UUID PRIMARY KEY,
					user_id TEXT NOT NULL,
					created_at TIMESTAMPTZ DEFAULT NOW(),
					game_mode VARCHAR(16) NOT NULL,
					finish_mode VARCHAR(16) NOT NULL DEFAULT 'double',
					legs_played INTEGER NOT NULL CHECK (legs_played >= 1),
					winner TEXT NOT NULL,
					players JSONB NOT NULL
				);
			`); err != nil {
				return fmt.Errorf("failed to create games table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS idx_games_user_created
				ON games (user_id, created_at DESC NULLS LAST);
			`); err != nil {
				return fmt.Errorf("failed to create games index: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping games table...")
		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS games;`); err != nil {
			return fmt.Errorf("failed to drop games table: %w", err)
		}
		return nil
	})
}
