// Package gamemetrics records game module metrics.
package gamemetrics

import (
	"context"
	"time"
)

// GameMetrics is the metrics surface used by the game service.
type GameMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, d time.Duration)
	RecordGameRecorded(ctx context.Context, gameMode string, players int)
	RecordPlayersRanked(ctx context.Context, players int)
}

type noop struct{}

// NewNoop returns a GameMetrics that discards everything.
func NewNoop() GameMetrics { return noop{} }

func (noop) RecordOperationAttempt(context.Context, string, string)                 {}
func (noop) RecordOperationSuccess(context.Context, string, string)                 {}
func (noop) RecordOperationFailure(context.Context, string, string)                 {}
func (noop) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (noop) RecordGameRecorded(context.Context, string, int)                        {}
func (noop) RecordPlayersRanked(context.Context, int)                               {}
