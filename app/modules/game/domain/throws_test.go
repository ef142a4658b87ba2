package gamedomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReduceThrows(t *testing.T) {
	tests := []struct {
		name          string
		start         int
		events        []ThrowEvent
		wantDarts     int
		wantPoints    int
		wantBusts     int
		wantAttempts  int
		wantSuccesses int
		wantAverage   float64
		wantRemaining int
		wantPct       *float64
	}{
		{
			name:          "no throws",
			start:         501,
			wantRemaining: 501,
		},
		{
			name:  "full leg with bust and checkout",
			start: 301,
			events: []ThrowEvent{
				{ScoreAfter: 161, Total: 140},
				{ScoreAfter: 61, DartsThrown: 3, Total: 100},
				{ScoreAfter: 61, DartsThrown: 3, Total: 70, WasBust: true},
				{ScoreAfter: 0, DartsThrown: 2, Total: 61},
			},
			wantDarts:     11,
			wantPoints:    301,
			wantBusts:     1,
			wantAttempts:  3,
			wantSuccesses: 1,
			wantAverage:   82.09,
			wantRemaining: 0,
			wantPct:       ptr(33.3),
		},
		{
			name:  "starting inside the window counts the first turn",
			start: 170,
			events: []ThrowEvent{
				{ScoreAfter: 110, Total: 60},
			},
			wantDarts:     3,
			wantPoints:    60,
			wantAttempts:  1,
			wantAverage:   60,
			wantRemaining: 110,
			wantPct:       ptr(0),
		},
		{
			name:  "one above the window is not an attempt",
			start: 171,
			events: []ThrowEvent{
				{ScoreAfter: 111, Total: 60},
			},
			wantDarts:     3,
			wantPoints:    60,
			wantAverage:   60,
			wantRemaining: 111,
		},
		{
			name:  "finish from outside the window does not crash",
			start: 501,
			events: []ThrowEvent{
				{ScoreAfter: 0, Total: 501},
			},
			wantDarts:     3,
			wantPoints:    501,
			wantAverage:   501,
			wantRemaining: 0,
		},
		{
			name:  "bust that reports zero is not a checkout",
			start: 40,
			events: []ThrowEvent{
				{ScoreAfter: 0, Total: 40, WasBust: true},
			},
			wantDarts:     3,
			wantBusts:     1,
			wantAttempts:  1,
			wantRemaining: 0,
			wantPct:       ptr(0),
		},
		{
			name:  "score of one is outside the window",
			start: 1,
			events: []ThrowEvent{
				{ScoreAfter: 1, Total: 0, WasBust: true},
			},
			wantDarts:     3,
			wantBusts:     1,
			wantRemaining: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReduceThrows(tt.start, tt.events)

			assert.Equal(t, tt.wantDarts, got.TotalDarts, "darts")
			assert.Equal(t, tt.wantPoints, got.TotalPoints, "points")
			assert.Equal(t, tt.wantBusts, got.Busts, "busts")
			assert.Equal(t, tt.wantAttempts, got.CheckoutAttempts, "attempts")
			assert.Equal(t, tt.wantSuccesses, got.CheckoutSuccesses, "successes")
			assert.InDelta(t, tt.wantAverage, got.Average, 1e-9, "average")
			assert.Equal(t, tt.wantRemaining, got.FinalRemaining, "remaining")

			if tt.wantPct == nil {
				assert.Nil(t, got.CheckoutPct())
			} else if assert.NotNil(t, got.CheckoutPct()) {
				assert.InDelta(t, *tt.wantPct, *got.CheckoutPct(), 1e-9)
			}
		})
	}
}

func TestReduceThrows_MultipleLegs(t *testing.T) {
	// The running score drops to zero at the end of a leg, so the first turn
	// of the next leg is never an attempt.
	events := []ThrowEvent{
		{ScoreAfter: 40, Total: 61},
		{ScoreAfter: 0, Total: 40},
		{ScoreAfter: 41, Total: 60},
		{ScoreAfter: 0, Total: 41},
	}
	got := ReduceThrows(101, events)

	assert.Equal(t, 3, got.CheckoutAttempts)
	assert.Equal(t, 2, got.CheckoutSuccesses)
	assert.Equal(t, 12, got.TotalDarts)
	assert.Equal(t, 202, got.TotalPoints)
}

func TestThrowEvent_Darts(t *testing.T) {
	assert.Equal(t, 3, ThrowEvent{}.Darts())
	assert.Equal(t, 1, ThrowEvent{DartsThrown: 1}.Darts())
	assert.Equal(t, 2, ThrowEvent{DartsThrown: 2}.Darts())
}

func TestInCheckoutWindow(t *testing.T) {
	for score, want := range map[int]bool{0: false, 1: false, 2: true, 100: true, 170: true, 171: false} {
		assert.Equal(t, want, InCheckoutWindow(score), "score %d", score)
	}
}

func ptr(v float64) *float64 { return &v }
