package gamedomain

// Checkout-eligible window: the lowest non-zero finishable score and the
// highest score that can be finished in one visit under double-out rules.
const (
	MinCheckoutScore = 2
	MaxCheckoutScore = 170

	// DefaultDartsPerTurn applies when a turn does not record its dart count.
	DefaultDartsPerTurn = 3
)

// ThrowEvent is one turn in a player's throw history. Order is significant:
// the sequence of ScoreAfter values is the only record of the running score.
type ThrowEvent struct {
	ScoreAfter int `json:"scoreAfter"`
	// DartsThrown is 1..3; zero means the count was not recorded.
	DartsThrown int  `json:"dartsActuallyThrown,omitempty"`
	Total       int  `json:"total"`
	WasBust     bool `json:"wasBust"`
}

// Darts returns the number of darts the turn consumed.
func (e ThrowEvent) Darts() int {
	if e.DartsThrown <= 0 {
		return DefaultDartsPerTurn
	}
	return e.DartsThrown
}

// ThrowStats is what a single game's throw history reduces to.
type ThrowStats struct {
	TotalDarts        int
	TotalPoints       int
	Busts             int
	CheckoutAttempts  int
	CheckoutSuccesses int
	// Average is points per three darts, rounded to 2 decimals.
	Average        float64
	FinalRemaining int
}

// CheckoutPct returns successes/attempts as a percentage rounded to 1
// decimal, or nil when the player never stood in the checkout window.
func (s ThrowStats) CheckoutPct() *float64 {
	if s.CheckoutAttempts == 0 {
		return nil
	}
	pct := RoundTo(float64(s.CheckoutSuccesses)/float64(s.CheckoutAttempts)*100, 1)
	return &pct
}

// InCheckoutWindow reports whether a running score can be finished this turn.
func InCheckoutWindow(score int) bool {
	return score >= MinCheckoutScore && score <= MaxCheckoutScore
}

// ReduceThrows walks one player's history for a game that started at
// startingScore.
//
// Before each turn is applied, a running score inside the checkout window
// counts as a checkout attempt; the attempt succeeds when that same turn is
// not a bust and leaves zero. Bust turns consume darts but score nothing.
func ReduceThrows(startingScore int, events []ThrowEvent) ThrowStats {
	stats := ThrowStats{FinalRemaining: startingScore}
	running := startingScore

	for _, e := range events {
		stats.TotalDarts += e.Darts()

		if e.WasBust {
			stats.Busts++
		} else {
			stats.TotalPoints += e.Total
		}

		if InCheckoutWindow(running) {
			stats.CheckoutAttempts++
			if !e.WasBust && e.ScoreAfter == 0 {
				stats.CheckoutSuccesses++
			}
		}

		running = e.ScoreAfter
	}

	if len(events) > 0 {
		stats.FinalRemaining = running
	}
	stats.Average = PerThreeDarts(float64(stats.TotalPoints), stats.TotalDarts, 2)
	return stats
}
