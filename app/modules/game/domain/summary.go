package gamedomain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FinishModeDouble is the standard double-out finish.
const FinishModeDouble = "double"

// GameConfig describes how a finished game was played.
type GameConfig struct {
	// GameMode is the starting score label, e.g. "501".
	GameMode   string
	FinishMode string
	LegsPlayed int
}

// StartingScore parses GameMode into the score every leg starts from.
func (c GameConfig) StartingScore() (int, error) {
	score, err := strconv.Atoi(strings.TrimSpace(c.GameMode))
	if err != nil || score <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidGameMode, c.GameMode)
	}
	return score, nil
}

// PlayerHistory is one player's full throw history for a finished game.
type PlayerHistory struct {
	Name    string
	LegsWon int
	Throws  []ThrowEvent
}

// PlayerGameSummary is the persisted, lossy summary of one player's game.
// Raw throws are not kept: only average, dart count and checkout% survive.
type PlayerGameSummary struct {
	Name        string   `json:"name"`
	LegsWon     int      `json:"legsWon"`
	Average     float64  `json:"average"`
	TotalDarts  int      `json:"totalDarts"`
	Remaining   int      `json:"remaining"`
	Busts       int      `json:"busts"`
	CheckoutPct *float64 `json:"checkoutPct,omitempty"`
}

// GameRecord is an immutable record of one completed game.
type GameRecord struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	// Timestamp is assigned by storage; nil until the write has committed.
	Timestamp  *time.Time          `json:"timestamp"`
	GameMode   string              `json:"gameMode"`
	FinishMode string              `json:"finishMode"`
	LegsPlayed int                 `json:"legsPlayed"`
	Winner     string              `json:"winner"`
	Players    []PlayerGameSummary `json:"players"`
}

// SummarizePlayer reduces a player's history into its persisted summary.
func SummarizePlayer(startingScore int, p PlayerHistory) PlayerGameSummary {
	stats := ReduceThrows(startingScore, p.Throws)
	return PlayerGameSummary{
		Name:        p.Name,
		LegsWon:     p.LegsWon,
		Average:     stats.Average,
		TotalDarts:  stats.TotalDarts,
		Remaining:   stats.FinalRemaining,
		Busts:       stats.Busts,
		CheckoutPct: stats.CheckoutPct(),
	}
}

// SelectWinner picks the player with the most legs won, then the lowest
// remaining score; remaining ties go to the earliest player in input order.
// It returns -1 for an empty slice.
func SelectWinner(players []PlayerGameSummary) int {
	best := -1
	for i, p := range players {
		if best < 0 {
			best = i
			continue
		}
		b := players[best]
		if p.LegsWon > b.LegsWon || (p.LegsWon == b.LegsWon && p.Remaining < b.Remaining) {
			best = i
		}
	}
	return best
}

// checkDistinctNames rejects a game where two players share a name once
// surrounding whitespace is ignored.
func checkDistinctNames(players []PlayerHistory) error {
	seen := make(map[string]int, len(players))
	for i, p := range players {
		name := strings.TrimSpace(p.Name)
		if j, ok := seen[name]; ok {
			return fmt.Errorf("%w: %q at players[%d] and players[%d]", ErrDuplicatePlayer, name, j, i)
		}
		seen[name] = i
	}
	return nil
}

// BuildGameRecord summarizes every player of a finished game and selects the
// winner. ID and Timestamp are left for storage to assign.
func BuildGameRecord(userID string, cfg GameConfig, players []PlayerHistory) (GameRecord, error) {
	if len(players) == 0 {
		return GameRecord{}, ErrNoPlayers
	}
	if cfg.LegsPlayed < 1 {
		return GameRecord{}, ErrInvalidLegs
	}
	start, err := cfg.StartingScore()
	if err != nil {
		return GameRecord{}, err
	}
	if err := checkDistinctNames(players); err != nil {
		return GameRecord{}, err
	}

	summaries := make([]PlayerGameSummary, len(players))
	for i, p := range players {
		summaries[i] = SummarizePlayer(start, p)
	}

	return GameRecord{
		UserID:     userID,
		GameMode:   cfg.GameMode,
		FinishMode: cfg.FinishMode,
		LegsPlayed: cfg.LegsPlayed,
		Winner:     summaries[SelectWinner(summaries)].Name,
		Players:    summaries,
	}, nil
}
