package gamedomain

import (
	"cmp"
	"slices"
)

// PlayerRanking is a player's cross-game aggregate. It is recomputed from
// stored summaries every time and never persisted.
type PlayerRanking struct {
	Name        string   `json:"name"`
	GamesPlayed int      `json:"gamesPlayed"`
	Wins        int      `json:"wins"`
	WinPct      float64  `json:"winPct"`
	AvgPer3     float64  `json:"avgPer3"`
	CheckoutPct *float64 `json:"checkoutPct"`
}

// IdentityFunc maps a player summary to the key rankings merge on.
type IdentityFunc func(PlayerGameSummary) string

// NameIdentity merges players by name, so two people sharing a name are one.
func NameIdentity(p PlayerGameSummary) string { return p.Name }

type rankingAccumulator struct {
	name          string
	gamesPlayed   int
	wins          int
	totalPoints   float64
	totalDarts    int
	checkoutSum   float64
	checkoutGames int
}

// AggregateRankings rebuilds approximate per-player totals from game
// summaries and ranks them by win% then average, both descending.
//
// Points are reconstructed from each stored average (average*darts/3), so the
// result is only as precise as that rounding. Checkout% is the unweighted
// mean of per-game percentages: every game with a checkout% counts once
// regardless of how many attempts it held.
func AggregateRankings(records []GameRecord, identity IdentityFunc) []PlayerRanking {
	if identity == nil {
		identity = NameIdentity
	}

	byKey := make(map[string]*rankingAccumulator)
	var order []string

	for _, game := range records {
		for _, p := range game.Players {
			key := identity(p)
			acc, ok := byKey[key]
			if !ok {
				acc = &rankingAccumulator{name: p.Name}
				byKey[key] = acc
				order = append(order, key)
			}

			acc.gamesPlayed++
			if p.Name == game.Winner {
				acc.wins++
			}
			acc.totalPoints += PointsFromAverage(p.Average, p.TotalDarts)
			acc.totalDarts += p.TotalDarts
			if p.CheckoutPct != nil {
				acc.checkoutSum += *p.CheckoutPct
				acc.checkoutGames++
			}
		}
	}

	rankings := make([]PlayerRanking, 0, len(order))
	for _, key := range order {
		acc := byKey[key]
		r := PlayerRanking{
			Name:        acc.name,
			GamesPlayed: acc.gamesPlayed,
			Wins:        acc.wins,
			AvgPer3:     PerThreeDarts(acc.totalPoints, acc.totalDarts, 1),
		}
		if acc.gamesPlayed > 0 {
			r.WinPct = RoundTo(float64(acc.wins)/float64(acc.gamesPlayed)*100, 1)
		}
		if acc.checkoutGames > 0 {
			pct := RoundTo(acc.checkoutSum/float64(acc.checkoutGames), 1)
			r.CheckoutPct = &pct
		}
		rankings = append(rankings, r)
	}

	slices.SortStableFunc(rankings, func(a, b PlayerRanking) int {
		if c := cmp.Compare(b.WinPct, a.WinPct); c != 0 {
			return c
		}
		return cmp.Compare(b.AvgPer3, a.AvgPer3)
	})
	return rankings
}
