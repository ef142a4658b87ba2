package gamedomain

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summary(name string, avg float64, darts int, pct *float64) PlayerGameSummary {
	return PlayerGameSummary{Name: name, Average: avg, TotalDarts: darts, CheckoutPct: pct}
}

func TestAggregateRankings(t *testing.T) {
	records := []GameRecord{
		{
			Winner: "alice",
			Players: []PlayerGameSummary{
				summary("alice", 60, 30, ptr(50)),
				summary("bob", 45, 30, nil),
			},
		},
		{
			Winner: "bob",
			Players: []PlayerGameSummary{
				summary("alice", 90, 30, ptr(100)),
				summary("bob", 45, 30, nil),
			},
		},
		{
			Winner: "alice",
			Players: []PlayerGameSummary{
				summary("alice", 30, 30, nil),
			},
		},
	}

	got := AggregateRankings(records, nil)

	want := []PlayerRanking{
		{Name: "alice", GamesPlayed: 3, Wins: 2, WinPct: 66.7, AvgPer3: 60, CheckoutPct: ptr(75)},
		{Name: "bob", GamesPlayed: 2, Wins: 1, WinPct: 50, AvgPer3: 45},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AggregateRankings() mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateRankings_Ordering(t *testing.T) {
	records := []GameRecord{
		{
			Winner: "erin",
			Players: []PlayerGameSummary{
				summary("carol", 70, 21, nil),
				summary("dave", 80, 21, nil),
				summary("erin", 50, 21, nil),
				summary("frank", 70, 21, nil),
			},
		},
	}

	got := AggregateRankings(records, NameIdentity)

	names := make([]string, len(got))
	for i, r := range got {
		names[i] = r.Name
	}
	// erin wins on win%, dave beats carol on average, carol and frank tie
	// completely and keep first-seen order.
	assert.Equal(t, []string{"erin", "dave", "carol", "frank"}, names)
}

func TestAggregateRankings_Empty(t *testing.T) {
	got := AggregateRankings(nil, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAggregateRankings_ZeroDarts(t *testing.T) {
	got := AggregateRankings([]GameRecord{
		{Winner: "alice", Players: []PlayerGameSummary{summary("alice", 0, 0, nil)}},
	}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, 0.0, got[0].AvgPer3)
	assert.Equal(t, 100.0, got[0].WinPct)
	assert.Nil(t, got[0].CheckoutPct)
}

func TestAggregateRankings_CustomIdentity(t *testing.T) {
	records := []GameRecord{
		{Winner: "Alice", Players: []PlayerGameSummary{summary("Alice", 60, 3, nil)}},
		{Winner: "bob", Players: []PlayerGameSummary{summary("alice", 30, 3, nil), summary("bob", 30, 3, nil)}},
	}
	lower := func(p PlayerGameSummary) string { return strings.ToLower(p.Name) }

	got := AggregateRankings(records, lower)
	require.Len(t, got, 2)
	assert.Equal(t, "bob", got[0].Name)

	alice := got[1]
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, 2, alice.GamesPlayed)
	assert.Equal(t, 1, alice.Wins)
	assert.Equal(t, 45.0, alice.AvgPer3)

	// Without the custom identity the two spellings stay apart.
	assert.Len(t, AggregateRankings(records, nil), 3)
}
