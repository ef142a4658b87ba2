package main

import (
	"bytes"
	"testing"
	"time"

	gameservice "github.com/Black-And-White-Club/dart-stats/app/modules/game/application"
	gamedomain "github.com/Black-And-White-Club/dart-stats/app/modules/game/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintRankings(t *testing.T) {
	var buf bytes.Buffer
	checkout := 50.0
	require.NoError(t, printRankings(&buf, []gamedomain.PlayerRanking{
		{Name: "alice", GamesPlayed: 3, Wins: 2, WinPct: 66.7, AvgPer3: 60, CheckoutPct: &checkout},
		{Name: "bob", GamesPlayed: 2, Wins: 0, WinPct: 0, AvgPer3: 45},
	}))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[0]), "PLAYER")
	assert.Regexp(t, `^1\s+alice\s+3\s+2\s+66\.7\s+60\.0\s+50\.0$`, string(lines[1]))
	assert.Regexp(t, `^2\s+bob\s+2\s+0\s+0\.0\s+45\.0\s+-$`, string(lines[2]))

	buf.Reset()
	require.NoError(t, printRankings(&buf, nil))
	assert.Equal(t, "No games recorded.\n", buf.String())
}

func TestPrintHistory(t *testing.T) {
	ts := time.Date(2024, 3, 5, 18, 30, 0, 0, time.UTC)
	var buf bytes.Buffer
	require.NoError(t, printHistory(&buf, gameservice.History{
		Groups: []gamedomain.MonthGroup{{
			SortKey: "2024-03",
			Label:   "March 2024",
			Games: []gamedomain.GameRecord{{
				Timestamp: &ts,
				GameMode:  "501",
				Winner:    "alice",
				Players:   []gamedomain.PlayerGameSummary{{Name: "alice"}, {Name: "bob"}},
			}},
		}},
		MostRecentKey: "2024-03",
	}))

	out := buf.String()
	assert.Contains(t, out, "March 2024 (1)")
	assert.Contains(t, out, "2024-03-05 18:30")
	assert.Contains(t, out, "alice, bob")
	assert.Contains(t, out, "winner: alice")
}
