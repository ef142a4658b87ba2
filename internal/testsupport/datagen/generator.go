// Package datagen builds plausible throw histories and game records for tests.
package datagen

import (
	"fmt"
	"time"

	gamedomain "github.com/Black-And-White-Club/dart-stats/app/modules/game/domain"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

// TestDataGenerator provides methods to create test data.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  uint64
}

// NewTestDataGenerator creates a generator; pass a seed for reproducible data.
func NewTestDataGenerator(seed ...uint64) *TestDataGenerator {
	var s uint64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = uint64(time.Now().UnixNano())
	}
	return &TestDataGenerator{
		faker: gofakeit.New(s),
		seed:  s,
	}
}

// Seed returns the seed the generator was built with.
func (g *TestDataGenerator) Seed() uint64 { return g.seed }

// PlayerName returns a random first name.
func (g *TestDataGenerator) PlayerName() string {
	return g.faker.FirstName()
}

// Leg simulates a single leg from startingScore until the player checks out
// or maxTurns is reached. Overshooting or leaving 1 is a bust.
func (g *TestDataGenerator) Leg(startingScore, maxTurns int) []gamedomain.ThrowEvent {
	running := startingScore
	events := make([]gamedomain.ThrowEvent, 0, maxTurns)

	for turn := 0; turn < maxTurns && running > 0; turn++ {
		darts := 3
		total := g.faker.IntRange(0, 140)
		if gamedomain.InCheckoutWindow(running) && g.faker.IntRange(0, 2) == 0 {
			total = running
			darts = g.faker.IntRange(1, 3)
		}

		after := running - total
		if after < 0 || after == 1 {
			events = append(events, gamedomain.ThrowEvent{
				ScoreAfter:  running,
				DartsThrown: darts,
				Total:       total,
				WasBust:     true,
			})
			continue
		}

		events = append(events, gamedomain.ThrowEvent{
			ScoreAfter:  after,
			DartsThrown: darts,
			Total:       total,
		})
		running = after
	}
	return events
}

// Players returns n distinct player histories for one game.
func (g *TestDataGenerator) Players(n, startingScore int) []gamedomain.PlayerHistory {
	players := make([]gamedomain.PlayerHistory, n)
	for i := range players {
		players[i] = gamedomain.PlayerHistory{
			Name:    fmt.Sprintf("%s-%d", g.PlayerName(), i),
			LegsWon: g.faker.IntRange(0, 3),
			Throws:  g.Leg(startingScore, 30),
		}
	}
	return players
}

// GameRecord builds a summarized record dated within the given range.
func (g *TestDataGenerator) GameRecord(userID string, players []gamedomain.PlayerHistory, from, to time.Time) gamedomain.GameRecord {
	rec, err := gamedomain.BuildGameRecord(userID, gamedomain.GameConfig{
		GameMode:   "501",
		FinishMode: gamedomain.FinishModeDouble,
		LegsPlayed: 3,
	}, players)
	if err != nil {
		panic(fmt.Sprintf("datagen: build game record: %v", err))
	}
	ts := g.faker.DateRange(from, to).UTC()
	rec.ID = uuid.NewString()
	rec.Timestamp = &ts
	return rec
}
