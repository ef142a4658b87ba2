package gameservice

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	gamedomain "github.com/Black-And-White-Club/dart-stats/app/modules/game/domain"
	"github.com/Black-And-White-Club/dart-stats/internal/results"
)

// ListGames returns up to limit of a user's games, most recent first.
func (s *GameService) ListGames(ctx context.Context, userID string, limit int) (GamesResult, error) {
	return withTelemetry(s, ctx, "ListGames", userID, func(ctx context.Context) (GamesResult, error) {
		games, err := s.fetchGames(ctx, userID, limit)
		if errors.Is(err, ErrInvalidLimit) {
			return results.FailureResult[[]gamedomain.GameRecord, error](err), nil
		}
		if err != nil {
			return GamesResult{}, err
		}
		return results.SuccessResult[[]gamedomain.GameRecord, error](games), nil
	})
}

// GetRankings ranks every player seen in the user's last games.
func (s *GameService) GetRankings(ctx context.Context, q RankingsQuery) (RankingsResult, error) {
	return withTelemetry(s, ctx, "GetRankings", q.UserID, func(ctx context.Context) (RankingsResult, error) {
		rankings, err := s.rankings(ctx, q)
		if errors.Is(err, ErrInvalidLimit) {
			return results.FailureResult[[]gamedomain.PlayerRanking, error](err), nil
		}
		if err != nil {
			return RankingsResult{}, err
		}
		return results.SuccessResult[[]gamedomain.PlayerRanking, error](rankings), nil
	})
}

// GetHistory groups the user's last games by calendar month.
func (s *GameService) GetHistory(ctx context.Context, q HistoryQuery) (HistoryResult, error) {
	return withTelemetry(s, ctx, "GetHistory", q.UserID, func(ctx context.Context) (HistoryResult, error) {
		games, err := s.fetchGames(ctx, q.UserID, q.Limit)
		if errors.Is(err, ErrInvalidLimit) {
			return results.FailureResult[History, error](err), nil
		}
		if err != nil {
			return HistoryResult{}, err
		}

		if q.Since != nil {
			games = slices.DeleteFunc(games, func(g gamedomain.GameRecord) bool {
				return g.Timestamp == nil || g.Timestamp.Before(*q.Since)
			})
		}

		locales := q.Locales
		if len(locales) == 0 {
			locales = []string{s.opts.DefaultLocale}
		}
		groups := gamedomain.GroupByMonth(games, s.opts.Location, gamedomain.MonthLabelerFor(locales...))
		if groups == nil {
			groups = []gamedomain.MonthGroup{}
		}

		h := History{Groups: groups}
		if key, ok := gamedomain.MostRecentKey(groups); ok {
			h.MostRecentKey = key
		}
		return results.SuccessResult[History, error](h), nil
	})
}

func (s *GameService) rankings(ctx context.Context, q RankingsQuery) ([]gamedomain.PlayerRanking, error) {
	games, err := s.fetchGames(ctx, q.UserID, q.Limit)
	if err != nil {
		return nil, err
	}
	rankings := gamedomain.AggregateRankings(games, q.Identity)
	s.metrics.RecordPlayersRanked(ctx, len(rankings))
	return rankings, nil
}

// fetchGames reads a user's games, most recent first. Storage errors come back
// mapped onto ErrAccessDenied or ErrTransportFailure.
func (s *GameService) fetchGames(ctx context.Context, userID string, limit int) ([]gamedomain.GameRecord, error) {
	n, err := s.resolveLimit(limit)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListByUser(ctx, nil, userID, n)
	if err != nil {
		return nil, storeError(err)
	}

	games := make([]gamedomain.GameRecord, len(rows))
	for i := range rows {
		games[i] = rows[i].ToRecord()
	}
	sortMostRecentFirst(games)
	return games, nil
}

func (s *GameService) resolveLimit(limit int) (int, error) {
	switch {
	case limit <= 0:
		return s.opts.DefaultLimit, nil
	case limit > s.opts.MaxLimit:
		return 0, fmt.Errorf("%w: %d exceeds maximum %d", ErrInvalidLimit, limit, s.opts.MaxLimit)
	}
	return limit, nil
}

// sortMostRecentFirst orders games by timestamp descending. Storage order is
// not trusted; an undated game counts as the Unix epoch.
func sortMostRecentFirst(games []gamedomain.GameRecord) {
	slices.SortStableFunc(games, func(a, b gamedomain.GameRecord) int {
		return timestampOrEpoch(b).Compare(timestampOrEpoch(a))
	})
}

func timestampOrEpoch(g gamedomain.GameRecord) time.Time {
	if g.Timestamp == nil {
		return time.Unix(0, 0)
	}
	return *g.Timestamp
}
