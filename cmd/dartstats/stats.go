package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	gameservice "github.com/Black-And-White-Club/dart-stats/app/modules/game/application"
	gamedomain "github.com/Black-And-White-Club/dart-stats/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/dart-stats/app/modules/game/infrastructure/repositories"
	"github.com/Black-And-White-Club/dart-stats/db/bundb"
	gamemetrics "github.com/Black-And-White-Club/dart-stats/internal/observability/metrics/game"
	"github.com/urfave/cli/v2"
)

var (
	userFlag = &cli.StringFlag{
		Name:     "user",
		Usage:    "owner of the games",
		Required: true,
	}
	limitFlag = &cli.IntFlag{
		Name:  "limit",
		Usage: "number of most recent games to read (0 uses the configured default)",
	}
)

func newRankingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "rankings",
		Usage: "print player rankings over a user's recent games",
		Flags: []cli.Flag{
			userFlag,
			limitFlag,
			&cli.StringFlag{Name: "xlsx", Usage: "write the rankings to this spreadsheet instead"},
		},
		Action: withService(func(c *cli.Context, svc *gameservice.GameService) error {
			q := gameservice.RankingsQuery{UserID: c.String("user"), Limit: c.Int("limit")}

			if out := c.String("xlsx"); out != "" {
				result, err := svc.ExportRankings(c.Context, q)
				if err != nil {
					return err
				}
				if result.Failure != nil {
					return *result.Failure
				}
				if err := os.WriteFile(out, result.Success.Data, 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", out, err)
				}
				fmt.Fprintf(c.App.Writer, "Wrote %s\n", out)
				return nil
			}

			result, err := svc.GetRankings(c.Context, q)
			if err != nil {
				return err
			}
			if result.Failure != nil {
				return *result.Failure
			}
			return printRankings(c.App.Writer, *result.Success)
		}),
	}
}

func newHistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "print a user's games grouped by month",
		Flags: []cli.Flag{
			userFlag,
			limitFlag,
			&cli.StringFlag{Name: "since", Usage: `only games since this date or phrase ("2024-03-01", "last monday")`},
			&cli.StringFlag{Name: "lang", Usage: "month label language, e.g. de or pt-BR"},
		},
		Action: withService(func(c *cli.Context, svc *gameservice.GameService) error {
			q := gameservice.HistoryQuery{UserID: c.String("user"), Limit: c.Int("limit")}
			if lang := c.String("lang"); lang != "" {
				q.Locales = []string{lang}
			}
			if since := c.String("since"); since != "" {
				t, err := parseSince(since, time.Now())
				if err != nil {
					return err
				}
				q.Since = &t
			}

			result, err := svc.GetHistory(c.Context, q)
			if err != nil {
				return err
			}
			if result.Failure != nil {
				return *result.Failure
			}
			return printHistory(c.App.Writer, *result.Success)
		}),
	}
}

// withService runs action against a GameService on the configured database.
// Nothing is published from the CLI.
func withService(action func(c *cli.Context, svc *gameservice.GameService) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, obs, err := load(c)
		if err != nil {
			return err
		}
		loc, err := cfg.Stats.Location()
		if err != nil {
			return err
		}

		db, err := bundb.Open(c.Context, cfg.Postgres.DSN)
		if err != nil {
			return err
		}
		defer db.Close()

		svc := gameservice.NewGameService(
			gamedb.NewRepository(db),
			nil,
			obs.Logger,
			gamemetrics.NewNoop(),
			obs.Tracer,
			db,
			gameservice.Options{
				DefaultLimit:  cfg.Stats.DefaultLimit,
				MaxLimit:      cfg.Stats.MaxLimit,
				Location:      loc,
				DefaultLocale: cfg.Stats.Locale,
			},
		)
		return action(c, svc)
	}
}

func printRankings(w io.Writer, rankings []gamedomain.PlayerRanking) error {
	if len(rankings) == 0 {
		_, err := fmt.Fprintln(w, "No games recorded.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPLAYER\tGAMES\tWINS\tWIN %\tAVG/3\tCHECKOUT %")
	for i, r := range rankings {
		checkout := "-"
		if r.CheckoutPct != nil {
			checkout = fmt.Sprintf("%.1f", *r.CheckoutPct)
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%.1f\t%.1f\t%s\n",
			i+1, r.Name, r.GamesPlayed, r.Wins, r.WinPct, r.AvgPer3, checkout)
	}
	return tw.Flush()
}

func printHistory(w io.Writer, h gameservice.History) error {
	if len(h.Groups) == 0 {
		_, err := fmt.Fprintln(w, "No games recorded.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, g := range h.Groups {
		fmt.Fprintf(tw, "%s (%d)\n", g.Label, len(g.Games))
		for _, game := range g.Games {
			at := "-"
			if game.Timestamp != nil {
				at = game.Timestamp.Format("2006-01-02 15:04")
			}
			players := make([]string, len(game.Players))
			for i, p := range game.Players {
				players[i] = p.Name
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\twinner: %s\n", at, game.GameMode, strings.Join(players, ", "), game.Winner)
		}
	}
	return tw.Flush()
}
