package gameservice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	gamedomain "github.com/Black-And-White-Club/dart-stats/app/modules/game/domain"
	"github.com/Black-And-White-Club/dart-stats/internal/results"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const pngType = "image/png"

// ChartPalette holds the colors used by rendered charts.
type ChartPalette struct {
	Background  drawing.Color
	PrimaryLine drawing.Color
	AccentLine  drawing.Color
	TextColor   drawing.Color
}

// DefaultChartPalette is a dark board-green theme.
var DefaultChartPalette = ChartPalette{
	Background:  drawing.ColorFromHex("10231b"),
	PrimaryLine: drawing.ColorFromHex("2f9e6b"),
	AccentLine:  drawing.ColorFromHex("d4a017"),
	TextColor:   drawing.ColorFromHex("e8efe9"),
}

// MonthlyAverage is a player's mean stored average for one calendar month.
type MonthlyAverage struct {
	Month   time.Time
	Average float64
	Games   int
}

// RenderMonthlyAverageChart draws a player's per-month mean three-dart
// average over the user's last games as a PNG.
func (s *GameService) RenderMonthlyAverageChart(ctx context.Context, q ChartQuery) (FileResult, error) {
	return withTelemetry(s, ctx, "RenderMonthlyAverageChart", q.UserID, func(ctx context.Context) (FileResult, error) {
		if q.Player == "" {
			return results.FailureResult[File, error](malformed("player is required")), nil
		}

		games, err := s.fetchGames(ctx, q.UserID, q.Limit)
		if errors.Is(err, ErrInvalidLimit) {
			return results.FailureResult[File, error](err), nil
		}
		if err != nil {
			return FileResult{}, err
		}

		points := MonthlyAverages(games, q.Player, s.opts.Location)
		data, err := GenerateMonthlyAverageChart(q.Player, points, DefaultChartPalette)
		if err != nil {
			return FileResult{}, fmt.Errorf("failed to render chart: %w", err)
		}
		return results.SuccessResult[File, error](File{
			Name:        fmt.Sprintf("%s-monthly-average.png", q.Player),
			ContentType: pngType,
			Data:        data,
		}), nil
	})
}

// MonthlyAverages buckets the named player's games by month and takes the
// plain mean of the stored averages. Undated games are skipped. The result is
// oldest month first.
func MonthlyAverages(games []gamedomain.GameRecord, player string, loc *time.Location) []MonthlyAverage {
	groups := gamedomain.GroupByMonth(games, loc, nil)
	if loc == nil {
		loc = time.UTC
	}

	var out []MonthlyAverage
	for _, g := range groups {
		var sum float64
		var n int
		for _, game := range g.Games {
			for _, p := range game.Players {
				if p.Name == player {
					sum += p.Average
					n++
				}
			}
		}
		if n == 0 {
			continue
		}
		out = append(out, MonthlyAverage{
			Month:   time.Date(g.Key.Year, time.Month(g.Key.Month+1), 1, 0, 0, 0, 0, loc),
			Average: gamedomain.RoundTo(sum/float64(n), 2),
			Games:   n,
		})
	}
	slices.Reverse(out)
	return out
}

// GenerateMonthlyAverageChart produces a PNG line chart of monthly averages.
func GenerateMonthlyAverageChart(player string, points []MonthlyAverage, palette ChartPalette) ([]byte, error) {
	if len(points) == 0 {
		return renderNoDataPlaceholder(palette, "No games found for "+player)
	}

	xValues := make([]time.Time, len(points))
	yValues := make([]float64, len(points))
	maxAvg := 0.0
	for i, p := range points {
		xValues[i] = p.Month
		yValues[i] = p.Average
		maxAvg = max(maxAvg, p.Average)
	}

	// go-chart rejects a zero-width range, so a single month is padded.
	first, last := xValues[0], xValues[len(xValues)-1]
	if first.Equal(last) {
		first = first.AddDate(0, 0, -15)
		last = last.AddDate(0, 0, 15)
	}

	series := chart.TimeSeries{
		Name:    player,
		XValues: xValues,
		YValues: yValues,
		Style: chart.Style{
			StrokeColor: palette.PrimaryLine,
			StrokeWidth: 2,
			DotWidth:    4,
			DotColor:    palette.AccentLine,
		},
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{
			Name:           "Month",
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01"),
			Range: &chart.ContinuousRange{
				Min: chart.TimeToFloat64(first),
				Max: chart.TimeToFloat64(last),
			},
			Style: chart.Style{
				FontColor: palette.TextColor,
			},
		},
		YAxis: chart.YAxis{
			Name: "Average per 3 darts",
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: maxAvg + 10,
			},
			Style: chart.Style{
				FontColor: palette.TextColor,
			},
		},
		Series: []chart.Series{series},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// renderNoDataPlaceholder draws the message straight onto a PNG renderer.
// chart.Chart refuses to render without a series, so it is not used here.
func renderNoDataPlaceholder(palette ChartPalette, msg string) ([]byte, error) {
	const (
		width  = 400
		height = 200
	)

	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}
	r, err := chart.PNG(width, height)
	if err != nil {
		return nil, err
	}
	r.SetDPI(chart.DefaultDPI)

	chart.Draw.Box(r, chart.Box{Right: width, Bottom: height}, chart.Style{
		FillColor:   palette.Background,
		StrokeColor: palette.Background,
		StrokeWidth: 1,
	})

	r.SetFont(font)
	r.SetFontColor(palette.TextColor)
	r.SetFontSize(12.0)
	tb := r.MeasureText(msg)
	r.Text(msg, (width-tb.Width())/2, (height+tb.Height())/2)

	buffer := bytes.NewBuffer([]byte{})
	if err := r.Save(buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
