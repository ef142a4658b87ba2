package gameservice

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	gamedomain "github.com/Black-And-White-Club/dart-stats/app/modules/game/domain"
	"github.com/Black-And-White-Club/dart-stats/internal/results"
	"github.com/xuri/excelize/v2"
)

const (
	rankingsSheet = "Rankings"
	xlsxType      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var rankingsHeader = []any{"Rank", "Player", "Games", "Wins", "Win %", "Avg / 3 darts", "Checkout %"}

// ExportRankings renders the user's rankings as an XLSX workbook with one
// row per player. An absent checkout% is left blank.
func (s *GameService) ExportRankings(ctx context.Context, q RankingsQuery) (FileResult, error) {
	return withTelemetry(s, ctx, "ExportRankings", q.UserID, func(ctx context.Context) (FileResult, error) {
		rankings, err := s.rankings(ctx, q)
		if errors.Is(err, ErrInvalidLimit) {
			return results.FailureResult[File, error](err), nil
		}
		if err != nil {
			return FileResult{}, err
		}

		data, err := buildRankingsWorkbook(rankings)
		if err != nil {
			return FileResult{}, err
		}
		return results.SuccessResult[File, error](File{
			Name:        fmt.Sprintf("rankings-%s.xlsx", q.UserID),
			ContentType: xlsxType,
			Data:        data,
		}), nil
	})
}

func buildRankingsWorkbook(rankings []gamedomain.PlayerRanking) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), rankingsSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(rankingsSheet, "A1", &rankingsHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range rankings {
		row := []any{i + 1, r.Name, r.GamesPlayed, r.Wins, r.WinPct, r.AvgPer3, nil}
		if r.CheckoutPct != nil {
			row[6] = *r.CheckoutPct
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(rankingsSheet, axis, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(rankingsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze header: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
