package gamehandlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	gameservice "github.com/Black-And-White-Club/dart-stats/app/modules/game/application"
	gamedomain "github.com/Black-And-White-Club/dart-stats/app/modules/game/domain"
	gameevents "github.com/Black-And-White-Club/dart-stats/app/modules/game/events"
	"github.com/Black-And-White-Club/dart-stats/internal/observability/attr"
	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"
)

const maxRequestBody = 1 << 20

func (h *GameHandlers) HandleHTTPRecordGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req gameevents.GameRecordRequestedPayloadV1
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.UserID = chi.URLParam(r, "userID")

	result, err := h.service.RecordGame(ctx, req)
	if !h.ok(w, r, result.Failure, err) {
		return
	}
	writeJSON(w, http.StatusCreated, result.Success)
}

func (h *GameHandlers) HandleHTTPListGames(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r)
	if !ok {
		return
	}

	result, err := h.service.ListGames(r.Context(), chi.URLParam(r, "userID"), limit)
	if !h.ok(w, r, result.Failure, err) {
		return
	}
	games := *result.Success
	if games == nil {
		games = []gamedomain.GameRecord{}
	}
	writeJSON(w, http.StatusOK, games)
}

func (h *GameHandlers) HandleHTTPRankings(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r)
	if !ok {
		return
	}

	result, err := h.service.GetRankings(r.Context(), gameservice.RankingsQuery{
		UserID: chi.URLParam(r, "userID"),
		Limit:  limit,
	})
	if !h.ok(w, r, result.Failure, err) {
		return
	}
	rankings := *result.Success
	if rankings == nil {
		rankings = []gamedomain.PlayerRanking{}
	}
	writeJSON(w, http.StatusOK, rankings)
}

func (h *GameHandlers) HandleHTTPRankingsExport(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r)
	if !ok {
		return
	}

	result, err := h.service.ExportRankings(r.Context(), gameservice.RankingsQuery{
		UserID: chi.URLParam(r, "userID"),
		Limit:  limit,
	})
	if !h.ok(w, r, result.Failure, err) {
		return
	}
	writeFile(w, *result.Success, true)
}

func (h *GameHandlers) HandleHTTPHistory(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r)
	if !ok {
		return
	}

	result, err := h.service.GetHistory(r.Context(), gameservice.HistoryQuery{
		UserID:  chi.URLParam(r, "userID"),
		Limit:   limit,
		Locales: requestLocales(r),
	})
	if !h.ok(w, r, result.Failure, err) {
		return
	}
	writeJSON(w, http.StatusOK, result.Success)
}

func (h *GameHandlers) HandleHTTPPlayerChart(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r)
	if !ok {
		return
	}
	player, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		http.Error(w, "invalid player name", http.StatusBadRequest)
		return
	}

	result, err := h.service.RenderMonthlyAverageChart(r.Context(), gameservice.ChartQuery{
		UserID: chi.URLParam(r, "userID"),
		Limit:  limit,
		Player: player,
	})
	if !h.ok(w, r, result.Failure, err) {
		return
	}
	writeFile(w, *result.Success, false)
}

// ok writes the error response for a failed operation and reports whether the
// caller may write a success response.
func (h *GameHandlers) ok(w http.ResponseWriter, r *http.Request, failure *error, err error) bool {
	if err == nil && failure == nil {
		return true
	}
	if err == nil {
		err = *failure
	}

	status, msg := errorStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "HTTP request failed",
			attr.String("path", r.URL.Path),
			attr.ExtractCorrelationID(r.Context()),
			attr.Error(err),
		)
	}
	http.Error(w, msg, status)
	return false
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, gameservice.ErrAccessDenied):
		return http.StatusForbidden, "access denied"
	case errors.Is(err, gameservice.ErrMalformedInput), errors.Is(err, gameservice.ErrInvalidLimit):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, gameservice.ErrTransportFailure), errors.Is(err, gameservice.ErrSaveFailed):
		return http.StatusServiceUnavailable, "storage unavailable"
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}

func queryLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		http.Error(w, fmt.Sprintf("invalid limit %q", raw), http.StatusBadRequest)
		return 0, false
	}
	return n, true
}

// requestLocales prefers ?lang= over Accept-Language.
func requestLocales(r *http.Request) []string {
	if lang := strings.TrimSpace(r.URL.Query().Get("lang")); lang != "" {
		return []string{lang}
	}
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return nil
	}
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.String()
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeFile(w http.ResponseWriter, f gameservice.File, attachment bool) {
	w.Header().Set("Content-Type", f.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(f.Data)))
	if attachment {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Name))
	}
	w.WriteHeader(http.StatusOK)
	w.Write(f.Data)
}
