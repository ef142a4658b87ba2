package gamedomain

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

// MonthKey identifies a calendar month. Month is zero-based (January = 0).
type MonthKey struct {
	Year  int
	Month int
}

// SortKey renders the key as "YYYY-0M" with the zero-based month.
func (k MonthKey) SortKey() string {
	return fmt.Sprintf("%04d-%02d", k.Year, k.Month)
}

func (k MonthKey) compare(o MonthKey) int {
	if c := cmp.Compare(k.Year, o.Year); c != 0 {
		return c
	}
	return cmp.Compare(k.Month, o.Month)
}

// MonthGroup is the set of games played in one calendar month.
type MonthGroup struct {
	Key     MonthKey     `json:"-"`
	SortKey string       `json:"sortKey"`
	Label   string       `json:"label"`
	Games   []GameRecord `json:"games"`
}

// MonthLabeler renders a month for display, e.g. "January 2024".
type MonthLabeler func(year int, month time.Month) string

// GroupByMonth partitions records by the calendar month of their timestamp in
// loc (UTC when nil). Records without a timestamp cannot be dated and are
// left out. Groups come back most recent first; games keep input order.
func GroupByMonth(records []GameRecord, loc *time.Location, label MonthLabeler) []MonthGroup {
	if loc == nil {
		loc = time.UTC
	}
	if label == nil {
		label = EnglishMonthLabel
	}

	index := make(map[MonthKey]int)
	var groups []MonthGroup

	for _, rec := range records {
		if rec.Timestamp == nil {
			continue
		}
		ts := rec.Timestamp.In(loc)
		key := MonthKey{Year: ts.Year(), Month: int(ts.Month()) - 1}

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, MonthGroup{
				Key:     key,
				SortKey: key.SortKey(),
				Label:   label(ts.Year(), ts.Month()),
			})
		}
		groups[i].Games = append(groups[i].Games, rec)
	}

	slices.SortFunc(groups, func(a, b MonthGroup) int {
		return b.Key.compare(a.Key)
	})
	return groups
}

// MostRecentKey returns the sort key of the newest group, if any.
func MostRecentKey(groups []MonthGroup) (string, bool) {
	if len(groups) == 0 {
		return "", false
	}
	newest := groups[0]
	for _, g := range groups[1:] {
		if g.Key.compare(newest.Key) > 0 {
			newest = g
		}
	}
	return newest.SortKey, true
}
