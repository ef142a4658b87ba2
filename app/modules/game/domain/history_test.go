package gamedomain

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(s string) *time.Time {
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &ts
}

func TestGroupByMonth(t *testing.T) {
	records := []GameRecord{
		{ID: "a", Timestamp: at("2024-01-05T10:00:00Z")},
		{ID: "b", Timestamp: at("2024-03-02T10:00:00Z")},
		{ID: "c"},
		{ID: "d", Timestamp: at("2024-01-20T10:00:00Z")},
		{ID: "e", Timestamp: at("2023-12-31T23:59:59Z")},
	}

	groups := GroupByMonth(records, nil, nil)
	require.Len(t, groups, 3)

	type view struct {
		SortKey string
		Label   string
		IDs     []string
	}
	got := make([]view, len(groups))
	for i, g := range groups {
		v := view{SortKey: g.SortKey, Label: g.Label}
		for _, rec := range g.Games {
			v.IDs = append(v.IDs, rec.ID)
		}
		got[i] = v
	}

	want := []view{
		{SortKey: "2024-02", Label: "March 2024", IDs: []string{"b"}},
		{SortKey: "2024-00", Label: "January 2024", IDs: []string{"a", "d"}},
		{SortKey: "2023-11", Label: "December 2023", IDs: []string{"e"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GroupByMonth() mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupByMonth_Location(t *testing.T) {
	records := []GameRecord{{ID: "a", Timestamp: at("2024-01-31T23:30:00Z")}}

	utc := GroupByMonth(records, time.UTC, nil)
	require.Len(t, utc, 1)
	assert.Equal(t, "2024-00", utc[0].SortKey)

	plusTwo := GroupByMonth(records, time.FixedZone("UTC+2", 2*60*60), nil)
	require.Len(t, plusTwo, 1)
	assert.Equal(t, "2024-01", plusTwo[0].SortKey)
	assert.Equal(t, "February 2024", plusTwo[0].Label)
}

func TestGroupByMonth_CustomLabeler(t *testing.T) {
	records := []GameRecord{{Timestamp: at("2024-03-15T12:00:00Z")}}
	groups := GroupByMonth(records, nil, MonthLabelerFor("de-AT"))
	require.Len(t, groups, 1)
	assert.Equal(t, "März 2024", groups[0].Label)
}

func TestGroupByMonth_NoDatedRecords(t *testing.T) {
	assert.Empty(t, GroupByMonth([]GameRecord{{ID: "x"}}, nil, nil))
	assert.Empty(t, GroupByMonth(nil, nil, nil))
}

func TestMostRecentKey(t *testing.T) {
	_, ok := MostRecentKey(nil)
	assert.False(t, ok)

	groups := []MonthGroup{
		{Key: MonthKey{Year: 2023, Month: 11}, SortKey: "2023-11"},
		{Key: MonthKey{Year: 2024, Month: 1}, SortKey: "2024-01"},
		{Key: MonthKey{Year: 2024, Month: 0}, SortKey: "2024-00"},
	}
	key, ok := MostRecentKey(groups)
	assert.True(t, ok)
	assert.Equal(t, "2024-01", key)
}

func TestMonthKey_SortKeyOrdersLexically(t *testing.T) {
	keys := []MonthKey{{2024, 9}, {2024, 10}, {2023, 11}}
	assert.Less(t, keys[0].SortKey(), keys[1].SortKey())
	assert.Less(t, keys[2].SortKey(), keys[0].SortKey())
}
