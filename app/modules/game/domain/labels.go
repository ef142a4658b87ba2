package gamedomain

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

type monthTable struct {
	names  [12]string
	format string // receives month name then year
}

var (
	labelTags = []language.Tag{
		language.English,
		language.German,
		language.Spanish,
		language.Portuguese,
		language.French,
	}

	labelTables = []monthTable{
		{
			names:  [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
			format: "%s %d",
		},
		{
			names:  [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"},
			format: "%s %d",
		},
		{
			names:  [12]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
			format: "%s de %d",
		},
		{
			names:  [12]string{"janeiro", "fevereiro", "março", "abril", "maio", "junho", "julho", "agosto", "setembro", "outubro", "novembro", "dezembro"},
			format: "%s de %d",
		},
		{
			names:  [12]string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"},
			format: "%s %d",
		},
	}

	labelMatcher = language.NewMatcher(labelTags)
)

// EnglishMonthLabel renders "January 2024".
func EnglishMonthLabel(year int, month time.Month) string {
	return labelTables[0].label(year, month)
}

// MonthLabelerFor returns the labeler best matching the given BCP 47 locale
// strings (e.g. "de-AT", an Accept-Language header). English is the fallback.
func MonthLabelerFor(locales ...string) MonthLabeler {
	_, idx := language.MatchStrings(labelMatcher, locales...)
	if idx < 0 || idx >= len(labelTables) {
		idx = 0
	}
	table := labelTables[idx]
	return table.label
}

func (t monthTable) label(year int, month time.Month) string {
	return fmt.Sprintf(t.format, t.names[month-1], year)
}
