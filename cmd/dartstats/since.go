package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02", "2006-01"}

// parseSince reads an absolute date or a natural language phrase relative to
// now ("yesterday", "last monday").
func parseSince(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, input, now.Location()); err == nil {
			return t, nil
		}
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	r, err := w.Parse(input, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse --since %q: %w", input, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("could not understand --since %q", input)
	}
	if r.Time.After(now) {
		return time.Time{}, fmt.Errorf("--since %q is in the future", input)
	}
	return r.Time, nil
}
