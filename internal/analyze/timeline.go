package analyze

import (
	"sort"
	"strings"
	"time"

	"github.com/claimlens/claimlens/internal/model"
)

// dateLayouts are the formats sources actually use in snippets. Anything
// else is treated as unparseable and keeps its input position.
var dateLayouts = []string{
	"2006-01-02",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2/1/2006",
	"02/01/2006",
	"January 2006",
	"Jan 2006",
	"2006",
}

// parseDate attempts to resolve a human-written date string
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortTimeline orders entries with parseable dates ascending, followed by
// entries with unparseable dates in their original order. The sort is
// stable: equal dates keep their input order. This is a presentation aid,
// not a correctness guarantee.
func SortTimeline(entries []model.TimelineEntry) []model.TimelineEntry {
	if len(entries) < 2 {
		return entries
	}

	type keyed struct {
		entry model.TimelineEntry
		when  time.Time
		dated bool
	}

	keys := make([]keyed, len(entries))
	for i, e := range entries {
		when, ok := parseDate(e.Date)
		keys[i] = keyed{entry: e, when: when, dated: ok}
	}

	sort.SliceStable(keys, func(i, j int) bool {
		if keys[i].dated != keys[j].dated {
			return keys[i].dated // Dated entries before undated ones
		}
		if !keys[i].dated {
			return false // Undated entries keep input order
		}
		return keys[i].when.Before(keys[j].when)
	})

	out := make([]model.TimelineEntry, len(keys))
	for i, k := range keys {
		out[i] = k.entry
	}
	return out
}
