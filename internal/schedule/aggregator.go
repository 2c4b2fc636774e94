package schedule

import (
	"sort"
	"strings"

	"github.com/iliyamo/room-reservation/internal/model"
)

// Filter narrows the aggregated calendar.  From and To bound the day
// range inclusively ("YYYY-MM-DD", empty leaves that side open); Search
// is matched case-insensitively against item titles and room type names
// before grouping.
type Filter struct {
	From   string
	To     string
	Search string
}

// DayGroup is one calendar day with at least one item, in chronological
// order.
type DayGroup struct {
	Date  string               `json:"date"`
	Items []model.CalendarItem `json:"items"`
}

// Aggregate merges already-formatted bookings and events into the
// ordered, day-grouped stream the calendar renders.  Items sort by date
// ascending, then by start time ascending compared as minutes of the day
// (a string sort would put "9:00" after "10:00"), with the item ID as a
// stable tie-break.  Days without items are omitted.
//
// The transformation is pure and deterministic: identical input yields
// identical output, and the caller's slice is never mutated.
func Aggregate(items []model.CalendarItem, f Filter) []DayGroup {
	kept := make([]model.CalendarItem, 0, len(items))
	search := strings.ToLower(strings.TrimSpace(f.Search))
	for _, it := range items {
		if f.From != "" && it.Date < f.From {
			continue
		}
		if f.To != "" && it.Date > f.To {
			continue
		}
		if search != "" && !matchesSearch(it, search) {
			continue
		}
		kept = append(kept, it)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		am := startMinutes(a)
		bm := startMinutes(b)
		if am != bm {
			return am < bm
		}
		return a.ID < b.ID
	})

	var groups []DayGroup
	for _, it := range kept {
		if n := len(groups); n == 0 || groups[n-1].Date != it.Date {
			groups = append(groups, DayGroup{Date: it.Date})
		}
		last := &groups[len(groups)-1]
		last.Items = append(last.Items, it)
	}
	return groups
}

func matchesSearch(it model.CalendarItem, search string) bool {
	return strings.Contains(strings.ToLower(it.Title), search) ||
		strings.Contains(strings.ToLower(it.RoomTypeName), search)
}

// startMinutes parses the item's start time numerically, pushing
// unparseable values to the end of the day so they sort last instead of
// failing the whole aggregation.
func startMinutes(it model.CalendarItem) int {
	m, err := ParseMinutes(it.StartTime)
	if err != nil {
		return 24 * 60
	}
	return m
}
