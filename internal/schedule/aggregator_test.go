package schedule

import (
	"reflect"
	"testing"

	"github.com/iliyamo/room-reservation/internal/model"
)

func item(id, date, start, end, title, room string) model.CalendarItem {
	return model.CalendarItem{
		ID:           id,
		Title:        title,
		Date:         date,
		StartTime:    start,
		EndTime:      end,
		Kind:         model.KindBooking,
		RoomTypeName: room,
	}
}

func TestAggregateSortsNumerically(t *testing.T) {
	// "9:30" must land between "09:00" and "10:30"; a lexicographic sort
	// would push it last.
	items := []model.CalendarItem{
		item("c", "2024-06-01", "10:30", "11:00", "C", "Studio"),
		item("a", "2024-06-01", "09:00", "09:30", "A", "Studio"),
		item("b", "2024-06-01", "9:30", "10:00", "B", "Studio"),
	}

	groups := Aggregate(items, Filter{})
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	var order []string
	for _, it := range groups[0].Items {
		order = append(order, it.ID)
	}
	if !reflect.DeepEqual(order, []string{"a", "b", "c"}) {
		t.Errorf("order = %v, want [a b c]", order)
	}
}

func TestAggregateGroupsByDay(t *testing.T) {
	items := []model.CalendarItem{
		item("2", "2024-06-03", "09:00", "10:00", "Later", "Studio"),
		item("1", "2024-06-01", "14:00", "15:00", "Earlier", "Studio"),
		item("3", "2024-06-01", "09:00", "10:00", "First", "Studio"),
	}

	groups := Aggregate(items, Filter{})
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2 (empty days omitted)", len(groups))
	}
	if groups[0].Date != "2024-06-01" || groups[1].Date != "2024-06-03" {
		t.Errorf("days = %s, %s", groups[0].Date, groups[1].Date)
	}
	if len(groups[0].Items) != 2 || groups[0].Items[0].ID != "3" {
		t.Errorf("first day items wrong: %+v", groups[0].Items)
	}
}

func TestAggregateDateRangeInclusive(t *testing.T) {
	items := []model.CalendarItem{
		item("a", "2024-05-31", "09:00", "10:00", "Before", "Studio"),
		item("b", "2024-06-01", "09:00", "10:00", "From day", "Studio"),
		item("c", "2024-06-15", "09:00", "10:00", "Middle", "Studio"),
		item("d", "2024-06-30", "09:00", "10:00", "To day", "Studio"),
		item("e", "2024-07-01", "09:00", "10:00", "After", "Studio"),
	}

	groups := Aggregate(items, Filter{From: "2024-06-01", To: "2024-06-30"})
	var ids []string
	for _, g := range groups {
		for _, it := range g.Items {
			ids = append(ids, it.ID)
		}
	}
	if !reflect.DeepEqual(ids, []string{"b", "c", "d"}) {
		t.Errorf("ids = %v, want [b c d] (bounds inclusive)", ids)
	}
}

func TestAggregateSearch(t *testing.T) {
	items := []model.CalendarItem{
		item("a", "2024-06-01", "09:00", "10:00", "Booking by Alice", "Conference Room"),
		item("b", "2024-06-01", "10:00", "11:00", "Team Offsite", "Studio"),
		item("c", "2024-06-02", "09:00", "10:00", "Booking by Bob", "Studio"),
	}

	// Title match, case-insensitive.
	groups := Aggregate(items, Filter{Search: "offsite"})
	if len(groups) != 1 || len(groups[0].Items) != 1 || groups[0].Items[0].ID != "b" {
		t.Errorf("title search got %+v", groups)
	}

	// Room type name match.
	groups = Aggregate(items, Filter{Search: "STUDIO"})
	var ids []string
	for _, g := range groups {
		for _, it := range g.Items {
			ids = append(ids, it.ID)
		}
	}
	if !reflect.DeepEqual(ids, []string{"b", "c"}) {
		t.Errorf("room search ids = %v, want [b c]", ids)
	}

	if groups := Aggregate(items, Filter{Search: "penthouse"}); len(groups) != 0 {
		t.Errorf("no-match search returned %+v", groups)
	}
}

func TestAggregateDeterministic(t *testing.T) {
	items := []model.CalendarItem{
		item("b", "2024-06-01", "09:00", "10:00", "B", "Studio"),
		item("a", "2024-06-01", "09:00", "10:00", "A", "Studio"), // same start: ID tie-break
		item("c", "2024-06-02", "12:00", "13:00", "C", "Studio"),
	}

	first := Aggregate(items, Filter{})
	second := Aggregate(items, Filter{})
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated aggregation differs")
	}
	if first[0].Items[0].ID != "a" || first[0].Items[1].ID != "b" {
		t.Errorf("tie-break order wrong: %+v", first[0].Items)
	}
	// Input slice untouched.
	if items[0].ID != "b" {
		t.Error("Aggregate mutated its input")
	}
}
