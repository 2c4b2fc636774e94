package schedule

import (
	"errors"
	"testing"

	"github.com/iliyamo/room-reservation/internal/model"
)

func TestFormatBooking(t *testing.T) {
	entry := model.ScheduleEntry{
		ID:            "b1",
		Kind:          model.KindBooking,
		RoomTypeID:    "r1",
		Date:          "2024-06-01",
		StartTime:     "09:00",
		EndTime:       "10:00",
		Name:          "Alice",
		ContactNumber: "555-0100",
	}

	got, err := Format(entry, "Conference Room")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	want := model.CalendarItem{
		ID:           "b1",
		Title:        "Booking by Alice",
		Date:         "2024-06-01",
		StartTime:    "09:00",
		EndTime:      "10:00",
		Kind:         model.KindBooking,
		RoomTypeName: "Conference Room",
		Contact:      "555-0100",
	}
	if got != want {
		t.Errorf("Format = %+v, want %+v", got, want)
	}
}

func TestFormatEvent(t *testing.T) {
	entry := model.ScheduleEntry{
		ID:          "e1",
		Kind:        model.KindEvent,
		RoomTypeID:  "r1",
		Date:        "2024-06-02",
		StartTime:   "14:00",
		EndTime:     "16:00",
		Title:       "Quarterly Review",
		Description: "All hands",
	}

	got, err := Format(entry, "Boardroom")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got.Title != "Quarterly Review" {
		t.Errorf("event title = %q, want verbatim title", got.Title)
	}
	if got.Description != "All hands" || got.Contact != "" {
		t.Errorf("event payload wrong: %+v", got)
	}
}

func TestFormatMissingRoomType(t *testing.T) {
	entry := model.ScheduleEntry{ID: "b1", Kind: model.KindBooking, Name: "Alice"}
	if _, err := Format(entry, ""); !errors.Is(err, ErrMissingRoomType) {
		t.Errorf("Format with empty room name error = %v, want ErrMissingRoomType", err)
	}
}
