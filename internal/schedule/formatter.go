package schedule

import "github.com/iliyamo/room-reservation/internal/model"

// Format maps a persisted entry into the CalendarItem shape consumed by
// presentation.  It is a pure function: no storage or network access,
// all inputs supplied by the caller.  A booking's title is synthesized
// as "Booking by {name}"; an event's title is used verbatim.
//
// roomTypeName must be non-empty: formatting an entry whose room type
// can no longer be resolved would render a dangling reference, so it
// fails with ErrMissingRoomType instead.
func Format(entry model.ScheduleEntry, roomTypeName string) (model.CalendarItem, error) {
	if roomTypeName == "" {
		return model.CalendarItem{}, ErrMissingRoomType
	}

	item := model.CalendarItem{
		ID:           entry.ID,
		Date:         entry.Date,
		StartTime:    entry.StartTime,
		EndTime:      entry.EndTime,
		Kind:         entry.Kind,
		RoomTypeName: roomTypeName,
	}

	switch entry.Kind {
	case model.KindBooking:
		item.Title = "Booking by " + entry.Name
		item.Contact = entry.ContactNumber
	case model.KindEvent:
		item.Title = entry.Title
		item.Description = entry.Description
	}

	return item, nil
}
