package model

// CalendarItem is the display-oriented projection of a ScheduleEntry
// consumed by the calendar frontend.  It is derived fresh on every
// aggregation request and never persisted.  The JSON field names below
// are the stable wire contract with existing callers and must not
// change: roomTypeName, startTime and endTime in particular.
//
// A booking's title is synthesized as "Booking by {name}" and carries
// the contact number; an event's title is its own title verbatim and
// carries the description.
type CalendarItem struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Date         string    `json:"date"` // ISO day, "YYYY-MM-DD"
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	Kind         EntryKind `json:"kind"`
	RoomTypeName string    `json:"roomTypeName,omitempty"`
	Contact      string    `json:"contact,omitempty"`
	Description  string    `json:"description,omitempty"`
}
