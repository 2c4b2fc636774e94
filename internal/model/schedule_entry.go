package model

import "time"

// EntryKind distinguishes the two kinds of schedule entries.  Both kinds
// occupy a room type for a time window and share one conflict domain: a
// booking and an event on the same room and overlapping times conflict
// exactly as two bookings would.
type EntryKind string

const (
	KindBooking EntryKind = "booking"
	KindEvent   EntryKind = "event"
)

// Valid reports whether k is one of the two known kinds.
func (k EntryKind) Valid() bool { return k == KindBooking || k == KindEvent }

// ScheduleEntry unifies bookings and events: a half-open interval
// [StartTime, EndTime) occupying one room type on one calendar day.
// Bookings are stored in the `bookings` table and carry the requester's
// name and contact number; events are stored in the `events` table and
// carry a title and description.  The remaining fields are shared.
//
// Fields:
//  ID            – UUID primary key.
//  Kind          – KindBooking or KindEvent.
//  RoomTypeID    – reference to room_types.id; validated at creation time.
//  Date          – calendar day, "YYYY-MM-DD", time-of-day stripped.
//  StartTime     – wall-clock start, 24-hour "HH:MM".
//  EndTime       – wall-clock end, exclusive; must be after StartTime.
//  Name          – booking only: who reserved the room.
//  ContactNumber – booking only: requester's phone number.
//  Title         – event only: display title.
//  Description   – event only: free text.
//  CreatedAt     – timestamp of creation.
type ScheduleEntry struct {
	ID            string    // id column of the kind's table
	Kind          EntryKind // discriminator, not a column
	RoomTypeID    string    // room_type_id
	Date          string    // date (DATE column, formatted "2006-01-02")
	StartTime     string    // start_time
	EndTime       string    // end_time
	Name          string    // bookings.name
	ContactNumber string    // bookings.contact_number
	Title         string    // events.title
	Description   string    // events.description
	CreatedAt     time.Time // created_at
}
