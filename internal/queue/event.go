// Package queue defines message payloads exchanged over the message broker.
package queue

// SlotReservedEvent is published whenever a booking or an event claims a
// time slot on a room type.  It contains enough information for downstream
// consumers to log, notify, or trigger analytics without querying the
// primary database.
type SlotReservedEvent struct {
	EntryID      string `json:"entry_id"`
	Kind         string `json:"kind"` // "booking" or "event"
	RoomTypeID   string `json:"room_type_id"`
	RoomTypeName string `json:"room_type_name"`
	Date         string `json:"date"`       // YYYY-MM-DD
	StartTime    string `json:"start_time"` // HH:MM
	EndTime      string `json:"end_time"`   // HH:MM
	Title        string `json:"title"`
	ReservedAt   string `json:"reserved_at"`
}
