package model

import "time"

// RoomType describes a bookable category of room, such as "Conference
// Room" or "Studio".  Bookings and events reference a room type by ID;
// within one room type and calendar day no two entries may overlap.
// This struct corresponds to a row in the `room_types` table.
//
// Fields:
//  ID          – UUID primary key.
//  Name        – unique display name of the room type.
//  Description – free-text description shown to clients.
//  Price       – hourly price.
//  Image       – URL of the image used by the booking UI.
//  CreatedAt   – timestamp when the room type was created.
type RoomType struct {
	ID          string    `json:"id"`          // room_types.id
	Name        string    `json:"name"`        // room_types.name
	Description string    `json:"description"` // room_types.description
	Price       float64   `json:"price"`       // room_types.price
	Image       string    `json:"image"`       // room_types.image
	CreatedAt   time.Time `json:"createdAt"`   // room_types.created_at
}
