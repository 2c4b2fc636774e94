package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/queue"
	"github.com/iliyamo/room-reservation/internal/repository"
	"github.com/iliyamo/room-reservation/internal/schedule"
	queue_publisher "github.com/iliyamo/room-reservation/internal/service"
)

// slotReq is the JSON body shared by booking and event submissions.  The
// kind-specific fields (name/contactNumber vs title/description) are all
// present; handlers pick the ones relevant to their entry kind.
type slotReq struct {
	RoomTypeID    string `json:"roomTypeId"`
	Date          string `json:"date"`      // YYYY-MM-DD
	StartTime     string `json:"startTime"` // HH:MM
	EndTime       string `json:"endTime"`   // HH:MM
	Name          string `json:"name"`
	ContactNumber string `json:"contactNumber"`
	Title         string `json:"title"`
	Description   string `json:"description"`
}

// respondScheduleError maps engine and storage sentinels onto HTTP
// responses.  Unknown errors become 500 without leaking internals.
func respondScheduleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, schedule.ErrInvalidRange):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, schedule.ErrRoomTypeNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room type not found"})
	case errors.Is(err, schedule.ErrEntryNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "entry not found"})
	case errors.Is(err, schedule.ErrSlotTaken):
		return c.JSON(http.StatusConflict, echo.Map{"error": "slot already taken"})
	case errors.Is(err, repository.ErrRoomTypeExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "room type name already exists"})
	case errors.Is(err, repository.ErrRoomTypeInUse):
		return c.JSON(http.StatusConflict, echo.Map{"error": "room type has bookings or events"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}

// roomNamesByID loads all room types once and returns an id -> name map.
// Calendar-style listings resolve names through this map instead of one
// query per entry.
func roomNamesByID(ctx context.Context, rooms *repository.RoomTypeRepo) (map[string]string, error) {
	all, err := rooms.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(all))
	for _, rt := range all {
		names[rt.ID] = rt.Name
	}
	return names, nil
}

// formatEntries renders entries whose room type can still be resolved.
// Entries with a dangling room type reference are skipped rather than
// failing the whole listing.
func formatEntries(entries []model.ScheduleEntry, names map[string]string) []model.CalendarItem {
	items := make([]model.CalendarItem, 0, len(entries))
	for _, e := range entries {
		item, err := schedule.Format(e, names[e.RoomTypeID])
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	return items
}

// announceSlot publishes a SlotReservedEvent in the background.  Broker
// failures must never fail the HTTP request, so errors are swallowed here
// (the publisher already logs them).
func announceSlot(entry model.ScheduleEntry, roomTypeName string) {
	ev := queue.SlotReservedEvent{
		EntryID:      entry.ID,
		Kind:         string(entry.Kind),
		RoomTypeID:   entry.RoomTypeID,
		RoomTypeName: roomTypeName,
		Date:         entry.Date,
		StartTime:    entry.StartTime,
		EndTime:      entry.EndTime,
		ReservedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	switch entry.Kind {
	case model.KindBooking:
		ev.Title = "Booking by " + entry.Name
	case model.KindEvent:
		ev.Title = entry.Title
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishSlotReserved(ctx, ev)
	}()
}
