package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/repository"
	"github.com/iliyamo/room-reservation/internal/schedule"
)

// CalendarHandler serves the merged calendar view: bookings and events
// from all room types folded into one chronological listing grouped by
// day.
type CalendarHandler struct {
	Store *repository.ScheduleStore
	Rooms *repository.RoomTypeRepo
}

func NewCalendarHandler(st *repository.ScheduleStore, rooms *repository.RoomTypeRepo) *CalendarHandler {
	if st == nil || rooms == nil {
		panic("nil dependency passed to NewCalendarHandler")
	}
	return &CalendarHandler{Store: st, Rooms: rooms}
}

// Get handles GET /api/calendar.  Optional query parameters:
//
//	from=YYYY-MM-DD  inclusive lower date bound
//	to=YYYY-MM-DD    inclusive upper date bound
//	search=text      case-insensitive match on title or room type name
//
// Entries are returned as day groups sorted by date, each group's items
// sorted numerically by start time.
func (h *CalendarHandler) Get(c echo.Context) error {
	from := strings.TrimSpace(c.QueryParam("from"))
	to := strings.TrimSpace(c.QueryParam("to"))
	search := strings.TrimSpace(c.QueryParam("search"))

	if from != "" {
		if _, err := schedule.ParseDay(from); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid from date"})
		}
	}
	if to != "" {
		if _, err := schedule.ParseDay(to); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid to date"})
		}
	}

	ctx := c.Request().Context()
	entries, err := h.Store.FindEntriesInRange(ctx, from, to)
	if err != nil {
		return respondScheduleError(c, err)
	}
	names, err := roomNamesByID(ctx, h.Rooms)
	if err != nil {
		return respondScheduleError(c, err)
	}

	items := formatEntries(entries, names)
	groups := schedule.Aggregate(items, schedule.Filter{From: from, To: to, Search: search})
	return c.JSON(http.StatusOK, echo.Map{"days": groups})
}
