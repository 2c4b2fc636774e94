package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
	"github.com/iliyamo/room-reservation/internal/schedule"
)

// BookingHandler serves the booking endpoints.  A booking claims a time
// slot on a room type for a named person; overlap with any existing
// booking or event on the same room type and day is rejected.
type BookingHandler struct {
	Checker *schedule.Checker
	Store   *repository.ScheduleStore
	Rooms   *repository.RoomTypeRepo
}

// NewBookingHandler constructs a BookingHandler.  All dependencies must be
// non-nil.
func NewBookingHandler(ch *schedule.Checker, st *repository.ScheduleStore, rooms *repository.RoomTypeRepo) *BookingHandler {
	if ch == nil || st == nil || rooms == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Checker: ch, Store: st, Rooms: rooms}
}

// Create handles POST /api/bookings.  It validates the request, checks the
// slot against every booking and event on the same room type and day, and
// inserts atomically.  Overlap yields 409; touching intervals are allowed.
func (h *BookingHandler) Create(c echo.Context) error {
	var req slotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.ContactNumber) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and contactNumber are required"})
	}
	if strings.TrimSpace(req.RoomTypeID) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "roomTypeId is required"})
	}

	ctx := c.Request().Context()
	entry, err := h.Checker.CheckAndReserve(ctx, schedule.Candidate{
		Kind:          model.KindBooking,
		RoomTypeID:    req.RoomTypeID,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Name:          strings.TrimSpace(req.Name),
		ContactNumber: strings.TrimSpace(req.ContactNumber),
	})
	if err != nil {
		return respondScheduleError(c, err)
	}

	// The room type was verified during the conflict check, so this lookup
	// can only race a concurrent delete.
	rt, rtErr := h.Rooms.GetByID(ctx, entry.RoomTypeID)
	if rtErr != nil {
		return c.JSON(http.StatusCreated, echo.Map{"id": entry.ID})
	}
	announceSlot(entry, rt.Name)

	item, err := schedule.Format(entry, rt.Name)
	if err != nil {
		return c.JSON(http.StatusCreated, echo.Map{"id": entry.ID})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": item})
}

// List handles GET /api/bookings.  It returns every booking as a calendar
// item sorted by date then start time.
func (h *BookingHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	entries, err := h.Store.FindEntriesInRange(ctx, "", "")
	if err != nil {
		return respondScheduleError(c, err)
	}
	names, err := roomNamesByID(ctx, h.Rooms)
	if err != nil {
		return respondScheduleError(c, err)
	}
	bookings := make([]model.ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		if e.Kind == model.KindBooking {
			bookings = append(bookings, e)
		}
	}
	items := formatEntries(bookings, names)
	groups := schedule.Aggregate(items, schedule.Filter{})
	flat := make([]model.CalendarItem, 0, len(items))
	for _, g := range groups {
		flat = append(flat, g.Items...)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": flat})
}

// Get handles GET /api/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx := c.Request().Context()
	entry, err := h.Store.FindEntry(ctx, model.KindBooking, id)
	if err != nil {
		return respondScheduleError(c, err)
	}
	rt, err := h.Rooms.GetByID(ctx, entry.RoomTypeID)
	if err != nil {
		return respondScheduleError(c, err)
	}
	item, err := schedule.Format(entry, rt.Name)
	if err != nil {
		return respondScheduleError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": item})
}

// Delete handles DELETE /api/bookings/:id.  Removing a booking frees its
// slot for future submissions.
func (h *BookingHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	if err := h.Store.DeleteEntry(c.Request().Context(), model.KindBooking, id); err != nil {
		return respondScheduleError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
