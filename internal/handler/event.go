package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
	"github.com/iliyamo/room-reservation/internal/schedule"
)

// EventHandler serves the event endpoints.  Events occupy the same
// conflict domain as bookings: an event blocks bookings on its slot and
// vice versa.
type EventHandler struct {
	Checker *schedule.Checker
	Store   *repository.ScheduleStore
	Rooms   *repository.RoomTypeRepo
}

// NewEventHandler constructs an EventHandler.  All dependencies must be
// non-nil.
func NewEventHandler(ch *schedule.Checker, st *repository.ScheduleStore, rooms *repository.RoomTypeRepo) *EventHandler {
	if ch == nil || st == nil || rooms == nil {
		panic("nil dependency passed to NewEventHandler")
	}
	return &EventHandler{Checker: ch, Store: st, Rooms: rooms}
}

func (h *EventHandler) candidate(req slotReq) schedule.Candidate {
	return schedule.Candidate{
		Kind:        model.KindEvent,
		RoomTypeID:  req.RoomTypeID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
	}
}

// Create handles POST /api/events.  Events go through the same slot check
// as bookings.
func (h *EventHandler) Create(c echo.Context) error {
	var req slotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	if strings.TrimSpace(req.RoomTypeID) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "roomTypeId is required"})
	}

	ctx := c.Request().Context()
	entry, err := h.Checker.CheckAndReserve(ctx, h.candidate(req))
	if err != nil {
		return respondScheduleError(c, err)
	}

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

// Update handles PUT /api/events/:id.  The rewritten event passes through
// the full conflict check again, excluding itself from the overlap scan,
// so moving an event onto an occupied slot is rejected with 409.
func (h *EventHandler) Update(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var req slotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	if strings.TrimSpace(req.RoomTypeID) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "roomTypeId is required"})
	}

	ctx := c.Request().Context()
	entry, err := h.Checker.CheckAndUpdate(ctx, id, h.candidate(req))
	if err != nil {
		return respondScheduleError(c, err)
	}

	rt, rtErr := h.Rooms.GetByID(ctx, entry.RoomTypeID)
	if rtErr != nil {
		return c.JSON(http.StatusOK, echo.Map{"id": entry.ID})
	}
	item, err := schedule.Format(entry, rt.Name)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"id": entry.ID})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": item})
}

// List handles GET /api/events.
func (h *EventHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	entries, err := h.Store.FindEntriesInRange(ctx, "", "")
	if err != nil {
		return respondScheduleError(c, err)
	}
	names, err := roomNamesByID(ctx, h.Rooms)
	if err != nil {
		return respondScheduleError(c, err)
	}
	events := make([]model.ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		if e.Kind == model.KindEvent {
			events = append(events, e)
		}
	}
	items := formatEntries(events, names)
	groups := schedule.Aggregate(items, schedule.Filter{})
	flat := make([]model.CalendarItem, 0, len(items))
	for _, g := range groups {
		flat = append(flat, g.Items...)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": flat})
}

// Get handles GET /api/events/:id.
func (h *EventHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx := c.Request().Context()
	entry, err := h.Store.FindEntry(ctx, model.KindEvent, id)
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

// Delete handles DELETE /api/events/:id.
func (h *EventHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	if err := h.Store.DeleteEntry(c.Request().Context(), model.KindEvent, id); err != nil {
		return respondScheduleError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
