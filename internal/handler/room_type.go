package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
)

// RoomTypeHandler serves the room type catalogue.  Room types are the
// anchor of the conflict domain: every booking and event references one.
type RoomTypeHandler struct {
	Rooms *repository.RoomTypeRepo
}

func NewRoomTypeHandler(rooms *repository.RoomTypeRepo) *RoomTypeHandler {
	if rooms == nil {
		panic("nil repository passed to NewRoomTypeHandler")
	}
	return &RoomTypeHandler{Rooms: rooms}
}

type roomTypeReq struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

// List handles GET /api/room-types.
func (h *RoomTypeHandler) List(c echo.Context) error {
	items, err := h.Rooms.List(c.Request().Context())
	if err != nil {
		return respondScheduleError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /api/room-types/:id.
func (h *RoomTypeHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room type id"})
	}
	rt, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondScheduleError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": rt})
}

// Create handles POST /api/room-types.  Names are unique; a duplicate
// yields 409.
func (h *RoomTypeHandler) Create(c echo.Context) error {
	var req roomTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must not be negative"})
	}

	rt := model.RoomType{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Image:       strings.TrimSpace(req.Image),
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.Rooms.Create(c.Request().Context(), rt); err != nil {
		return respondScheduleError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": rt})
}

// Update handles PUT /api/room-types/:id.
func (h *RoomTypeHandler) Update(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room type id"})
	}
	var req roomTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must not be negative"})
	}

	ctx := c.Request().Context()
	rt, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		return respondScheduleError(c, err)
	}
	rt.Name = req.Name
	rt.Description = strings.TrimSpace(req.Description)
	rt.Price = req.Price
	rt.Image = strings.TrimSpace(req.Image)
	if err := h.Rooms.Update(ctx, rt); err != nil {
		return respondScheduleError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": rt})
}

// Delete handles DELETE /api/room-types/:id.  A room type still
// referenced by bookings or events cannot be removed; the repository
// rejects it with ErrRoomTypeInUse which maps to 409.
func (h *RoomTypeHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room type id"})
	}
	if err := h.Rooms.Delete(c.Request().Context(), id); err != nil {
		return respondScheduleError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
