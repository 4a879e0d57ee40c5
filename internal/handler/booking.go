package handler

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/hamzaidr/lounge-station-booking/internal/model"
    "github.com/hamzaidr/lounge-station-booking/internal/repository"
    "github.com/hamzaidr/lounge-station-booking/internal/service"
)

// BookingHandler exposes the member-facing booking surface.
type BookingHandler struct {
    Bookings *service.BookingService
}

func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
    return &BookingHandler{Bookings: bookings}
}

type createBookingReq struct {
    StationType string   `json:"station_type"`
    StartsAt    string   `json:"starts_at"` // RFC3339
    DurationMin int      `json:"duration_min"`
    MemberIDs   []uint64 `json:"member_ids"` // admins may book for others
}

// Create books a free station of the requested type for a window.
// POST /v1/bookings
func (h *BookingHandler) Create(c echo.Context) error {
    callerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req createBookingReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "starts_at must be RFC3339"})
    }

    // Members book for themselves; only admins may set member_ids.
    members := req.MemberIDs
    if role, _ := c.Get("role").(string); role != model.RoleAdmin || len(members) == 0 {
        members = []uint64{callerID}
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    booking, err := h.Bookings.Create(ctx, service.CreateBookingRequest{
        StationType: req.StationType,
        StartsAt:    startsAt.UTC(),
        DurationMin: req.DurationMin,
        MemberIDs:   members,
    })
    if err != nil {
        var verr *service.ValidationError
        switch {
        case errors.As(err, &verr):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Error()})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "no station of this type is free for that window"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
    }
    return c.JSON(http.StatusCreated, toBookingView(booking))
}

// List returns the caller's bookings, newest first.
// GET /v1/bookings
func (h *BookingHandler) List(c echo.Context) error {
    callerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    bookings, err := h.Bookings.ListForMember(ctx, callerID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
    }
    out := make([]bookingView, 0, len(bookings))
    for _, b := range bookings {
        out = append(out, toBookingView(b))
    }
    return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}
