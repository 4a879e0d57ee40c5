package handler

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/hamzaidr/lounge-station-booking/internal/repository"
    "github.com/hamzaidr/lounge-station-booking/internal/service"
)

// SessionHandler exposes the operator-facing session lifecycle:
// start, pause, resume and stop, all keyed by station.
type SessionHandler struct {
    Sessions *service.SessionService
}

func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
    return &SessionHandler{Sessions: sessions}
}

type startSessionReq struct {
    MemberIDs []uint64 `json:"member_ids"` // empty for walk-ins
    GroupRate bool     `json:"group_rate"`
}

type stopSessionReq struct {
    DurationMin   *int     `json:"duration_min"`   // override billed minutes
    MemberIDs     []uint64 `json:"member_ids"`     // replace participant set
    ExtrasCost    float64  `json:"extras_cost"`    // snacks, drinks, gear
    TotalCost     *float64 `json:"total_cost"`     // override the computed total
    PaymentStatus string   `json:"payment_status"` // paid | unpaid (default unpaid)
}

// sessionError translates service and repository failures into HTTP
// responses. Conflicts and bad lifecycle transitions both map to 409:
// either way the caller raced the floor state and should re-read it.
func sessionError(c echo.Context, err error) error {
    var verr *service.ValidationError
    switch {
    case errors.As(err, &verr):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Error()})
    case errors.Is(err, repository.ErrStationNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "station not found"})
    case errors.Is(err, repository.ErrConflict):
        return c.JSON(http.StatusConflict, echo.Map{"error": "station is not available"})
    case errors.Is(err, repository.ErrInvalidState):
        return c.JSON(http.StatusConflict, echo.Map{"error": "session is not in a valid state for this action"})
    }
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session operation failed"})
}

// Start opens a session on a free station.
// POST /v1/stations/:id/start
func (h *SessionHandler) Start(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid station id"})
    }
    var req startSessionReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    sess, err := h.Sessions.Start(ctx, id, req.MemberIDs, req.GroupRate)
    if err != nil {
        return sessionError(c, err)
    }
    return c.JSON(http.StatusCreated, toSessionView(sess))
}

// Pause freezes the billing clock on a running session.
// POST /v1/stations/:id/pause
func (h *SessionHandler) Pause(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid station id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Sessions.Pause(ctx, id); err != nil {
        return sessionError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"status": "paused"})
}

// Resume restarts a paused session's clock.
// POST /v1/stations/:id/resume
func (h *SessionHandler) Resume(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid station id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Sessions.Resume(ctx, id); err != nil {
        return sessionError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"status": "running"})
}

// Stop ends a session: bills it, credits loyalty points and frees the
// station. A stop against a stale or missing session still frees the
// station and reports healed=true.
// POST /v1/stations/:id/stop
func (h *SessionHandler) Stop(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid station id"})
    }
    var req stopSessionReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    res, err := h.Sessions.Stop(ctx, id, service.StopOptions{
        DurationMin:   req.DurationMin,
        MemberIDs:     req.MemberIDs,
        ExtrasCost:    req.ExtrasCost,
        TotalOverride: req.TotalCost,
        PaymentStatus: req.PaymentStatus,
    })
    if err != nil {
        return sessionError(c, err)
    }
    if res.SelfHealed {
        return c.JSON(http.StatusOK, echo.Map{"status": "freed", "healed": true})
    }
    return c.JSON(http.StatusOK, echo.Map{"status": "completed", "session": toSessionView(res.Session)})
}
