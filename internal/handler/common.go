package handler // handler defines the HTTP layer over the services

import (
    "errors"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/hamzaidr/lounge-station-booking/internal/model"
)

// getUserID extracts the authenticated user's ID from the request
// context. JWT middleware stores the subject claim without normalising
// its type, so all the shapes the jwt library may produce are handled.
func getUserID(c echo.Context) (uint64, error) {
    switch t := c.Get("user_id").(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// pathID parses the :id route param as an unsigned integer.
func pathID(c echo.Context) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    return id, err == nil && id > 0
}

// sessionView is the wire shape of a session in responses.
type sessionView struct {
    ID            uint64     `json:"id"`
    StationID     uint64     `json:"station_id"`
    MemberIDs     []uint64   `json:"member_ids,omitempty"`
    GroupRate     bool       `json:"group_rate"`
    StartedAt     time.Time  `json:"started_at"`
    PausedAt      *time.Time `json:"paused_at,omitempty"`
    EndedAt       *time.Time `json:"ended_at,omitempty"`
    DurationMin   *int       `json:"duration_min,omitempty"`
    BaseCost      float64    `json:"base_cost"`
    ExtrasCost    float64    `json:"extras_cost"`
    TotalCost     float64    `json:"total_cost"`
    PaymentStatus string     `json:"payment_status"`
    PointsAwarded int        `json:"points_awarded"`
    Status        string     `json:"status"`
}

func toSessionView(s model.Session) sessionView {
    return sessionView{
        ID:            s.ID,
        StationID:     s.StationID,
        MemberIDs:     s.MemberIDs,
        GroupRate:     s.GroupRate,
        StartedAt:     s.StartedAt,
        PausedAt:      s.PausedAt,
        EndedAt:       s.EndedAt,
        DurationMin:   s.DurationMin,
        BaseCost:      s.BaseCost,
        ExtrasCost:    s.ExtrasCost,
        TotalCost:     s.TotalCost,
        PaymentStatus: s.PaymentStatus,
        PointsAwarded: s.PointsAwarded,
        Status:        s.Status,
    }
}

// stationView is the wire shape of a station in responses.
type stationView struct {
    ID               uint64   `json:"id"`
    Name             string   `json:"name"`
    Type             string   `json:"type"`
    SoloRate         float64  `json:"solo_rate"`
    GroupRate        *float64 `json:"group_rate,omitempty"`
    Status           string   `json:"status"`
    CurrentSessionID *uint64  `json:"current_session_id,omitempty"`
}

func toStationView(s model.Station) stationView {
    return stationView{
        ID:               s.ID,
        Name:             s.Name,
        Type:             s.Type,
        SoloRate:         s.SoloRate,
        GroupRate:        s.GroupRate,
        Status:           s.Status,
        CurrentSessionID: s.CurrentSessionID,
    }
}

// bookingView is the wire shape of a booking in responses.
type bookingView struct {
    ID          uint64    `json:"id"`
    StationID   uint64    `json:"station_id"`
    MemberIDs   []uint64  `json:"member_ids,omitempty"`
    StartsAt    time.Time `json:"starts_at"`
    EndsAt      time.Time `json:"ends_at"`
    DurationMin int       `json:"duration_min"`
    Cost        float64   `json:"cost"`
    Status      string    `json:"status"`
}

func toBookingView(b model.Booking) bookingView {
    return bookingView{
        ID:          b.ID,
        StationID:   b.StationID,
        MemberIDs:   b.MemberIDs,
        StartsAt:    b.StartsAt,
        EndsAt:      b.EndsAt,
        DurationMin: b.DurationMin,
        Cost:        b.Cost,
        Status:      b.Status,
    }
}
