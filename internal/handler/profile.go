package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/hamzaidr/lounge-station-booking/internal/repository"
)

// ProfileHandler exposes a member's own loyalty profile.
type ProfileHandler struct {
    Profiles *repository.ProfileRepo
}

func NewProfileHandler(profiles *repository.ProfileRepo) *ProfileHandler {
    return &ProfileHandler{Profiles: profiles}
}

type profileView struct {
    ID         uint64  `json:"id"`
    FirstName  string  `json:"first_name"`
    LastName   string  `json:"last_name"`
    Points     int     `json:"points"`
    Visits     int     `json:"visits"`
    CardTier   string  `json:"card_tier"`
    TotalSpend float64 `json:"total_spend"`
}

// Get returns the caller's loyalty profile.
// GET /v1/profile
func (h *ProfileHandler) Get(c echo.Context) error {
    callerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    p, err := h.Profiles.GetByID(ctx, callerID)
    if err != nil {
        if err == repository.ErrProfileNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
    }
    return c.JSON(http.StatusOK, profileView{
        ID:         p.ID,
        FirstName:  p.FirstName,
        LastName:   p.LastName,
        Points:     p.Points,
        Visits:     p.Visits,
        CardTier:   p.CardTier,
        TotalSpend: p.TotalSpend,
    })
}
