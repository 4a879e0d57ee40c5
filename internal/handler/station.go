package handler

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/hamzaidr/lounge-station-booking/internal/model"
    "github.com/hamzaidr/lounge-station-booking/internal/repository"
)

// StationHandler exposes the read-only station surface used by the
// floor dashboard and the booking page.
type StationHandler struct {
    Stations *repository.StationRepo
}

func NewStationHandler(stations *repository.StationRepo) *StationHandler {
    return &StationHandler{Stations: stations}
}

// List returns all stations, optionally filtered by ?type=.
func (h *StationHandler) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    var (
        stations []model.Station
        err      error
    )
    if t := strings.TrimSpace(c.QueryParam("type")); t != "" {
        if !model.ValidStationType(t) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown station type"})
        }
        stations, err = h.Stations.GetByType(ctx, t)
    } else {
        stations, err = h.Stations.List(ctx)
    }
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list stations failed"})
    }

    out := make([]stationView, 0, len(stations))
    for _, s := range stations {
        out = append(out, toStationView(s))
    }
    return c.JSON(http.StatusOK, echo.Map{"stations": out})
}

// Get returns a single station by ID.
func (h *StationHandler) Get(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid station id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    station, err := h.Stations.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrStationNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "station not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load station failed"})
    }
    return c.JSON(http.StatusOK, toStationView(station))
}
