package service

import (
    "context"
    "time"

    "github.com/hamzaidr/lounge-station-booking/internal/model"
    "github.com/hamzaidr/lounge-station-booking/internal/pricing"
    "github.com/hamzaidr/lounge-station-booking/internal/repository"
    "github.com/hamzaidr/lounge-station-booking/internal/scheduling"
)

// StationFinder lists the stations of a type for availability checks.
type StationFinder interface {
    GetByType(ctx context.Context, stationType string) ([]model.Station, error)
}

// BookingStore persists bookings and scans existing ones for
// conflicting windows.
type BookingStore interface {
    Create(ctx context.Context, b *model.Booking) error
    OverlappingStationIDs(ctx context.Context, w scheduling.Window, statuses []string) ([]uint64, error)
    ListByMember(ctx context.Context, memberID uint64) ([]model.Booking, error)
}

// ActiveSessionScanner reports which stations carry an active session
// that would collide with a window.
type ActiveSessionScanner interface {
    ActiveStationIDs(ctx context.Context, before time.Time) ([]uint64, error)
}

// BookingService creates future reservations against the availability
// resolver. A booking never occupies a station by itself; the station
// is only taken once an operator starts a session against it.
type BookingService struct {
    Stations StationFinder
    Bookings BookingStore
    Sessions ActiveSessionScanner

    // Now returns the current time; tests substitute a fixed clock.
    Now func() time.Time
}

// NewBookingService wires a BookingService.
func NewBookingService(stations StationFinder, bookings BookingStore, sessions ActiveSessionScanner) *BookingService {
    return &BookingService{
        Stations: stations,
        Bookings: bookings,
        Sessions: sessions,
        Now:      func() time.Time { return time.Now().UTC() },
    }
}

// CreateBookingRequest is the validated input to Create.
type CreateBookingRequest struct {
    StationType string
    StartsAt    time.Time
    DurationMin int
    MemberIDs   []uint64
}

// Create validates the request, resolves a free station of the
// requested type for the window, and inserts a pending booking priced
// at the solo rate. On a conflict nothing is written.
func (s *BookingService) Create(ctx context.Context, req CreateBookingRequest) (model.Booking, error) {
    if !model.ValidStationType(req.StationType) {
        return model.Booking{}, validationf("unknown station type %q", req.StationType)
    }
    if !scheduling.ValidDuration(req.DurationMin) {
        return model.Booking{}, validationf("duration must be between %d and %d minutes",
            scheduling.MinDurationMinutes, scheduling.MaxDurationMinutes)
    }
    now := s.Now()
    if req.StartsAt.Before(now.Add(scheduling.MinLeadTime)) {
        return model.Booking{}, validationf("bookings must start at least %d minutes from now",
            int(scheduling.MinLeadTime.Minutes()))
    }

    window := scheduling.Window{
        Start: req.StartsAt,
        End:   req.StartsAt.Add(time.Duration(req.DurationMin) * time.Minute),
    }

    candidates, err := s.Stations.GetByType(ctx, req.StationType)
    if err != nil {
        return model.Booking{}, err
    }
    if len(candidates) == 0 {
        return model.Booking{}, repository.ErrConflict
    }

    busy := make(map[uint64]struct{})
    booked, err := s.Bookings.OverlappingStationIDs(ctx, window,
        []string{model.BookingPending, model.BookingConfirmed})
    if err != nil {
        return model.Booking{}, err
    }
    for _, id := range booked {
        busy[id] = struct{}{}
    }
    // An active session has no end yet, so it blocks any window that
    // ends after it started.
    occupied, err := s.Sessions.ActiveStationIDs(ctx, window.End)
    if err != nil {
        return model.Booking{}, err
    }
    for _, id := range occupied {
        busy[id] = struct{}{}
    }

    station, ok := scheduling.PickAvailable(candidates, busy)
    if !ok {
        return model.Booking{}, repository.ErrConflict
    }

    booking := model.Booking{
        StationID:   station.ID,
        MemberIDs:   req.MemberIDs,
        StartsAt:    window.Start,
        EndsAt:      window.End,
        DurationMin: req.DurationMin,
        // Group-rate pricing for bookings is a future extension;
        // quotes use the solo rate.
        Cost:   pricing.Cost(station.SoloRate, req.DurationMin),
        Status: model.BookingPending,
    }
    if err := s.Bookings.Create(ctx, &booking); err != nil {
        return model.Booking{}, err
    }
    return booking, nil
}

// ListForMember returns the member's bookings, newest first.
func (s *BookingService) ListForMember(ctx context.Context, memberID uint64) ([]model.Booking, error) {
    return s.Bookings.ListByMember(ctx, memberID)
}
