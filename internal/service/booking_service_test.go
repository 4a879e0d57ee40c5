package service_test

import (
    "context"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/hamzaidr/lounge-station-booking/internal/model"
    "github.com/hamzaidr/lounge-station-booking/internal/repository"
    "github.com/hamzaidr/lounge-station-booking/internal/scheduling"
    "github.com/hamzaidr/lounge-station-booking/internal/service"
)

// bookingFake holds stations and existing bookings/sessions in memory
// and answers conflict scans with the same half-open window test the
// SQL layer uses.
type bookingFake struct {
    stations map[string][]model.Station
    existing []model.Booking
    active   []struct {
        stationID uint64
        startedAt time.Time
    }
    created []model.Booking
}

func (f *bookingFake) GetByType(_ context.Context, stationType string) ([]model.Station, error) {
    return f.stations[stationType], nil
}

func (f *bookingFake) Create(_ context.Context, b *model.Booking) error {
    b.ID = uint64(len(f.created) + 1)
    f.created = append(f.created, *b)
    return nil
}

func (f *bookingFake) OverlappingStationIDs(_ context.Context, w scheduling.Window, statuses []string) ([]uint64, error) {
    allowed := map[string]bool{}
    for _, s := range statuses {
        allowed[s] = true
    }
    var ids []uint64
    for _, b := range f.existing {
        if allowed[b.Status] && b.StartsAt.Before(w.End) && b.EndsAt.After(w.Start) {
            ids = append(ids, b.StationID)
        }
    }
    return ids, nil
}

func (f *bookingFake) ListByMember(_ context.Context, memberID uint64) ([]model.Booking, error) {
    var out []model.Booking
    for _, b := range f.created {
        for _, m := range b.MemberIDs {
            if m == memberID {
                out = append(out, b)
            }
        }
    }
    return out, nil
}

func (f *bookingFake) ActiveStationIDs(_ context.Context, before time.Time) ([]uint64, error) {
    var ids []uint64
    for _, s := range f.active {
        if s.startedAt.Before(before) {
            ids = append(ids, s.stationID)
        }
    }
    return ids, nil
}

var bookingNow = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
    return time.Date(2025, 6, 2, hour, min, 0, 0, time.UTC)
}

func newBookingService(f *bookingFake) *service.BookingService {
    svc := service.NewBookingService(f, f, f)
    svc.Now = func() time.Time { return bookingNow }
    return svc
}

func TestCreateBooking(t *testing.T) {
    f := &bookingFake{stations: map[string][]model.Station{
        model.StationTypePremium: {{ID: 3, Type: model.StationTypePremium, SoloRate: 60}},
    }}
    svc := newBookingService(f)

    b, err := svc.Create(context.Background(), service.CreateBookingRequest{
        StationType: model.StationTypePremium,
        StartsAt:    at(10, 0),
        DurationMin: 90,
        MemberIDs:   []uint64{5},
    })
    require.NoError(t, err)

    assert.Equal(t, uint64(3), b.StationID)
    assert.Equal(t, model.BookingPending, b.Status)
    assert.Equal(t, at(11, 30), b.EndsAt)
    assert.InDelta(t, 90.00, b.Cost, 1e-9, "90 min at solo 60/hr")
    require.Len(t, f.created, 1)
}

func TestCreateBookingValidation(t *testing.T) {
    f := &bookingFake{stations: map[string][]model.Station{
        model.StationTypeStandard: {{ID: 1, Type: model.StationTypeStandard, SoloRate: 40}},
    }}
    svc := newBookingService(f)
    ctx := context.Background()

    cases := []struct {
        name string
        req  service.CreateBookingRequest
    }{
        {"unknown type", service.CreateBookingRequest{StationType: "arcade", StartsAt: at(10, 0), DurationMin: 60}},
        {"too short", service.CreateBookingRequest{StationType: model.StationTypeStandard, StartsAt: at(10, 0), DurationMin: 29}},
        {"too long", service.CreateBookingRequest{StationType: model.StationTypeStandard, StartsAt: at(10, 0), DurationMin: 481}},
        {"inside lead time", service.CreateBookingRequest{StationType: model.StationTypeStandard, StartsAt: bookingNow.Add(10 * time.Minute), DurationMin: 60}},
        {"in the past", service.CreateBookingRequest{StationType: model.StationTypeStandard, StartsAt: at(8, 0), DurationMin: 60}},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            _, err := svc.Create(ctx, tc.req)
            var verr *service.ValidationError
            assert.ErrorAs(t, err, &verr)
        })
    }
    assert.Empty(t, f.created, "rejected requests must not write")
}

func TestCreateBookingHalfOpenBoundary(t *testing.T) {
    f := &bookingFake{
        stations: map[string][]model.Station{
            model.StationTypeStandard: {{ID: 1, Type: model.StationTypeStandard, SoloRate: 40}},
        },
        existing: []model.Booking{{
            StationID: 1, Status: model.BookingConfirmed,
            StartsAt: at(10, 0), EndsAt: at(11, 0),
        }},
    }
    svc := newBookingService(f)

    // [11:00,12:00) against [10:00,11:00) is back-to-back, not a conflict
    b, err := svc.Create(context.Background(), service.CreateBookingRequest{
        StationType: model.StationTypeStandard,
        StartsAt:    at(11, 0),
        DurationMin: 60,
    })
    require.NoError(t, err)
    assert.Equal(t, uint64(1), b.StationID)
}

func TestCreateBookingOverlapConflicts(t *testing.T) {
    f := &bookingFake{
        stations: map[string][]model.Station{
            model.StationTypeStandard: {{ID: 1, Type: model.StationTypeStandard, SoloRate: 40}},
        },
        existing: []model.Booking{{
            StationID: 1, Status: model.BookingConfirmed,
            StartsAt: at(10, 0), EndsAt: at(11, 0),
        }},
    }
    svc := newBookingService(f)

    _, err := svc.Create(context.Background(), service.CreateBookingRequest{
        StationType: model.StationTypeStandard,
        StartsAt:    at(10, 30),
        DurationMin: 60,
    })
    assert.ErrorIs(t, err, repository.ErrConflict)
    assert.Empty(t, f.created, "conflicts must not write")
}

func TestCreateBookingPicksAnotherFreeStation(t *testing.T) {
    f := &bookingFake{
        stations: map[string][]model.Station{
            model.StationTypeStandard: {
                {ID: 1, Type: model.StationTypeStandard, SoloRate: 40},
                {ID: 2, Type: model.StationTypeStandard, SoloRate: 40},
            },
        },
        existing: []model.Booking{{
            StationID: 1, Status: model.BookingPending,
            StartsAt: at(10, 0), EndsAt: at(11, 0),
        }},
    }
    svc := newBookingService(f)

    b, err := svc.Create(context.Background(), service.CreateBookingRequest{
        StationType: model.StationTypeStandard,
        StartsAt:    at(10, 30),
        DurationMin: 60,
    })
    require.NoError(t, err)
    assert.Equal(t, uint64(2), b.StationID, "overlapped station filtered, free one chosen")
}

func TestCreateBookingBlockedByActiveSession(t *testing.T) {
    f := &bookingFake{
        stations: map[string][]model.Station{
            model.StationTypeStandard: {{ID: 1, Type: model.StationTypeStandard, SoloRate: 40}},
        },
    }
    f.active = append(f.active, struct {
        stationID uint64
        startedAt time.Time
    }{stationID: 1, startedAt: at(8, 30)})
    svc := newBookingService(f)

    _, err := svc.Create(context.Background(), service.CreateBookingRequest{
        StationType: model.StationTypeStandard,
        StartsAt:    at(10, 0),
        DurationMin: 60,
    })
    assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestCreateBookingCancelledBookingDoesNotBlock(t *testing.T) {
    f := &bookingFake{
        stations: map[string][]model.Station{
            model.StationTypeStandard: {{ID: 1, Type: model.StationTypeStandard, SoloRate: 40}},
        },
        existing: []model.Booking{{
            StationID: 1, Status: model.BookingCancelled,
            StartsAt: at(10, 0), EndsAt: at(11, 0),
        }},
    }
    svc := newBookingService(f)

    _, err := svc.Create(context.Background(), service.CreateBookingRequest{
        StationType: model.StationTypeStandard,
        StartsAt:    at(10, 30),
        DurationMin: 60,
    })
    assert.NoError(t, err)
}
