package model

import "time"

// Booking status enumeration.  Only pending and confirmed bookings
// participate in conflict detection; cancelled and completed ones are
// history.
const (
    BookingPending   = "pending"
    BookingConfirmed = "confirmed"
    BookingCancelled = "cancelled"
    BookingCompleted = "completed"
)

// Booking reserves a station for a future time window.  A booking is
// not an occupancy: the station is only taken once an operator starts
// a session against it.  Windows are half-open [StartsAt, EndsAt) so
// a booking ending at T never conflicts with one starting at T.
//
// Fields:
//  ID          – primary key identifier.
//  StationID   – the station assigned by the availability resolver.
//  MemberIDs   – loyalty profiles the booking was made for.
//  StartsAt    – window start (UTC).
//  EndsAt      – StartsAt + DurationMin.
//  DurationMin – requested minutes, within [30, 480].
//  Cost        – price quoted at creation (solo rate).
//  Status      – one of the booking status constants above.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Booking struct {
    ID          uint64    // bookings.id
    StationID   uint64    // bookings.station_id
    MemberIDs   []uint64  // booking_members rows
    StartsAt    time.Time // bookings.starts_at
    EndsAt      time.Time // bookings.ends_at
    DurationMin int       // bookings.duration_min
    Cost        float64   // bookings.cost
    Status      string    // bookings.status
    CreatedAt   time.Time // bookings.created_at
    UpdatedAt   time.Time // bookings.updated_at
}
