package model

import "time"

// Station type enumeration.  Stations come in a small fixed set of
// types; bookings are made against a type rather than a specific
// station so that the scheduler can spread load across the floor.
const (
    StationTypeStandard  = "standard"
    StationTypePremium   = "premium"
    StationTypeSecondary = "secondary-console"
)

// Station status enumeration.  A station is occupied exactly when it
// carries a non-nil CurrentSessionID pointing at an active session.
const (
    StationFree        = "free"
    StationOccupied    = "occupied"
    StationReserved    = "reserved"
    StationMaintenance = "maintenance"
)

// ValidStationType reports whether t is one of the recognised station
// types.  Handlers use this to reject booking requests early.
func ValidStationType(t string) bool {
    switch t {
    case StationTypeStandard, StationTypePremium, StationTypeSecondary:
        return true
    }
    return false
}

// Station represents a physical gaming seat/console as stored in the
// `stations` table.  Stations are provisioned out-of-band; this
// service only flips their status and session pointer.
//
// Fields:
//  ID               – primary key identifier.
//  Name             – display name shown on the floor dashboard.
//  Type             – one of the station type constants above.
//  SoloRate         – hourly rate in MAD for a regular session.
//  GroupRate        – optional hourly rate for a 4-person session
//                     (nil when the station does not offer one).
//  Status           – one of the station status constants above.
//  CurrentSessionID – the active session occupying this station, or
//                     nil when the station is free.
//  CreatedAt        – timestamp when the record was created.
//  UpdatedAt        – timestamp when the record was last updated.
type Station struct {
    ID               uint64    // stations.id
    Name             string    // stations.name
    Type             string    // stations.type
    SoloRate         float64   // stations.solo_rate
    GroupRate        *float64  // stations.group_rate (nullable)
    Status           string    // stations.status
    CurrentSessionID *uint64   // stations.current_session_id (nullable)
    CreatedAt        time.Time // stations.created_at
    UpdatedAt        time.Time // stations.updated_at
}
