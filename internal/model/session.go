package model

import "time"

// Session status enumeration.  A session is Active from start until
// stop; Completed is terminal and frees the station.
const (
    SessionActive    = "active"
    SessionCompleted = "completed"
)

// Payment status values recorded on a completed session.
const (
    PaymentPaid   = "paid"
    PaymentUnpaid = "unpaid"
)

// Session is a billable occupancy record for a station, as stored in
// the `sessions` table.  At most one active session may reference a
// given station at any time; the claim on stations.current_session_id
// enforces that.  While paused, PausedAt is set and elapsed time
// freezes; resuming shifts StartedAt forward by the paused span so
// billing math never sees the pause.
//
// Fields:
//  ID            – primary key identifier.
//  StationID     – the station this session occupies.
//  MemberIDs     – loyalty profiles participating (empty for walk-ins).
//  GroupRate     – whether the 4-person rate was requested at start.
//  StartedAt     – effective start reference (shifted on resume).
//  PausedAt      – set while the session is paused, nil otherwise.
//  EndedAt       – nil while active; StartedAt + duration when done.
//  DurationMin   – billed minutes, nil until the session ends.
//  BaseCost      – duration × rate cost computed at stop.
//  ExtrasCost    – operator-entered line items (snacks, peripherals).
//  TotalCost     – final charged amount.
//  PaymentStatus – paid | unpaid.
//  PointsAwarded – total loyalty points computed at stop (recorded
//                  even when there are no members to receive them).
//  Status        – active | completed.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Session struct {
    ID            uint64     // sessions.id
    StationID     uint64     // sessions.station_id
    MemberIDs     []uint64   // session_members rows
    GroupRate     bool       // sessions.group_rate
    StartedAt     time.Time  // sessions.started_at
    PausedAt      *time.Time // sessions.paused_at (nullable)
    EndedAt       *time.Time // sessions.ended_at (nullable)
    DurationMin   *int       // sessions.duration_min (nullable)
    BaseCost      float64    // sessions.base_cost
    ExtrasCost    float64    // sessions.extras_cost
    TotalCost     float64    // sessions.total_cost
    PaymentStatus string     // sessions.payment_status
    PointsAwarded int        // sessions.points_awarded
    Status        string     // sessions.status
    CreatedAt     time.Time  // sessions.created_at
    UpdatedAt     time.Time  // sessions.updated_at
}
