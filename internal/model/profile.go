package model

import "time"

// Card tiers in ascending order.  Tier upgrades happen in flows
// outside this service; sessions only add points and visits.
const (
    TierSilver = "silver"
    TierGold   = "gold"
    TierBlack  = "black"
)

// Profile is a member's loyalty record as stored in the `profiles`
// table.  Points and visit counts are mutated exclusively by the
// points allocator when a session the member took part in completes.
//
// Fields:
//  ID         – primary key identifier (matches users.id for members).
//  FirstName  – member first name.
//  LastName   – member last name.
//  Points     – current loyalty points balance.
//  Visits     – number of completed sessions credited.
//  CardTier   – silver | gold | black.
//  TotalSpend – lifetime spend in MAD.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Profile struct {
    ID         uint64    // profiles.id
    FirstName  string    // profiles.first_name
    LastName   string    // profiles.last_name
    Points     int       // profiles.points
    Visits     int       // profiles.visits
    CardTier   string    // profiles.card_tier
    TotalSpend float64   // profiles.total_spend
    CreatedAt  time.Time // profiles.created_at
    UpdatedAt  time.Time // profiles.updated_at
}
