// Package queue defines message payloads exchanged over the message broker.
package queue

// SessionAlertEvent is published when a session stops with an unpaid
// balance and session alerts are enabled. It carries enough information
// for downstream consumers to log or notify staff without querying the
// primary database. Delivery is best effort: a lost alert never fails
// the stop transition that produced it.
type SessionAlertEvent struct {
    Title       string  `json:"title"`
    Message     string  `json:"message"`
    Type        string  `json:"type"`
    Link        string  `json:"link"`
    SessionID   uint64  `json:"session_id"`
    StationID   uint64  `json:"station_id"`
    StationName string  `json:"station_name"`
    TotalCost   float64 `json:"total_cost"`
    DurationMin int     `json:"duration_min"`
    EndedAt     string  `json:"ended_at"`
}
