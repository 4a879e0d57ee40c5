package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/hamzaidr/lounge-station-booking/internal/model"
    "github.com/hamzaidr/lounge-station-booking/internal/scheduling"
)

// BookingRepo provides persistence for station reservations. This
// service only creates bookings and scans them for conflicts;
// confirmation/cancellation happen in other flows.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create inserts a booking and its participant set in one
// transaction and populates the generated ID on the passed record.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    const q = `INSERT INTO bookings (station_id, starts_at, ends_at, duration_min, cost, status)
               VALUES (?, ?, ?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, q, b.StationID, b.StartsAt, b.EndsAt, b.DurationMin, b.Cost, b.Status)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)

    if len(b.MemberIDs) > 0 {
        query := `INSERT INTO booking_members (booking_id, profile_id) VALUES `
        args := make([]interface{}, 0, len(b.MemberIDs)*2)
        for i, mid := range b.MemberIDs {
            if i > 0 {
                query += ","
            }
            query += "(?, ?)"
            args = append(args, b.ID, mid)
        }
        if _, err := tx.ExecContext(ctx, query, args...); err != nil {
            return err
        }
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// OverlappingStationIDs returns the IDs of stations holding a booking
// in any of the given statuses whose window intersects w. Windows are
// half-open, so `starts_at < windowEnd AND ends_at > windowStart` is
// the whole test: a booking ending exactly at the window start does
// not count.
func (r *BookingRepo) OverlappingStationIDs(ctx context.Context, w scheduling.Window, statuses []string) ([]uint64, error) {
    if len(statuses) == 0 {
        return nil, nil
    }
    placeholders := make([]string, len(statuses))
    args := make([]interface{}, 0, len(statuses)+2)
    for i, s := range statuses {
        placeholders[i] = "?"
        args = append(args, s)
    }
    args = append(args, w.End, w.Start)
    query := `SELECT DISTINCT station_id FROM bookings
              WHERE status IN (` + strings.Join(placeholders, ",") + `)
              AND starts_at < ? AND ends_at > ?`
    rows, err := r.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var ids []uint64
    for rows.Next() {
        var id uint64
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        ids = append(ids, id)
    }
    return ids, rows.Err()
}

// ListByMember returns a member's bookings, newest first.
func (r *BookingRepo) ListByMember(ctx context.Context, memberID uint64) ([]model.Booking, error) {
    const q = `SELECT b.id, b.station_id, b.starts_at, b.ends_at, b.duration_min, b.cost, b.status,
                      b.created_at, b.updated_at
               FROM bookings b
               JOIN booking_members bm ON bm.booking_id = b.id
               WHERE bm.profile_id = ?
               ORDER BY b.created_at DESC`
    rows, err := r.db.QueryContext(ctx, q, memberID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    bookings := make([]model.Booking, 0)
    for rows.Next() {
        var b model.Booking
        if err := rows.Scan(&b.ID, &b.StationID, &b.StartsAt, &b.EndsAt, &b.DurationMin, &b.Cost,
            &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
            return nil, err
        }
        bookings = append(bookings, b)
    }
    return bookings, rows.Err()
}
