package repository

import (
    "context"
    "database/sql"

    "github.com/hamzaidr/lounge-station-booking/internal/model"
)

// ProfileRepo provides persistence for loyalty profiles. Point
// balances and visit counts are only ever mutated through CreditTx as
// part of a session completion; redemption flows live elsewhere.
type ProfileRepo struct {
    db *sql.DB
}

// NewProfileRepo returns a new ProfileRepo bound to the given database.
func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{db: db} }

// Create inserts a fresh profile for a newly registered member. New
// members start on the silver tier with zero points.
func (r *ProfileRepo) Create(ctx context.Context, id uint64, firstName, lastName string) error {
    const q = `INSERT INTO profiles (id, first_name, last_name, points, visits, card_tier, total_spend)
               VALUES (?, ?, ?, 0, 0, ?, 0)`
    _, err := r.db.ExecContext(ctx, q, id, firstName, lastName, model.TierSilver)
    return err
}

// GetByID returns a member's profile. ErrProfileNotFound is returned
// when no row matches.
func (r *ProfileRepo) GetByID(ctx context.Context, id uint64) (model.Profile, error) {
    const q = `SELECT id, first_name, last_name, points, visits, card_tier, total_spend, created_at, updated_at
               FROM profiles WHERE id = ?`
    var p model.Profile
    err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.FirstName, &p.LastName, &p.Points,
        &p.Visits, &p.CardTier, &p.TotalSpend, &p.CreatedAt, &p.UpdatedAt)
    if err == sql.ErrNoRows {
        return model.Profile{}, ErrProfileNotFound
    }
    if err != nil {
        return model.Profile{}, err
    }
    return p, nil
}

// CreditTx adds a completed session's point share to a member and
// counts the visit, within the scope of an existing transaction. One
// visit per completed session regardless of duration.
func (r *ProfileRepo) CreditTx(ctx context.Context, tx *sql.Tx, memberID uint64, points int) error {
    const q = `UPDATE profiles SET points = points + ?, visits = visits + 1 WHERE id = ?`
    _, err := tx.ExecContext(ctx, q, points, memberID)
    return err
}
