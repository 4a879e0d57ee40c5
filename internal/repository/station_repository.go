package repository

import (
    "context"
    "database/sql"

    "github.com/hamzaidr/lounge-station-booking/internal/model"
)

// StationRepo provides read access to stations and the two status
// flips this service performs: claiming a station for a new session
// and releasing it when the session ends. All timestamp fields are
// assumed to be stored in UTC.
type StationRepo struct {
    db *sql.DB
}

// NewStationRepo returns a new StationRepo bound to the given database.
func NewStationRepo(db *sql.DB) *StationRepo { return &StationRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions
// spanning multiple repositories.
func (r *StationRepo) DB() *sql.DB { return r.db }

const stationColumns = `id, name, type, solo_rate, group_rate, status, current_session_id, created_at, updated_at`

func scanStation(row interface{ Scan(...interface{}) error }) (model.Station, error) {
    var st model.Station
    var groupRate sql.NullFloat64
    var sessionID sql.NullInt64
    err := row.Scan(&st.ID, &st.Name, &st.Type, &st.SoloRate, &groupRate,
        &st.Status, &sessionID, &st.CreatedAt, &st.UpdatedAt)
    if err != nil {
        return model.Station{}, err
    }
    if groupRate.Valid {
        gr := groupRate.Float64
        st.GroupRate = &gr
    }
    if sessionID.Valid {
        sid := uint64(sessionID.Int64)
        st.CurrentSessionID = &sid
    }
    return st, nil
}

// GetByID returns a single station. ErrStationNotFound is returned
// when no row matches.
func (r *StationRepo) GetByID(ctx context.Context, id uint64) (model.Station, error) {
    const q = `SELECT ` + stationColumns + ` FROM stations WHERE id = ?`
    st, err := scanStation(r.db.QueryRowContext(ctx, q, id))
    if err == sql.ErrNoRows {
        return model.Station{}, ErrStationNotFound
    }
    return st, err
}

// GetByType returns every station of the given type, ordered by ID
// for deterministic output. An empty slice is returned when the type
// has no stations.
func (r *StationRepo) GetByType(ctx context.Context, stationType string) ([]model.Station, error) {
    const q = `SELECT ` + stationColumns + ` FROM stations WHERE type = ? ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q, stationType)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    stations := make([]model.Station, 0)
    for rows.Next() {
        st, err := scanStation(rows)
        if err != nil {
            return nil, err
        }
        stations = append(stations, st)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return stations, nil
}

// List returns all stations ordered by ID.
func (r *StationRepo) List(ctx context.Context) ([]model.Station, error) {
    const q = `SELECT ` + stationColumns + ` FROM stations ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    stations := make([]model.Station, 0)
    for rows.Next() {
        st, err := scanStation(rows)
        if err != nil {
            return nil, err
        }
        stations = append(stations, st)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return stations, nil
}

// ClaimTx marks a station occupied by the given session within the
// scope of an existing transaction. The UPDATE is conditional on the
// station being unclaimed and not in maintenance, so two concurrent
// starts on the same station serialize on the row: the second caller
// sees zero affected rows and receives ErrConflict.
func (r *StationRepo) ClaimTx(ctx context.Context, tx *sql.Tx, stationID, sessionID uint64) error {
    const q = `UPDATE stations
               SET status = ?, current_session_id = ?
               WHERE id = ? AND current_session_id IS NULL AND status <> ?`
    res, err := tx.ExecContext(ctx, q, model.StationOccupied, sessionID, stationID, model.StationMaintenance)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrConflict
    }
    return nil
}

// ReleaseTx frees a station and clears its session pointer within a
// transaction. It is unconditional: releasing an already-free station
// affects zero rows and is not an error, which is what makes stop
// idempotent.
func (r *StationRepo) ReleaseTx(ctx context.Context, tx *sql.Tx, stationID uint64) error {
    const q = `UPDATE stations SET status = ?, current_session_id = NULL WHERE id = ?`
    _, err := tx.ExecContext(ctx, q, model.StationFree, stationID)
    return err
}

// Release is the non-transactional variant of ReleaseTx, used by the
// self-healing path of stop when there is no session to complete.
func (r *StationRepo) Release(ctx context.Context, stationID uint64) error {
    const q = `UPDATE stations SET status = ?, current_session_id = NULL WHERE id = ?`
    _, err := r.db.ExecContext(ctx, q, model.StationFree, stationID)
    return err
}
