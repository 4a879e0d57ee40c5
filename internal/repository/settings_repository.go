package repository

import (
    "context"
    "database/sql"

    "github.com/hamzaidr/lounge-station-booking/internal/config"
)

// SettingsRepo reads the lounge's business settings. The settings
// tables hold at most one row each; when the row is missing, the
// defaults from configuration apply. The fallback lives here, once,
// instead of null-coalescing at every call site.
type SettingsRepo struct {
    db       *sql.DB
    defaults config.Business
}

// NewSettingsRepo returns a SettingsRepo that falls back to the given
// configured defaults.
func NewSettingsRepo(db *sql.DB, defaults config.Business) *SettingsRepo {
    return &SettingsRepo{db: db, defaults: defaults}
}

// PointsPerHour returns the configured loyalty earn rate.
func (r *SettingsRepo) PointsPerHour(ctx context.Context) (float64, error) {
    var pph float64
    err := r.db.QueryRowContext(ctx, `SELECT points_per_hour FROM points_config LIMIT 1`).Scan(&pph)
    if err == sql.ErrNoRows {
        return r.defaults.PointsPerHour, nil
    }
    if err != nil {
        return 0, err
    }
    return pph, nil
}

// SessionAlertsEnabled reports whether unpaid-session alerts should be
// emitted at stop time.
func (r *SettingsRepo) SessionAlertsEnabled(ctx context.Context) (bool, error) {
    var enabled bool
    err := r.db.QueryRowContext(ctx, `SELECT session_alerts_enabled FROM business_settings LIMIT 1`).Scan(&enabled)
    if err == sql.ErrNoRows {
        return r.defaults.SessionAlertsEnabled, nil
    }
    if err != nil {
        return false, err
    }
    return enabled, nil
}
