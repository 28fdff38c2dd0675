package sqlite

import (
	"database/sql"
	"time"

	"github.com/enttlevo/mapai/internal/domain"
)

// ─── Sessions ───────────────────────────────────────────────────────────────

// CreateSession inserts a new session row.
func (d *DB) CreateSession(id string, now time.Time) error {
	_, err := d.db.Exec(
		`INSERT INTO sessions (id, region_id, province, created_at, last_active)
		 VALUES (?, '', '', ?, ?)`,
		id, now.Unix(), now.Unix(),
	)
	return err
}

// GetSession loads one session. Returns domain.ErrSessionNotFound when the
// id is unknown.
func (d *DB) GetSession(id string) (domain.Session, error) {
	var s domain.Session
	var created, active int64
	err := d.db.QueryRow(
		`SELECT id, region_id, province, created_at, last_active
		 FROM sessions WHERE id = ?`, id,
	).Scan(&s.ID, &s.RegionID, &s.Province, &created, &active)
	if err == sql.ErrNoRows {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.Session{}, err
	}
	s.CreatedAt = time.Unix(created, 0)
	s.LastActive = time.Unix(active, 0)
	return s, nil
}

// TouchSession bumps last_active.
func (d *DB) TouchSession(id string, now time.Time) error {
	_, err := d.db.Exec(
		`UPDATE sessions SET last_active = ? WHERE id = ?`, now.Unix(), id,
	)
	return err
}

// FocusSession records the session's current region focus.
func (d *DB) FocusSession(id, regionID, province string, now time.Time) error {
	_, err := d.db.Exec(
		`UPDATE sessions SET region_id = ?, province = ?, last_active = ? WHERE id = ?`,
		regionID, province, now.Unix(), id,
	)
	return err
}

// ListSessions returns sessions newest-activity first, for the sidebar.
func (d *DB) ListSessions(limit int) ([]domain.Session, error) {
	rows, err := d.db.Query(
		`SELECT id, region_id, province, created_at, last_active
		 FROM sessions ORDER BY last_active DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		var s domain.Session
		var created, active int64
		if err := rows.Scan(&s.ID, &s.RegionID, &s.Province, &created, &active); err != nil {
			return nil, err
		}
		s.CreatedAt = time.Unix(created, 0)
		s.LastActive = time.Unix(active, 0)
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// ─── Exchanges ──────────────────────────────────────────────────────────────

// InsertExchange appends one prompt/response pair to a session's history.
func (d *DB) InsertExchange(e domain.Exchange) (int64, error) {
	result, err := d.db.Exec(
		`INSERT INTO exchanges (session_id, prompt, response, province, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.SessionID, e.Prompt, e.Response, e.Province, e.CreatedAt.Unix(),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// SessionHistory returns a session's exchanges oldest-first, the order the
// transcript is replayed in.
func (d *DB) SessionHistory(sessionID string, limit int) ([]domain.Exchange, error) {
	rows, err := d.db.Query(
		`SELECT id, session_id, prompt, response, province, created_at
		 FROM exchanges WHERE session_id = ? ORDER BY created_at ASC, id ASC LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []domain.Exchange
	for rows.Next() {
		var e domain.Exchange
		var created int64
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Prompt, &e.Response, &e.Province, &created); err != nil {
			return nil, err
		}
		e.CreatedAt = time.Unix(created, 0)
		history = append(history, e)
	}
	return history, rows.Err()
}
