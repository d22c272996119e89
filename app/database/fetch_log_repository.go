package database

import (
	"database/sql"
	"fmt"
	"time"
)

var _ FetchLogRepository = (*FetchLogRepo)(nil)

// FetchLogRepo handles the append-only ingestion audit log.
type FetchLogRepo struct {
	db *DB
}

func NewFetchLogRepo(db *DB) *FetchLogRepo {
	return &FetchLogRepo{db: db}
}

func (r *FetchLogRepo) Append(family, status string, count int, errMsg string, durationMs int) error {
	_, err := r.db.Exec(`
		INSERT INTO fetch_logs (type, status, count, error, duration_ms)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5)
	`, family, status, count, errMsg, durationMs)

	if err != nil {
		return fmt.Errorf("failed to append fetch log: %w", err)
	}

	return nil
}

func (r *FetchLogRepo) GetRecent(limit int) ([]FetchLog, error) {
	rows, err := r.db.Query(`
		SELECT id, type, status, count, COALESCE(error, ''), COALESCE(duration_ms, 0), created_at
		FROM fetch_logs
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get fetch logs: %w", err)
	}
	defer rows.Close()

	var logs []FetchLog
	for rows.Next() {
		var l FetchLog
		if err := rows.Scan(&l.ID, &l.Type, &l.Status, &l.Count, &l.Error, &l.DurationMs, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fetch log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fetch logs: %w", err)
	}

	return logs, nil
}

// GetLastSuccess returns the time of the most recent successful ingestion
// run, or nil when no run has succeeded yet.
func (r *FetchLogRepo) GetLastSuccess() (*time.Time, error) {
	var ts time.Time
	err := r.db.QueryRow(`
		SELECT created_at FROM fetch_logs
		WHERE status = 'success'
		ORDER BY created_at DESC
		LIMIT 1
	`).Scan(&ts)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last successful fetch: %w", err)
	}

	return &ts, nil
}
