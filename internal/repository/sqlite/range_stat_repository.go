package sqlite

import (
	"fmt"

	"facediag/internal/model"
)

// RangeStatRepository implements repository.RangeStatRepository for SQLite.
type RangeStatRepository struct {
	db *DB
}

// NewRangeStatRepository creates a new SQLite range statistics repository.
func NewRangeStatRepository(db *DB) *RangeStatRepository {
	return &RangeStatRepository{db: db}
}

// InsertBatch adds multiple range statistics in a single transaction.
func (r *RangeStatRepository) InsertBatch(stats []model.RangeStat) error {
	r.db.Lock()
	defer r.db.Unlock()

	tx, err := r.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO range_stats (run_id, name, start_index, end_index, high_count, max_confidence)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, s := range stats {
		if _, err := stmt.Exec(s.RunID, s.Name, s.StartIndex, s.EndIndex, s.HighCount, s.MaxConfidence); err != nil {
			return fmt.Errorf("failed to insert range stat: %w", err)
		}
	}

	return tx.Commit()
}

// GetByRunID retrieves the range statistics of a run in insertion order.
func (r *RangeStatRepository) GetByRunID(runID int64) ([]model.RangeStat, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT id, run_id, name, start_index, end_index, high_count, max_confidence
		FROM range_stats WHERE run_id = ? ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query range stats: %w", err)
	}
	defer rows.Close()

	var stats []model.RangeStat
	for rows.Next() {
		var s model.RangeStat
		if err := rows.Scan(&s.ID, &s.RunID, &s.Name, &s.StartIndex, &s.EndIndex, &s.HighCount, &s.MaxConfidence); err != nil {
			return nil, fmt.Errorf("failed to scan range stat: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}
