package sqlite

import (
	"database/sql"
	"fmt"

	"facediag/internal/model"
)

// RunRepository implements repository.RunRepository for SQLite.
type RunRepository struct {
	db *DB
}

// NewRunRepository creates a new SQLite run repository.
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

const runColumns = `id, started_at, image_path, model_path, image_width, image_height,
	anchors, total_detections, left_count, right_count, output_path`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(s scanner) (model.Run, error) {
	var run model.Run
	err := s.Scan(&run.ID, &run.StartedAt, &run.ImagePath, &run.ModelPath, &run.ImageWidth, &run.ImageHeight,
		&run.Anchors, &run.TotalDetections, &run.LeftCount, &run.RightCount, &run.OutputPath)
	return run, err
}

// Insert adds a new run record to the database.
func (r *RunRepository) Insert(run *model.Run) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`
		INSERT INTO runs (started_at, image_path, model_path, image_width, image_height,
			anchors, total_detections, left_count, right_count, output_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.StartedAt, run.ImagePath, run.ModelPath, run.ImageWidth, run.ImageHeight,
		run.Anchors, run.TotalDetections, run.LeftCount, run.RightCount, run.OutputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	return result.LastInsertId()
}

// GetByID retrieves a run by its ID. A missing run returns nil, nil.
func (r *RunRepository) GetByID(id int64) (*model.Run, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	run, err := scanRun(r.db.Conn().QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// whereClause builds the shared filter for GetAll and GetTotalCount.
func whereClause(filter *model.RunFilter) (string, []interface{}) {
	query := " WHERE 1=1"
	args := []interface{}{}
	if filter == nil {
		return query, args
	}

	if filter.ImagePath != "" {
		query += " AND image_path = ?"
		args = append(args, filter.ImagePath)
	}

	if !filter.Since.IsZero() {
		query += " AND started_at >= ?"
		args = append(args, filter.Since)
	}

	return query, args
}

// GetAll retrieves runs based on filter criteria, newest first.
func (r *RunRepository) GetAll(filter *model.RunFilter) ([]model.Run, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	where, args := whereClause(filter)
	query := `SELECT ` + runColumns + ` FROM runs` + where + ` ORDER BY started_at DESC, id DESC`

	if filter != nil && filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)

		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := r.db.Conn().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// GetTotalCount returns the total count of runs matching the filter.
func (r *RunRepository) GetTotalCount(filter *model.RunFilter) (int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	where, args := whereClause(filter)

	var count int
	if err := r.db.Conn().QueryRow(`SELECT COUNT(*) FROM runs`+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return count, nil
}

// GetStats returns aggregate statistics about stored runs.
func (r *RunRepository) GetStats() (*model.RunStats, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	stats := &model.RunStats{
		PerImage: make(map[string]int),
	}

	err := r.db.Conn().QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(total_detections), 0),
			COALESCE(SUM(left_count), 0), COALESCE(SUM(right_count), 0)
		FROM runs
	`).Scan(&stats.TotalRuns, &stats.TotalDetections, &stats.LeftDetections, &stats.RightDetections)
	if err != nil {
		return nil, err
	}

	// Runs per image
	rows, err := r.db.Conn().Query(`SELECT image_path, COUNT(*) FROM runs GROUP BY image_path`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var path string
		var count int
		if err := rows.Scan(&path, &count); err != nil {
			return nil, err
		}
		stats.PerImage[path] = count
	}

	return stats, rows.Err()
}

// Delete removes a run and its rows.
func (r *RunRepository) Delete(id int64) error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`DELETE FROM runs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	return nil
}

// DeleteAll removes all runs and their rows.
func (r *RunRepository) DeleteAll() error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`DELETE FROM runs`); err != nil {
		return fmt.Errorf("failed to delete runs: %w", err)
	}
	return nil
}
