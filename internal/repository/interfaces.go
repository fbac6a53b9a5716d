package repository

import "facediag/internal/model"

// RunRepository defines the interface for run history operations.
type RunRepository interface {
	// Create operations
	Insert(run *model.Run) (int64, error)

	// Read operations
	GetByID(id int64) (*model.Run, error)
	GetAll(filter *model.RunFilter) ([]model.Run, error)
	GetTotalCount(filter *model.RunFilter) (int, error)
	GetStats() (*model.RunStats, error)

	// Delete operations
	Delete(id int64) error
	DeleteAll() error
}

// DetectionRepository defines the interface for per-run detection rows.
type DetectionRepository interface {
	InsertBatch(detections []model.Detection) error
	GetByRunID(runID int64) ([]model.Detection, error)
}

// RangeStatRepository defines the interface for per-run range statistics.
type RangeStatRepository interface {
	InsertBatch(stats []model.RangeStat) error
	GetByRunID(runID int64) ([]model.RangeStat, error)
}
