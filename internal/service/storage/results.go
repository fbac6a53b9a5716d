package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"facediag/internal/diagnostics"
	"facediag/internal/logger"
	"facediag/internal/model"
	"facediag/internal/repository"
)

// RunResult is everything a finished run hands to the store.
type RunResult struct {
	Run        model.Run
	Ranges     []diagnostics.RangeStats
	Detections []diagnostics.Detection // drawn detections, in rank order
	Image      []byte                  // encoded annotated image
}

// ResultService writes the annotated image to disk and, when repositories
// are configured, records the run in the history database.
type ResultService struct {
	logger        *logger.Logger
	runRepo       repository.RunRepository
	detectionRepo repository.DetectionRepository
	rangeRepo     repository.RangeStatRepository
}

// NewResultService creates a ResultService. Nil repositories disable history.
func NewResultService(logger *logger.Logger, runRepo repository.RunRepository, detectionRepo repository.DetectionRepository, rangeRepo repository.RangeStatRepository) *ResultService {
	return &ResultService{
		logger:        logger,
		runRepo:       runRepo,
		detectionRepo: detectionRepo,
		rangeRepo:     rangeRepo,
	}
}

// SaveImage writes the encoded image to path, creating parent directories.
func (s *ResultService) SaveImage(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	s.logger.Info("Saved annotated image %s (%d bytes)", path, len(data))
	return nil
}

// Record stores the run in the history database. It returns the run ID, or
// 0 when history is disabled or the run could not be stored completely.
func (s *ResultService) Record(result *RunResult) (int64, error) {
	if s.runRepo == nil {
		return 0, nil
	}

	runID, err := s.runRepo.Insert(&result.Run)
	if err != nil {
		return 0, err
	}

	if s.detectionRepo != nil && len(result.Detections) > 0 {
		rows := make([]model.Detection, 0, len(result.Detections))
		for i, det := range result.Detections {
			rows = append(rows, model.Detection{
				RunID:       runID,
				Rank:        i + 1,
				AnchorIndex: det.Index,
				Confidence:  det.Confidence,
				X1:          det.Box.Min.X,
				Y1:          det.Box.Min.Y,
				X2:          det.Box.Max.X,
				Y2:          det.Box.Max.Y,
				Side:        string(det.Side),
			})
		}
		if err := s.detectionRepo.InsertBatch(rows); err != nil {
			return 0, s.discard(runID, fmt.Errorf("failed to save detections: %w", err))
		}
	}

	if s.rangeRepo != nil && len(result.Ranges) > 0 {
		rows := make([]model.RangeStat, 0, len(result.Ranges))
		for _, r := range result.Ranges {
			rows = append(rows, model.RangeStat{
				RunID:         runID,
				Name:          r.Range.Name,
				StartIndex:    r.Range.Start,
				EndIndex:      r.Range.End,
				HighCount:     r.HighCount,
				MaxConfidence: r.Max,
			})
		}
		if err := s.rangeRepo.InsertBatch(rows); err != nil {
			return 0, s.discard(runID, fmt.Errorf("failed to save range stats: %w", err))
		}
	}

	s.logger.Info("Recorded run %d with %d detections", runID, len(result.Detections))
	return runID, nil
}

// discard removes a partially recorded run so history never lists a run
// without its rows. Detection and range rows go with it by cascade.
func (s *ResultService) discard(runID int64, cause error) error {
	if err := s.runRepo.Delete(runID); err != nil {
		return fmt.Errorf("%w (and failed to remove run %d: %v)", cause, runID, err)
	}
	return cause
}

// Save writes the image and then records the run. History failures are
// logged and do not fail the save.
func (s *ResultService) Save(path string, result *RunResult) error {
	if err := s.SaveImage(path, result.Image); err != nil {
		return err
	}

	result.Run.OutputPath = path
	if _, err := s.Record(result); err != nil {
		s.logger.Warning("Could not record run history: %v", err)
	}
	return nil
}
