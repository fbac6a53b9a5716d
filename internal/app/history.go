package app

import (
	"errors"
	"fmt"
	"sort"

	"facediag/internal/model"
	"facediag/internal/repository/sqlite"
)

// ErrRunNotFound is returned when a run ID is not in the history database.
var ErrRunNotFound = errors.New("run not found")

func (a *App) ensureHistory() error {
	if a.db != nil {
		return nil
	}
	if err := a.openHistory(); err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	return nil
}

// History prints stored runs, newest first, followed by aggregate stats.
func (a *App) History(filter *model.RunFilter) error {
	if err := a.ensureHistory(); err != nil {
		return err
	}

	runs, err := a.runs.GetAll(filter)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintf(a.out, "No runs recorded in %s\n", a.config.DatabasePath)
		return nil
	}

	total, err := a.runs.GetTotalCount(filter)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Showing %d of %d runs\n\n", len(runs), total)

	for i := range runs {
		if err := a.printRun(&runs[i]); err != nil {
			return err
		}
	}

	stats, err := a.runs.GetStats()
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\n📊 History Statistics:\n")
	fmt.Fprintf(a.out, "   Total runs: %d\n", stats.TotalRuns)
	fmt.Fprintf(a.out, "   Total detections: %d (%d LEFT, %d RIGHT)\n", stats.TotalDetections, stats.LeftDetections, stats.RightDetections)

	images := make([]string, 0, len(stats.PerImage))
	for image := range stats.PerImage {
		images = append(images, image)
	}
	sort.Strings(images)

	fmt.Fprintf(a.out, "   Per image:\n")
	for _, image := range images {
		fmt.Fprintf(a.out, "      - %s: %d runs\n", image, stats.PerImage[image])
	}
	return nil
}

// ShowRun prints a single run with its range stats and drawn detections.
func (a *App) ShowRun(id int64) error {
	if err := a.ensureHistory(); err != nil {
		return err
	}

	run, err := a.runs.GetByID(id)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}

	return a.printRun(run)
}

// ClearHistory deletes one run, or every run when id is 0.
func (a *App) ClearHistory(id int64) error {
	if err := a.ensureHistory(); err != nil {
		return err
	}

	if id == 0 {
		if err := a.runs.DeleteAll(); err != nil {
			return err
		}
		a.logger.Info("Cleared run history in %s", a.config.DatabasePath)
		fmt.Fprintf(a.out, "Cleared all runs\n")
		return nil
	}

	run, err := a.runs.GetByID(id)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}

	if err := a.runs.Delete(id); err != nil {
		return err
	}
	a.logger.Info("Deleted run %d", id)
	fmt.Fprintf(a.out, "Deleted run #%d\n", id)
	return nil
}

func (a *App) printRun(run *model.Run) error {
	fmt.Fprintf(a.out, "#%d %s  %s (%dx%d)\n", run.ID, run.StartedAt.Local().Format("2006-01-02 15:04:05"), run.ImagePath, run.ImageWidth, run.ImageHeight)
	fmt.Fprintf(a.out, "   anchors=%d detections=%d  %d LEFT, %d RIGHT  -> %s\n", run.Anchors, run.TotalDetections, run.LeftCount, run.RightCount, run.OutputPath)

	stats, err := sqlite.NewRangeStatRepository(a.db).GetByRunID(run.ID)
	if err != nil {
		return err
	}
	for _, s := range stats {
		fmt.Fprintf(a.out, "   %-40s high=%-4d max=%.1f%%\n", s.Name, s.HighCount, s.MaxConfidence*100)
	}

	detections, err := sqlite.NewDetectionRepository(a.db).GetByRunID(run.ID)
	if err != nil {
		return err
	}
	for _, d := range detections {
		fmt.Fprintf(a.out, "   %2d: %.1f%% conf, %s side, box(%d, %d, %d, %d)\n", d.Rank, d.Confidence*100, d.Side, d.X1, d.Y1, d.X2, d.Y2)
	}
	return nil
}
