package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gocv.io/x/gocv"

	"facediag/internal/config"
	"facediag/internal/diagnostics"
	"facediag/internal/logger"
	"facediag/internal/model"
	"facediag/internal/repository/sqlite"
	"facediag/internal/service/storage"
	"facediag/internal/vision"
)

// ErrMissingInput is returned when the image or a model file does not exist.
var ErrMissingInput = errors.New("missing required input")

type App struct {
	config  *config.Config
	logger  *logger.Logger
	out     io.Writer
	db      *sqlite.DB
	runs    *sqlite.RunRepository
	results *storage.ResultService
}

// NewApp wires the logger, the optional history database and the result
// store. The report is written to out.
func NewApp(cfg *config.Config, out io.Writer) (*App, error) {
	log, err := logger.NewLogger(cfg.LogDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	a := &App{
		config: cfg,
		logger: log,
		out:    out,
	}

	if cfg.HistoryEnabled {
		if err := a.openHistory(); err != nil {
			log.Warning("Run history disabled: %v", err)
		}
	}

	if a.db != nil {
		a.results = storage.NewResultService(log, a.runs, sqlite.NewDetectionRepository(a.db), sqlite.NewRangeStatRepository(a.db))
	} else {
		a.results = storage.NewResultService(log, nil, nil, nil)
	}

	return a, nil
}

func (a *App) openHistory() error {
	db, err := sqlite.New(a.config.DatabasePath)
	if err != nil {
		return err
	}
	a.db = db
	a.runs = sqlite.NewRunRepository(db)
	return nil
}

// Run executes the whole diagnostic once.
func (a *App) Run() error {
	started := time.Now()
	report := diagnostics.NewReport(a.out)
	report.Header()

	if err := requireFiles(a.config.ImagePath); err != nil {
		return err
	}

	img, err := vision.LoadImage(a.config.ImagePath)
	if err != nil {
		return err
	}
	defer img.Close()
	width, height := img.Cols(), img.Rows()
	report.ImageLoaded(width, height)

	if err := requireFiles(a.config.ModelPath, a.config.ConfigPath); err != nil {
		return err
	}

	detector, err := vision.NewDetector(a.config.ModelPath, a.config.ConfigPath)
	if err != nil {
		return err
	}
	defer detector.Close()
	report.ModelLoaded()
	a.logger.Info("Loaded %s", a.config.ModelPath)

	tensors, err := detector.Infer(img)
	if err != nil {
		return fmt.Errorf("inference failed: %w", err)
	}
	report.Tensors(tensors)

	ranges := diagnostics.AnalyzeRanges(tensors, diagnostics.DefaultRanges(tensors.Anchors))
	report.Ranges(ranges)
	report.Distribution(diagnostics.Distribute(tensors))
	report.Interpretation()

	detections := diagnostics.Collect(tensors, diagnostics.NewDecoder(width, height), diagnostics.LowThreshold)
	report.Detections(detections, a.config.DrawLimit)

	annotated := vision.Annotate(img, detections, a.config.DrawLimit)
	defer annotated.Close()

	data, err := vision.EncodeJPEG(annotated)
	if err != nil {
		return err
	}

	left, right := diagnostics.CountBySide(detections)
	result := &storage.RunResult{
		Run: model.Run{
			StartedAt:       started.UTC(),
			ImagePath:       a.config.ImagePath,
			ModelPath:       a.config.ModelPath,
			ImageWidth:      width,
			ImageHeight:     height,
			Anchors:         tensors.Anchors,
			TotalDetections: len(detections),
			LeftCount:       left,
			RightCount:      right,
		},
		Ranges:     ranges,
		Detections: diagnostics.Top(detections, a.config.DrawLimit),
		Image:      data,
	}
	if err := a.results.Save(a.config.OutputPath, result); err != nil {
		return err
	}
	report.Saved(a.config.OutputPath)

	a.runReference(report, img)
	return nil
}

// runReference runs the cascade detector. Nothing here fails the run.
func (a *App) runReference(report *diagnostics.Report, img gocv.Mat) {
	report.ReferenceHeader()

	faces, err := vision.NewReferenceDetector(a.config.CascadePaths).Detect(img)
	switch {
	case errors.Is(err, vision.ErrCascadeNotFound):
		report.ReferenceNotFound()
	case err != nil:
		a.logger.Warning("Reference detector failed: %v", err)
		report.ReferenceError(err)
	default:
		report.ReferenceFaces(faces)
	}
}

// Close releases the database and log files.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("Failed to close database: %v", err)
		}
	}
	a.logger.Close()
}

func requireFiles(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("%w: %s not found", ErrMissingInput, p)
		}
	}
	return nil
}
