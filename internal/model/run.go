package model

import "time"

// Run represents one diagnostic run.
type Run struct {
	ID              int64     `json:"id"`
	StartedAt       time.Time `json:"started_at"`
	ImagePath       string    `json:"image_path"`
	ModelPath       string    `json:"model_path"`
	ImageWidth      int       `json:"image_width"`
	ImageHeight     int       `json:"image_height"`
	Anchors         int       `json:"anchors"`
	TotalDetections int       `json:"total_detections"`
	LeftCount       int       `json:"left_count"`
	RightCount      int       `json:"right_count"`
	OutputPath      string    `json:"output_path"`
}

// RunFilter contains filtering options for querying runs.
type RunFilter struct {
	ImagePath string
	Since     time.Time
	Limit     int
	Offset    int
}

// RunStats contains aggregate statistics over stored runs.
type RunStats struct {
	TotalRuns       int            `json:"total_runs"`
	TotalDetections int            `json:"total_detections"`
	PerImage        map[string]int `json:"per_image"`
	LeftDetections  int            `json:"left_detections"`
	RightDetections int            `json:"right_detections"`
}
