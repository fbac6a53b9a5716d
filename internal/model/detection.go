package model

// Detection represents a drawn detection of a run.
type Detection struct {
	ID          int64   `json:"id"`
	RunID       int64   `json:"run_id"`
	Rank        int     `json:"rank"`
	AnchorIndex int     `json:"anchor_index"`
	Confidence  float64 `json:"confidence"`
	X1          int     `json:"x1"`
	Y1          int     `json:"y1"`
	X2          int     `json:"x2"`
	Y2          int     `json:"y2"`
	Side        string  `json:"side"`
}

// RangeStat represents the statistics of one anchor range of a run.
type RangeStat struct {
	ID            int64   `json:"id"`
	RunID         int64   `json:"run_id"`
	Name          string  `json:"name"`
	StartIndex    int     `json:"start_index"`
	EndIndex      int     `json:"end_index"`
	HighCount     int     `json:"high_count"`
	MaxConfidence float64 `json:"max_confidence"`
}
