package diagnostics

import "fmt"

const (
	// RangeThreshold is the confidence a range anchor must exceed to be counted.
	RangeThreshold = 0.3
	// HighThreshold splits the early/late half distribution.
	HighThreshold = 0.5
	// LowThreshold is the lowest confidence that is still decoded and drawn.
	LowThreshold = 0.1
)

// AnchorRange is a named, half-open slice [Start, End) of anchor indices.
type AnchorRange struct {
	Name  string
	Start int
	End   int
}

// RangeStats summarizes the confidences within one AnchorRange.
type RangeStats struct {
	Range     AnchorRange
	HighCount int
	Max       float64
}

// Distribution compares how confident anchors are spread over the two halves
// of the anchor list.
type Distribution struct {
	EarlyHigh int // > HighThreshold, first half
	LateHigh  int // > HighThreshold, second half
	EarlyLow  int // > LowThreshold, first half
}

// DefaultRanges returns the four anchor ranges used by the report. The SSD
// anchors are laid out row-major per feature map, so these roughly sample
// the top-left, center, center-right and bottom-right of the image.
func DefaultRanges(anchors int) []AnchorRange {
	return []AnchorRange{
		{Name: "First 1000 anchors (top-left region)", Start: 0, End: 1000},
		{Name: "Middle 1000 anchors (center region)", Start: 3000, End: 4000},
		{Name: "Anchors 6000-7000 (center-right)", Start: 6000, End: 7000},
		{Name: "Last 1000 anchors (bottom-right)", Start: anchors - 1000, End: anchors},
	}
}

// Clamp restricts the range to [0, anchors].
func (r AnchorRange) Clamp(anchors int) AnchorRange {
	r.Start = max(0, min(r.Start, anchors))
	r.End = max(r.Start, min(r.End, anchors))
	return r
}

func (r AnchorRange) String() string {
	return fmt.Sprintf("%s [%d, %d)", r.Name, r.Start, r.End)
}

// AnalyzeRange counts anchors above RangeThreshold and tracks the maximum
// confidence inside r. The range is clamped to the tensor first.
func AnalyzeRange(t *Tensors, r AnchorRange) RangeStats {
	r = r.Clamp(t.Anchors)
	stats := RangeStats{Range: r}

	for i := r.Start; i < r.End; i++ {
		c := t.ConfidenceAt(i)
		if c > RangeThreshold {
			stats.HighCount++
		}
		if c > stats.Max {
			stats.Max = c
		}
	}

	return stats
}

// AnalyzeRanges runs AnalyzeRange for every range in order.
func AnalyzeRanges(t *Tensors, ranges []AnchorRange) []RangeStats {
	stats := make([]RangeStats, 0, len(ranges))
	for _, r := range ranges {
		stats = append(stats, AnalyzeRange(t, r))
	}
	return stats
}

// Distribute computes the half-split distribution over all anchors.
func Distribute(t *Tensors) Distribution {
	var d Distribution
	half := t.Anchors / 2

	for i := 0; i < t.Anchors; i++ {
		c := t.ConfidenceAt(i)
		if c > HighThreshold {
			if i < half {
				d.EarlyHigh++
			} else {
				d.LateHigh++
			}
		}
		if i < half && c > LowThreshold {
			d.EarlyLow++
		}
	}

	return d
}
