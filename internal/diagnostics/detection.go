package diagnostics

import (
	"image"
	"sort"
)

// Side is the half of the image a detection's center falls in.
type Side string

const (
	Left  Side = "LEFT"
	Right Side = "RIGHT"
)

// Detection is one decoded anchor.
type Detection struct {
	Index      int
	Confidence float64
	Box        image.Rectangle
	Center     image.Point
	Side       Side
}

// SideOf classifies an x coordinate against the image midline. A center
// exactly on the midline counts as RIGHT.
func SideOf(centerX, width int) Side {
	if centerX < width/2 {
		return Left
	}
	return Right
}

// NewDetection builds a Detection from a decoded box.
func NewDetection(index int, confidence float64, box image.Rectangle, width int) Detection {
	center := image.Pt((box.Min.X+box.Max.X)/2, (box.Min.Y+box.Max.Y)/2)
	return Detection{
		Index:      index,
		Confidence: confidence,
		Box:        box,
		Center:     center,
		Side:       SideOf(center.X, width),
	}
}

// Collect decodes every anchor whose confidence exceeds threshold and returns
// the detections ordered by confidence, highest first. Ties keep anchor order.
func Collect(t *Tensors, dec Decoder, threshold float64) []Detection {
	var detections []Detection

	for i := 0; i < t.Anchors; i++ {
		c := t.ConfidenceAt(i)
		if c <= threshold {
			continue
		}
		box := dec.Decode(t.Offsets(i))
		detections = append(detections, NewDetection(i, c, box, dec.Width))
	}

	SortByConfidence(detections)
	return detections
}

// SortByConfidence orders detections by confidence descending, stable.
func SortByConfidence(detections []Detection) {
	sort.SliceStable(detections, func(a, b int) bool {
		return detections[a].Confidence > detections[b].Confidence
	})
}

// CountBySide returns how many detections fall on each side.
func CountBySide(detections []Detection) (left, right int) {
	for _, d := range detections {
		if d.Side == Left {
			left++
		} else {
			right++
		}
	}
	return left, right
}

// Top returns at most n detections from the front of the slice.
func Top(detections []Detection, n int) []Detection {
	if n < 0 || n >= len(detections) {
		return detections
	}
	return detections[:n]
}
