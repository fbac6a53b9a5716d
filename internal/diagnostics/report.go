package diagnostics

import (
	"fmt"
	"image"
	"io"
)

// ReferenceFace is a face found by the classical cascade detector.
type ReferenceFace struct {
	Rect   image.Rectangle
	Center image.Point
	Side   Side
}

// NewReferenceFace classifies a cascade rectangle. The side test uses the
// fractional center, unlike SideOf which works on the integer center.
func NewReferenceFace(r image.Rectangle, width int) ReferenceFace {
	w, h := r.Dx(), r.Dy()
	side := Right
	if float64(r.Min.X)+float64(w)/2 < float64(width)/2 {
		side = Left
	}
	return ReferenceFace{
		Rect:   r,
		Center: image.Pt(r.Min.X+w/2, r.Min.Y+h/2),
		Side:   side,
	}
}

// Report writes the human-readable diagnostic report.
type Report struct {
	w io.Writer
}

// NewReport creates a Report that writes to w.
func NewReport(w io.Writer) *Report {
	return &Report{w: w}
}

func (r *Report) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.w, format, args...)
}

// Header prints the banner line.
func (r *Report) Header() {
	r.printf("=== Face Detector Diagnostic (OpenCV via gocv) ===\n\n")
}

// ImageLoaded reports the input image dimensions.
func (r *Report) ImageLoaded(width, height int) {
	r.printf("✓ Test image loaded: %dx%d\n", width, height)
}

// ModelLoaded confirms the network was read.
func (r *Report) ModelLoaded() {
	r.printf("✓ Model loaded successfully\n")
}

// Tensors prints the raw head shapes and the anchor count.
func (r *Report) Tensors(t *Tensors) {
	r.printf("Confidence tensor shape: %v\n", t.ConfShape)
	r.printf("Location tensor shape: %v\n", t.LocShape)
	r.printf("Number of anchors: %d\n", t.Anchors)
}

// Ranges prints one block per analyzed range.
func (r *Report) Ranges(stats []RangeStats) {
	r.printf("\n=== Results ===\n\n")
	for _, s := range stats {
		r.printf("%s:\n", s.Range.Name)
		r.printf("  High confidence (>%.0f%%): %d detections\n", RangeThreshold*100, s.HighCount)
		r.printf("  Max confidence: %.1f%%\n\n", s.Max*100)
	}
}

// Distribution prints the half-split analysis.
func (r *Report) Distribution(d Distribution) {
	r.printf("=== Distribution Analysis ===\n")
	r.printf("High confidence in first half of anchors: %d\n", d.EarlyHigh)
	r.printf("High confidence in second half of anchors: %d\n", d.LateHigh)
	r.printf("\nWith %.0f%% threshold in first half: %d detections\n", LowThreshold*100, d.EarlyLow)
}

// Interpretation prints how to read the numbers against the other runtime.
func (r *Report) Interpretation() {
	r.printf("\n=== Comparison with the other runtime ===\n")
	r.printf("If results match the other runtime:\n")
	r.printf("  → This is a MODEL LIMITATION\n")
	r.printf("  → The pre-trained model doesn't detect the left face well\n")
	r.printf("  → Need to switch to a different model\n")
	r.printf("\nIf results differ from the other runtime:\n")
	r.printf("  → This is a BINDING ISSUE\n")
	r.printf("  → The other binding has different behavior\n")
	r.printf("  → Can potentially fix in that implementation\n")
}

// Detections prints the total count and the drawn top detections.
func (r *Report) Detections(all []Detection, limit int) {
	r.printf("\n=== Creating Visual Output ===\n")
	r.printf("Total detections >%.0f%%: %d\n", LowThreshold*100, len(all))
	for i, d := range Top(all, limit) {
		r.printf("  %d: %.1f%% conf, %s side, center(%d, %d)\n",
			i+1, d.Confidence*100, d.Side, d.Center.X, d.Center.Y)
	}

	left, right := CountBySide(all)
	r.printf("\nSpatial distribution: %d LEFT, %d RIGHT\n", left, right)
}

// Saved confirms where the annotated image went.
func (r *Report) Saved(path string) {
	r.printf("✓ Visualization saved: %s\n", path)
}

// ReferenceHeader opens the cascade section.
func (r *Report) ReferenceHeader() {
	r.printf("\n=== Testing Classic Haar Cascade for Reference ===\n")
}

// ReferenceFaces prints the cascade result.
func (r *Report) ReferenceFaces(faces []ReferenceFace) {
	r.printf("Haar cascade detected %d faces\n", len(faces))
	for i, f := range faces {
		r.printf("  Face %d: %s side, center(%d, %d), size %dx%d\n",
			i+1, f.Side, f.Center.X, f.Center.Y, f.Rect.Dx(), f.Rect.Dy())
	}
}

// ReferenceNotFound reports that no cascade file was found.
func (r *Report) ReferenceNotFound() {
	r.printf("Haar cascade not found in common locations\n")
}

// ReferenceError reports a failure in the reference path.
func (r *Report) ReferenceError(err error) {
	r.printf("Haar cascade error: %v\n", err)
}
