package vision

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"facediag/internal/diagnostics"
)

const (
	labelFontScale = 0.8
	labelThickness = 2
)

// Annotate draws the first limit detections and the left/right midline on a
// clone of img. The caller owns the returned Mat.
func Annotate(img gocv.Mat, detections []diagnostics.Detection, limit int) gocv.Mat {
	out := img.Clone()

	for _, det := range diagnostics.Top(detections, limit) {
		style := diagnostics.StyleFor(det.Confidence)
		gocv.Rectangle(&out, det.Box, style.Color, style.Thickness)

		label := fmt.Sprintf("%.1f%%", det.Confidence*100)
		pt := image.Pt(det.Box.Min.X, max(det.Box.Min.Y-10, 20))
		gocv.PutText(&out, label, pt, gocv.FontHersheySimplex, labelFontScale, style.Color, labelThickness)
	}

	midX := out.Cols() / 2
	gocv.Line(&out, image.Pt(midX, 0), image.Pt(midX, out.Rows()), diagnostics.MidlineStyle.Color, diagnostics.MidlineStyle.Thickness)

	return out
}
