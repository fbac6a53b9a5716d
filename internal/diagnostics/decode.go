package diagnostics

import (
	"image"
	"math"
)

// Fixed decode constants. They do not come from the model's prior boxes and
// only reproduce the baseline the other runtime used.
const (
	DefaultScale     = 0.08
	DefaultPriorSize = 0.2
	DefaultPriorX    = 0.5
	DefaultPriorY    = 0.5
)

// Decoder turns regression offsets into pixel boxes around a single fixed
// prior. It is deliberately not anchor-aware.
type Decoder struct {
	Scale     float64
	PriorSize float64
	PriorX    float64
	PriorY    float64
	Width     int
	Height    int
}

// NewDecoder returns a Decoder with the default constants for an image of
// the given size.
func NewDecoder(width, height int) Decoder {
	return Decoder{
		Scale:     DefaultScale,
		PriorSize: DefaultPriorSize,
		PriorX:    DefaultPriorX,
		PriorY:    DefaultPriorY,
		Width:     width,
		Height:    height,
	}
}

// Decode maps (dx, dy, dw, dh) to a rectangle clamped to the image bounds.
// Corners are truncated toward zero before clamping.
func (d Decoder) Decode(dx, dy, dw, dh float64) image.Rectangle {
	dx *= d.Scale
	dy *= d.Scale
	dw *= d.Scale
	dh *= d.Scale

	cx := d.PriorX + dx
	cy := d.PriorY + dy
	w := d.PriorSize * math.Exp(dw)
	h := d.PriorSize * math.Exp(dh)

	w2, h2 := float64(d.Width), float64(d.Height)
	x1 := clampInt(truncate((cx-w/2)*w2), d.Width)
	y1 := clampInt(truncate((cy-h/2)*h2), d.Height)
	x2 := clampInt(truncate((cx+w/2)*w2), d.Width)
	y2 := clampInt(truncate((cy+h/2)*h2), d.Height)

	// image.Rect would swap inverted corners; keep them as decoded.
	return image.Rectangle{Min: image.Pt(x1, y1), Max: image.Pt(x2, y2)}
}

// truncate converts to int toward zero, saturating on values outside the
// int range so the clamp stays meaningful for huge exponents.
func truncate(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	}
	return int(v)
}

func clampInt(v, limit int) int {
	return max(0, min(v, limit))
}
