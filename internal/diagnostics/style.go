package diagnostics

import "image/color"

// Style is how a detection is drawn.
type Style struct {
	Color     color.RGBA
	Thickness int
}

var (
	highStyle   = Style{Color: color.RGBA{R: 0, G: 255, B: 0, A: 0}, Thickness: 3}   // green
	mediumStyle = Style{Color: color.RGBA{R: 255, G: 255, B: 0, A: 0}, Thickness: 2} // yellow
	lowStyle    = Style{Color: color.RGBA{R: 0, G: 0, B: 255, A: 0}, Thickness: 1}   // blue

	// MidlineStyle draws the left/right divider.
	MidlineStyle = Style{Color: color.RGBA{R: 255, G: 255, B: 255, A: 0}, Thickness: 2}
)

// StyleFor picks the drawing tier for a confidence.
func StyleFor(confidence float64) Style {
	switch {
	case confidence >= 0.8:
		return highStyle
	case confidence >= 0.5:
		return mediumStyle
	default:
		return lowStyle
	}
}
