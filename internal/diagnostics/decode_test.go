package diagnostics

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecoder_ZeroOffsetsGivePriorBox(t *testing.T) {
	dec := NewDecoder(1000, 500)
	box := dec.Decode(0, 0, 0, 0)

	// 0.2 wide prior centered at 0.5, allow one pixel of float truncation
	assert.InDelta(t, 400, box.Min.X, 1)
	assert.InDelta(t, 600, box.Max.X, 1)
	assert.InDelta(t, 200, box.Min.Y, 1)
	assert.InDelta(t, 300, box.Max.Y, 1)
}

func TestDecoder_ScaleIsApplied(t *testing.T) {
	dec := NewDecoder(1000, 1000)
	base := dec.Decode(0, 0, 0, 0)
	shifted := dec.Decode(1, 0, 0, 0)

	// dx=1 moves the center by Scale of the width
	assert.InDelta(t, 80, shifted.Min.X-base.Min.X, 1)
	assert.Equal(t, base.Min.Y, shifted.Min.Y)
}

func TestDecoder_ClampsToImage(t *testing.T) {
	const w, h = 640, 480
	dec := NewDecoder(w, h)

	tests := []struct {
		name           string
		dx, dy, dw, dh float64
	}{
		{"huge box", 0, 0, 100, 100},
		{"far left and up", -200, -200, 0, 0},
		{"far right and down", 200, 200, 0, 0},
		{"overflowing exponent", 0, 0, 1e6, 1e6},
		{"tiny box", 0, 0, -1e6, -1e6},
		{"mixed", -7, 9, 3, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := dec.Decode(tt.dx, tt.dy, tt.dw, tt.dh)
			for _, x := range []int{box.Min.X, box.Max.X} {
				assert.GreaterOrEqual(t, x, 0)
				assert.LessOrEqual(t, x, w)
			}
			for _, y := range []int{box.Min.Y, box.Max.Y} {
				assert.GreaterOrEqual(t, y, 0)
				assert.LessOrEqual(t, y, h)
			}
		})
	}
}

func TestDecoder_HugeBoxCoversImage(t *testing.T) {
	dec := NewDecoder(320, 240)
	assert.Equal(t, image.Rect(0, 0, 320, 240), dec.Decode(0, 0, 100, 100))
}

func TestDecoder_OffImageCollapses(t *testing.T) {
	dec := NewDecoder(320, 240)
	box := dec.Decode(-200, -200, 0, 0)
	assert.Equal(t, image.Pt(0, 0), box.Min)
	assert.Equal(t, image.Pt(0, 0), box.Max)
}
