package diagnostics

import "fmt"

// Tensors holds the two raw SSD output heads for a single image.
type Tensors struct {
	Conf      []float32 // (background, face) logit pairs, 2 per anchor
	Loc       []float32 // (dx, dy, dw, dh) regression values, 4 per anchor
	ConfShape []int
	LocShape  []int
	Anchors   int
}

// NewTensors validates the head lengths against each other and derives the
// anchor count from the confidence head.
func NewTensors(conf, loc []float32, confShape, locShape []int) (*Tensors, error) {
	if len(conf)%2 != 0 {
		return nil, fmt.Errorf("confidence tensor has odd length %d", len(conf))
	}
	anchors := len(conf) / 2
	if len(loc) != anchors*4 {
		return nil, fmt.Errorf("location tensor has %d values, expected %d for %d anchors", len(loc), anchors*4, anchors)
	}

	return &Tensors{
		Conf:      conf,
		Loc:       loc,
		ConfShape: confShape,
		LocShape:  locShape,
		Anchors:   anchors,
	}, nil
}

// ConfidenceAt returns the face probability of anchor i.
func (t *Tensors) ConfidenceAt(i int) float64 {
	return Confidence(float64(t.Conf[i*2]), float64(t.Conf[i*2+1]))
}

// Offsets returns the raw regression values of anchor i.
func (t *Tensors) Offsets(i int) (dx, dy, dw, dh float64) {
	o := t.Loc[i*4 : i*4+4]
	return float64(o[0]), float64(o[1]), float64(o[2]), float64(o[3])
}
