package diagnostics

import "math"

// Softmax2 returns the background and face probabilities for one anchor.
// The larger logit is subtracted before exponentiating so large magnitudes
// do not overflow. Non-finite input is not guarded.
func Softmax2(bg, face float64) (float64, float64) {
	m := math.Max(bg, face)
	expBg := math.Exp(bg - m)
	expFace := math.Exp(face - m)
	sum := expBg + expFace
	return expBg / sum, expFace / sum
}

// Confidence returns the face probability for a (background, face) logit pair.
func Confidence(bg, face float64) float64 {
	_, p := Softmax2(bg, face)
	return p
}
