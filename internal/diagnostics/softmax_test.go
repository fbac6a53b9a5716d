package diagnostics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfidence_EqualLogits(t *testing.T) {
	assert.Equal(t, 0.5, Confidence(0, 0))
	assert.Equal(t, 0.5, Confidence(7.25, 7.25))
}

func TestConfidence_StrongFace(t *testing.T) {
	assert.InDelta(t, 1.0, Confidence(-10, 10), 1e-8)
	assert.InDelta(t, 0.0, Confidence(10, -10), 1e-8)
}

func TestSoftmax2_SumsToOne(t *testing.T) {
	tests := []struct {
		bg, face float64
	}{
		{0, 0},
		{1, 2},
		{-3.5, 0.25},
		{1000, -1000},
		{-745, 709},
		{1e-12, -1e-12},
		{88.7, 88.8},
	}

	for _, tt := range tests {
		bg, face := Softmax2(tt.bg, tt.face)
		assert.False(t, math.IsNaN(face), "Softmax2(%v, %v) produced NaN", tt.bg, tt.face)
		assert.GreaterOrEqual(t, face, 0.0)
		assert.LessOrEqual(t, face, 1.0)
		assert.GreaterOrEqual(t, bg, 0.0)
		assert.LessOrEqual(t, bg, 1.0)
		assert.InDelta(t, 1.0, bg+face, 1e-12, "Softmax2(%v, %v)", tt.bg, tt.face)
	}
}

func TestConfidence_Monotonic(t *testing.T) {
	prev := Confidence(0, -5)
	for face := -4.0; face <= 5; face++ {
		c := Confidence(0, face)
		assert.Greater(t, c, prev)
		prev = c
	}
}
