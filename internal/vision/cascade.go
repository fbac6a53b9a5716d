package vision

import (
	"errors"
	"fmt"
	"image"
	"os"

	"gocv.io/x/gocv"

	"facediag/internal/diagnostics"
)

// ErrCascadeNotFound is returned when none of the candidate paths exist.
var ErrCascadeNotFound = errors.New("cascade classifier not found")

// ReferenceDetector runs a classical Haar cascade for comparison.
type ReferenceDetector struct {
	paths        []string
	scaleFactor  float64
	minNeighbors int
	minSize      image.Point
}

// NewReferenceDetector searches paths in order for a cascade definition.
func NewReferenceDetector(paths []string) *ReferenceDetector {
	return &ReferenceDetector{
		paths:        paths,
		scaleFactor:  1.1,
		minNeighbors: 5,
		minSize:      image.Pt(30, 30),
	}
}

// FindCascade returns the first candidate path that exists.
func FindCascade(paths []string) (string, bool) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// Detect runs the cascade over a grayscale copy of img. Panics from the
// native library are turned into errors.
func (r *ReferenceDetector) Detect(img gocv.Mat) (faces []diagnostics.ReferenceFace, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			faces = nil
			err = fmt.Errorf("cascade panicked: %v", rec)
		}
	}()

	path, ok := FindCascade(r.paths)
	if !ok {
		return nil, ErrCascadeNotFound
	}

	classifier := gocv.NewCascadeClassifier()
	defer classifier.Close()

	if !classifier.Load(path) {
		return nil, fmt.Errorf("%w: %s could not be loaded", ErrCascadeNotFound, path)
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)

	rects := classifier.DetectMultiScaleWithParams(gray, r.scaleFactor, r.minNeighbors, 0, r.minSize, image.Pt(0, 0))

	faces = make([]diagnostics.ReferenceFace, 0, len(rects))
	for _, rect := range rects {
		faces = append(faces, diagnostics.NewReferenceFace(rect, img.Cols()))
	}
	return faces, nil
}
