package vision

import (
	"fmt"
	"os"

	"gocv.io/x/gocv"
)

// LoadImage reads a color image from disk.
func LoadImage(path string) (gocv.Mat, error) {
	if _, err := os.Stat(path); err != nil {
		return gocv.Mat{}, fmt.Errorf("image not found: %w", err)
	}

	img := gocv.IMRead(path, gocv.IMReadColor)
	if img.Empty() {
		img.Close()
		return gocv.Mat{}, fmt.Errorf("failed to decode image %s", path)
	}
	return img, nil
}

// EncodeJPEG encodes img and returns a Go-owned copy of the bytes.
func EncodeJPEG(img gocv.Mat) ([]byte, error) {
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, img)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	defer buf.Close()

	data := make([]byte, len(buf.GetBytes()))
	copy(data, buf.GetBytes())
	return data, nil
}
