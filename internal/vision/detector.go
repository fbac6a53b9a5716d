package vision

import (
	"errors"
	"fmt"
	"image"
	"os"

	"gocv.io/x/gocv"

	"facediag/internal/diagnostics"
)

// Output layers of the ResNet-SSD face detector.
const (
	ConfLayer = "mbox_conf"
	LocLayer  = "mbox_loc"
)

// BlobParams describes how an image is turned into the network input.
type BlobParams struct {
	Scale  float64
	Size   image.Point
	Mean   gocv.Scalar
	SwapRB bool
	Crop   bool
}

// DefaultBlobParams matches the preprocessing the face detector was trained with.
func DefaultBlobParams() BlobParams {
	return BlobParams{
		Scale:  1.0,
		Size:   image.Pt(300, 300),
		Mean:   gocv.NewScalar(104, 177, 123, 0),
		SwapRB: false,
		Crop:   false,
	}
}

// Detector wraps the face detection network.
type Detector struct {
	net        gocv.Net
	modelPath  string
	configPath string
	params     BlobParams
}

// NewDetector loads the network from its weights and graph description.
func NewDetector(modelPath, configPath string) (*Detector, error) {
	d := &Detector{
		modelPath:  modelPath,
		configPath: configPath,
		params:     DefaultBlobParams(),
	}

	if err := d.initializeNet(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Detector) initializeNet() error {
	if _, err := os.Stat(d.modelPath); os.IsNotExist(err) {
		return fmt.Errorf("model file not found: %s", d.modelPath)
	}

	if _, err := os.Stat(d.configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s", d.configPath)
	}

	net := gocv.ReadNet(d.modelPath, d.configPath)
	if net.Empty() {
		return fmt.Errorf("failed to load network from %s", d.modelPath)
	}
	errBackend := net.SetPreferableBackend(gocv.NetBackendDefault)
	errTarget := net.SetPreferableTarget(gocv.NetTargetCPU)

	if err := preferenceError(errBackend, errTarget); err != nil {
		net.Close()
		return err
	}

	d.net = net
	return nil
}

// preferenceError combines the results of selecting the backend and target.
func preferenceError(errBackend, errTarget error) error {
	if errBackend != nil || errTarget != nil {
		return fmt.Errorf("failed to set preferable backend or target: %w", errors.Join(errBackend, errTarget))
	}
	return nil
}

// Infer runs a forward pass and copies both raw heads out of the engine.
func (d *Detector) Infer(img gocv.Mat) (*diagnostics.Tensors, error) {
	if img.Empty() {
		return nil, fmt.Errorf("input image is empty")
	}

	blob := gocv.BlobFromImage(img, d.params.Scale, d.params.Size, d.params.Mean, d.params.SwapRB, d.params.Crop)
	defer blob.Close()

	d.net.SetInput(blob, "")

	outputs := d.net.ForwardLayers([]string{ConfLayer, LocLayer})
	defer func() {
		for i := range outputs {
			outputs[i].Close()
		}
	}()
	if len(outputs) != 2 {
		return nil, fmt.Errorf("expected 2 output blobs, got %d", len(outputs))
	}

	conf, err := copyFloats(outputs[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ConfLayer, err)
	}
	loc, err := copyFloats(outputs[1])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", LocLayer, err)
	}

	return diagnostics.NewTensors(conf, loc, outputs[0].Size(), outputs[1].Size())
}

// copyFloats copies a float32 Mat into Go memory so it outlives the Mat.
func copyFloats(m gocv.Mat) ([]float32, error) {
	if m.Type() != gocv.MatTypeCV32F {
		return nil, fmt.Errorf("unexpected mat type %v", m.Type())
	}
	if !m.IsContinuous() {
		m = m.Clone()
		defer m.Close()
	}

	data, err := m.DataPtrFloat32()
	if err != nil {
		return nil, err
	}
	out := make([]float32, len(data))
	copy(out, data)
	return out, nil
}

// Close releases the network.
func (d *Detector) Close() {
	if !d.net.Empty() {
		d.net.Close()
	}
}
