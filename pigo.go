package emoset

import (
	"fmt"
	"image"
	"os"

	"github.com/emoset/emoset/utils"
	pigo "github.com/esimov/pigo/core"
)

// PigoDetector finds frontal faces with a pigo cascade.
type PigoDetector struct {
	classifier *pigo.Pigo

	MinSize     int
	ShiftFactor float64
	ScaleFactor float64
	IoU         float64
	MinQuality  float32
	Angle       float64
}

// NewPigoDetector unpacks a pigo cascade file. The settings mirror the ones
// used for the Haar cascade: a 30px minimum face and a 1.1 scale step.
func NewPigoDetector(cascade []byte) (*PigoDetector, error) {
	// Unpack the binary file. This will return the number of cascade trees,
	// the tree depth, the threshold and the prediction from tree's leaf nodes.
	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("error unpacking the cascade file: %v", err)
	}
	return &PigoDetector{
		classifier:  classifier,
		MinSize:     30,
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		IoU:         0.2,
		MinQuality:  5.0,
	}, nil
}

// LoadPigoDetector reads the cascade file at path.
func LoadPigoDetector(path string) (*PigoDetector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read the cascade file: %w", err)
	}
	return NewPigoDetector(data)
}

// Detect implements Detector.
func (d *PigoDetector) Detect(gray *image.Gray) []image.Rectangle {
	b := gray.Bounds()
	cols, rows := b.Dx(), b.Dy()

	cParams := pigo.CascadeParams{
		MinSize:     d.MinSize,
		MaxSize:     utils.Max(cols, rows),
		ShiftFactor: d.ShiftFactor,
		ScaleFactor: d.ScaleFactor,

		ImageParams: pigo.ImageParams{
			Pixels: grayPixels(gray),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	// Run the classifier over the obtained leaf nodes and return the detection results.
	// The result contains quadruplets representing the row, column, scale and detection score.
	dets := d.classifier.RunCascade(cParams, d.Angle)

	// Calculate the intersection over union (IoU) of two clusters.
	dets = d.classifier.ClusterDetections(dets, d.IoU)

	faces := make([]image.Rectangle, 0, len(dets))
	for _, det := range dets {
		if det.Q < d.MinQuality {
			continue
		}
		faces = append(faces, detectionRect(det).Add(b.Min))
	}
	return faces
}

// detectionRect converts a pigo detection, given by its center and side, to a rectangle.
func detectionRect(det pigo.Detection) image.Rectangle {
	half := det.Scale / 2
	return image.Rect(det.Col-half, det.Row-half, det.Col-half+det.Scale, det.Row-half+det.Scale)
}
