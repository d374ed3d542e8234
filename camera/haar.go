package camera

import (
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// HaarDetector finds frontal faces with an OpenCV Haar cascade,
// e.g. haarcascade_frontalface_default.xml.
type HaarDetector struct {
	// The classifier keeps internal buffers, so calls are serialized.
	mu         sync.Mutex
	classifier gocv.CascadeClassifier

	ScaleFactor  float64
	MinNeighbors int
	MinSize      image.Point
}

// LoadHaarDetector loads the cascade XML at path.
func LoadHaarDetector(path string) (*HaarDetector, error) {
	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(path) {
		classifier.Close()
		return nil, fmt.Errorf("error reading cascade file: %v", path)
	}
	return &HaarDetector{
		classifier:   classifier,
		ScaleFactor:  1.1,
		MinNeighbors: 3,
		MinSize:      image.Pt(30, 30),
	}, nil
}

// Detect implements emoset.Detector.
func (d *HaarDetector) Detect(gray *image.Gray) []image.Rectangle {
	mat, err := gocv.ImageGrayToMatGray(gray)
	if err != nil {
		return nil
	}
	defer mat.Close()

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.classifier.DetectMultiScaleWithParams(mat, d.ScaleFactor, d.MinNeighbors, 0, d.MinSize, image.Pt(0, 0))
}

// Close releases the classifier.
func (d *HaarDetector) Close() error {
	return d.classifier.Close()
}
