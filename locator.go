package emoset

import (
	"image"

	"github.com/emoset/emoset/utils"
)

// DefaultMargin is the share of the face width added on every side of a detection.
const DefaultMargin = 0.5

// Detector finds raw face boxes on a grayscale frame.
// Boxes are returned in the detector's own order.
type Detector interface {
	Detect(gray *image.Gray) []image.Rectangle
}

// Locator turns raw detections into face regions: every box is widened by a
// margin proportional to its width and clamped to the frame.
type Locator struct {
	Detector Detector
	Margin   float64
}

// NewLocator returns a Locator using the default margin.
func NewLocator(d Detector) *Locator {
	return &Locator{Detector: d, Margin: DefaultMargin}
}

// Locate converts the frame to grayscale and returns the face regions found in it.
func (l *Locator) Locate(frame image.Image) []image.Rectangle {
	return l.LocateGray(ToGray(frame))
}

// LocateGray is Locate for frames that are already grayscale.
func (l *Locator) LocateGray(gray *image.Gray) []image.Rectangle {
	raw := l.Detector.Detect(gray)
	regions := make([]image.Rectangle, 0, len(raw))
	for _, r := range raw {
		if region := ExpandRegion(r, gray.Bounds(), l.Margin); !region.Empty() {
			regions = append(regions, region)
		}
	}
	return regions
}

// ExpandRegion widens r by margin*width on each side (truncated to whole pixels)
// and clamps the result to frame. An empty rectangle is returned when nothing of
// the region is left inside the frame.
func ExpandRegion(r, frame image.Rectangle, margin float64) image.Rectangle {
	w, h := r.Dx(), r.Dy()
	m := int(margin * float64(w))

	x := utils.Max(frame.Min.X, r.Min.X-m)
	y := utils.Max(frame.Min.Y, r.Min.Y-m)
	w = utils.Min(frame.Max.X-x, w+2*m)
	h = utils.Min(frame.Max.Y-y, h+2*m)
	if w <= 0 || h <= 0 {
		return image.Rectangle{}
	}
	return image.Rect(x, y, x+w, y+h)
}
