package emoset

import (
	"errors"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/emoset/emoset/dataset"
	"github.com/emoset/emoset/utils"
)

// VariantCount is the number of variants derived from every face crop.
const VariantCount = 4

// ErrEmptyCrop is returned when the face crop has no pixels.
var ErrEmptyCrop = errors.New("empty face crop")

// Augmenter derives the training variants of a face crop.
type Augmenter struct {
	Size     int
	Filter   imaging.ResampleFilter
	Contrast float64
	Angle    float64
	Fill     color.Color
}

// NewAugmenter returns an Augmenter producing 48x48 variants.
func NewAugmenter() *Augmenter {
	return &Augmenter{
		Size:     dataset.GridSize,
		Filter:   imaging.Linear,
		Contrast: 1.5,
		Angle:    15,
		Fill:     color.Black,
	}
}

// Augment returns, in this order: the crop itself, its mirror image, a contrast
// enhanced copy and a copy rotated counter-clockwise around its center. Each
// variant is derived from the crop independently and stretched to Size x Size.
func (a *Augmenter) Augment(crop *image.Gray) ([]*image.Gray, error) {
	if crop == nil || crop.Bounds().Empty() {
		return nil, ErrEmptyCrop
	}
	return []*image.Gray{
		a.resize(crop),
		a.resize(imaging.FlipH(crop)),
		a.resize(a.enhance(crop)),
		a.resize(a.rotate(crop)),
	}, nil
}

func (a *Augmenter) resize(img image.Image) *image.Gray {
	return grayFromNRGBA(imaging.Resize(img, a.Size, a.Size, a.Filter))
}

// enhance moves every pixel away from the mean intensity of the crop by the contrast factor.
// Results are truncated and clamped to [0, 255].
func (a *Augmenter) enhance(src *image.Gray) *image.NRGBA {
	mean := meanIntensity(src)
	return imaging.AdjustFunc(src, func(c color.NRGBA) color.NRGBA {
		v := uint8(utils.Clamp(mean+a.Contrast*(float64(c.R)-mean), 0, 255))
		return color.NRGBA{R: v, G: v, B: v, A: c.A}
	})
}

// rotate keeps the canvas of the source: the corners uncovered by the rotation get the fill color.
func (a *Augmenter) rotate(src *image.Gray) *image.NRGBA {
	b := src.Bounds()
	rotated := imaging.Rotate(src, a.Angle, a.Fill)
	return imaging.CropCenter(rotated, b.Dx(), b.Dy())
}
