package emoset

import (
	"image"
)

// grayFromNRGBA keeps the red channel of an image produced by the imaging
// package from a gray source, where all three color channels are equal.
func grayFromNRGBA(src *image.NRGBA) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		si := src.PixOffset(b.Min.X, b.Min.Y+y)
		di := dst.PixOffset(0, y)
		for x := 0; x < b.Dx(); x++ {
			dst.Pix[di+x] = src.Pix[si]
			si += 4
		}
	}
	return dst
}

// meanIntensity returns the average pixel value rounded to the nearest integer.
func meanIntensity(src *image.Gray) float64 {
	b := src.Bounds()
	n := b.Dx() * b.Dy()
	if n == 0 {
		return 0
	}
	var sum uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := src.PixOffset(b.Min.X, y)
		for _, v := range src.Pix[i : i+b.Dx()] {
			sum += uint64(v)
		}
	}
	return float64(int(float64(sum)/float64(n) + 0.5))
}

// grayPixels returns the intensities of src as one contiguous row-major slice.
func grayPixels(src *image.Gray) []uint8 {
	b := src.Bounds()
	if src.Stride == b.Dx() && b.Min == (image.Point{}) {
		return src.Pix[:b.Dx()*b.Dy()]
	}
	return CropGray(src, b).Pix
}
