package emoset

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

const (
	// VariantCell is the side of one upscaled variant in the preview grid.
	VariantCell = 200
	variantPad  = 10
)

var (
	regionColor  = color.RGBA{B: 255, A: 255}
	captionColor = color.RGBA{R: 255, G: 255, A: 255}
)

// DrawRegions outlines every face region on a copy of frame and writes the caption in the top left corner.
func DrawRegions(frame image.Image, regions []image.Rectangle, caption string) image.Image {
	dc := gg.NewContextForImage(frame)

	dc.SetLineWidth(2)
	dc.SetColor(regionColor)
	for _, r := range regions {
		dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
		dc.Stroke()
	}

	if caption != "" {
		dc.SetColor(color.Black)
		dc.DrawString(caption, 11, 21)
		dc.SetColor(captionColor)
		dc.DrawString(caption, 10, 20)
	}
	return dc.Image()
}

// VariantGrid lays the variants out two per row, each upscaled to cell x cell with
// nearest neighbour sampling so the individual pixels stay visible.
func VariantGrid(variants []*image.Gray, cell int) *image.NRGBA {
	if cell <= 0 {
		cell = VariantCell
	}
	step := cell + 2*variantPad
	rows := (len(variants) + 1) / 2
	dst := imaging.New(2*step, rows*step, color.Gray{Y: 0xf0})

	for i, v := range variants {
		up := imaging.Resize(v, cell, cell, imaging.NearestNeighbor)
		pos := image.Pt((i%2)*step+variantPad, (i/2)*step+variantPad)
		dst = imaging.Paste(dst, up, pos)
	}
	return dst
}
