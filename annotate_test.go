package emoset

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnnotate_DrawRegions(t *testing.T) {
	frame := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	for i := 3; i < len(frame.Pix); i += 4 {
		frame.Pix[i] = 0xff
	}

	out := DrawRegions(frame, []image.Rectangle{image.Rect(10, 10, 50, 50)}, "")

	r, g, b, _ := out.At(10, 30).RGBA()
	assert.Greater(t, b>>8, uint32(200), "region outline is blue")
	assert.Less(t, r>>8, uint32(50))
	assert.Less(t, g>>8, uint32(50))

	r, g, b, _ = out.At(30, 30).RGBA()
	assert.Equal(t, uint32(0), r|g|b, "region interior is left untouched")

	assert.Equal(t, color.NRGBA{A: 0xff}, frame.NRGBAAt(10, 30), "the source frame is not modified")
}

func TestAnnotate_DrawCaption(t *testing.T) {
	frame := image.NewGray(image.Rect(0, 0, 160, 40))
	out := DrawRegions(frame, nil, "happy | training")

	lit := false
	for y := 8; y < 24 && !lit; y++ {
		for x := 10; x < 120; x++ {
			if r, _, _, _ := out.At(x, y).RGBA(); r>>8 > 128 {
				lit = true
				break
			}
		}
	}
	assert.True(t, lit, "caption should be drawn near the top left corner")
}

func TestAnnotate_VariantGrid(t *testing.T) {
	variants := []*image.Gray{
		filledGray(48, 48, 10),
		filledGray(48, 48, 20),
		filledGray(48, 48, 30),
		filledGray(48, 48, 40),
	}

	grid := VariantGrid(variants, VariantCell)
	assert.Equal(t, image.Rect(0, 0, 440, 440), grid.Bounds())

	assert.Equal(t, uint8(10), grid.NRGBAAt(110, 110).R)
	assert.Equal(t, uint8(20), grid.NRGBAAt(330, 110).R)
	assert.Equal(t, uint8(30), grid.NRGBAAt(110, 330).R)
	assert.Equal(t, uint8(40), grid.NRGBAAt(330, 330).R)
	assert.Equal(t, uint8(0xf0), grid.NRGBAAt(5, 5).R, "cells are padded")

	// Nearest neighbour upscaling keeps hard edges.
	assert.Equal(t, uint8(10), grid.NRGBAAt(10, 10).R)
	assert.Equal(t, uint8(10), grid.NRGBAAt(209, 209).R)
}
