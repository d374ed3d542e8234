package emoset

import (
	"image"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fixedDetector struct {
	faces []image.Rectangle
	calls atomic.Int32
}

func (d *fixedDetector) Detect(*image.Gray) []image.Rectangle {
	d.calls.Add(1)
	return d.faces
}

func box(x, y, w, h int) image.Rectangle {
	return image.Rect(x, y, x+w, y+h)
}

func TestLocator_ExpandRegion(t *testing.T) {
	frame := image.Rect(0, 0, 640, 480)

	testCases := []struct {
		name string
		in   image.Rectangle
		want image.Rectangle
	}{
		{name: "inside", in: box(100, 100, 60, 60), want: box(70, 70, 120, 120)},
		{name: "clamped at origin", in: box(10, 20, 60, 60), want: box(0, 0, 120, 120)},
		{name: "clamped at far edges", in: box(600, 400, 40, 40), want: box(580, 380, 60, 80)},
		{name: "odd width truncates margin", in: box(100, 100, 31, 31), want: box(85, 85, 61, 61)},
		{name: "margin follows width", in: box(200, 200, 40, 80), want: box(180, 180, 80, 120)},
		{name: "outside frame", in: box(700, 10, 30, 30), want: image.Rectangle{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExpandRegion(tc.in, frame, DefaultMargin)
			assert.Equal(t, tc.want, got)
			if !got.Empty() {
				assert.True(t, got.In(frame))
			}
		})
	}
}

func TestLocator_KeepsDetectorOrder(t *testing.T) {
	det := &fixedDetector{faces: []image.Rectangle{
		box(120, 120, 30, 30),
		box(900, 900, 30, 30),
		box(40, 40, 40, 40),
	}}
	loc := NewLocator(det)

	regions := loc.Locate(image.NewNRGBA(image.Rect(0, 0, 200, 200)))
	assert.Equal(t, int32(1), det.calls.Load())
	assert.Equal(t, []image.Rectangle{box(105, 105, 60, 60), box(20, 20, 80, 80)}, regions)
}

func TestLocator_NoFaces(t *testing.T) {
	loc := NewLocator(&fixedDetector{})
	assert.Empty(t, loc.Locate(image.NewGray(image.Rect(0, 0, 64, 64))))
}
