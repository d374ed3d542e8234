package emoset

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImage_ToGrayKeepsGrayValues(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 30, 20))
	for i := range src.Pix {
		src.Pix[i] = uint8(i % 251)
	}
	sub := src.SubImage(image.Rect(5, 4, 25, 14)).(*image.Gray)

	gray := ToGray(sub)
	assert.Equal(t, image.Rect(0, 0, 20, 10), gray.Bounds())
	assert.Equal(t, sub.GrayAt(5, 4).Y, gray.GrayAt(0, 0).Y)
	assert.Equal(t, sub.GrayAt(24, 13).Y, gray.GrayAt(19, 9).Y)
}

func TestImage_ToGrayUsesLumaWeights(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	src.SetNRGBA(2, 0, color.NRGBA{B: 255, A: 255})
	src.SetNRGBA(3, 0, color.NRGBA{R: 100, G: 100, B: 100, A: 255})

	gray := ToGray(src)
	assert.Equal(t, uint8(76), gray.Pix[0])
	assert.Equal(t, uint8(150), gray.Pix[1])
	assert.Equal(t, uint8(29), gray.Pix[2])
	assert.Equal(t, uint8(100), gray.Pix[3], "neutral colors must keep their intensity")

	rgba := image.NewRGBA(image.Rect(0, 0, 1, 1))
	rgba.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	assert.Equal(t, uint8(76), ToGray(rgba).Pix[0])
}

func TestImage_ToGrayFromYCbCr(t *testing.T) {
	src := image.NewYCbCr(image.Rect(0, 0, 8, 8), image.YCbCrSubsampleRatio420)
	for i := range src.Y {
		src.Y[i] = 42
	}
	gray := ToGray(src)
	for _, v := range gray.Pix {
		assert.Equal(t, uint8(42), v)
	}
}

func TestImage_CropGray(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 10, 10))
	src.SetGray(3, 4, color.Gray{Y: 200})

	crop := CropGray(src, image.Rect(3, 4, 8, 10))
	assert.Equal(t, image.Rect(0, 0, 5, 6), crop.Bounds())
	assert.Equal(t, uint8(200), crop.GrayAt(0, 0).Y)

	crop.SetGray(0, 0, color.Gray{Y: 1})
	assert.Equal(t, uint8(200), src.GrayAt(3, 4).Y, "the crop must not share pixels with the frame")

	clipped := CropGray(src, image.Rect(8, 8, 20, 20))
	assert.Equal(t, image.Rect(0, 0, 2, 2), clipped.Bounds())
}

func TestImage_EncodeByExtension(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 48, 48))
	dir := t.TempDir()

	for _, name := range []string{"face.png", "face.jpg", "face.bmp"} {
		f, err := os.Create(filepath.Join(dir, name))
		require.NoError(t, err)
		require.NoError(t, EncodeImage(f, img), name)
		require.NoError(t, f.Close())

		decoded, err := decodeImg(f.Name())
		require.NoError(t, err, name)
		assert.Equal(t, 48, decoded.Bounds().Dx(), name)
	}

	f, err := os.Create(filepath.Join(dir, "face.tiff"))
	require.NoError(t, err)
	defer f.Close()
	assert.Error(t, EncodeImage(f, img))

	var buf bytes.Buffer
	require.NoError(t, EncodeImage(&buf, img))
	_, err = png.Decode(&buf)
	assert.NoError(t, err)
}

func TestImage_DecodeRejectsNonImages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.png")
	require.NoError(t, os.WriteFile(path, []byte("this is plain text, not a picture"), 0644))

	_, err := decodeImg(path)
	assert.Error(t, err)
}
