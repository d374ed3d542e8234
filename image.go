package emoset

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/emoset/emoset/utils"
	"golang.org/x/image/bmp"

	_ "image/gif"
)

// decodeImg decodes an image file to type image.Image
func decodeImg(src string) (image.Image, error) {
	ctype, err := utils.DetectContentType(src)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(ctype, "image/") {
		return nil, fmt.Errorf("%s is not an image file", src)
	}

	file, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("could not open the image file: %v", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("could not decode the image file: %v", err)
	}

	return img, nil
}

// EncodeImage writes img to w. The format is chosen from the file extension when
// w is a file, and defaults to png otherwise.
func EncodeImage(w io.Writer, img image.Image) error {
	ext := ".png"
	if f, ok := w.(*os.File); ok && f != os.Stdout {
		ext = strings.ToLower(filepath.Ext(f.Name()))
	}
	switch ext {
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	case "", ".png":
		return png.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	default:
		return errors.New("unsupported image format")
	}
}

// ToGray converts any image type to a single channel intensity grid with min-point at (0, 0).
// Color pixels are weighted with the ITU-R 601 luma coefficients.
func ToGray(img image.Image) *image.Gray {
	srcBounds := img.Bounds()
	srcMinX := srcBounds.Min.X
	srcMinY := srcBounds.Min.Y

	dst := image.NewGray(srcBounds.Sub(srcBounds.Min))
	dstW := srcBounds.Dx()
	dstH := srcBounds.Dy()

	switch src := img.(type) {
	case *image.Gray:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			copy(dst.Pix[di:di+dstW], src.Pix[si:si+dstW])
		}
	case *image.YCbCr:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.YOffset(srcMinX, srcMinY+dstY)
			copy(dst.Pix[di:di+dstW], src.Y[si:si+dstW])
		}
	case *image.NRGBA:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				dst.Pix[di+dstX] = luma(src.Pix[si], src.Pix[si+1], src.Pix[si+2])
				si += 4
			}
		}
	case *image.RGBA:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				dst.Pix[di+dstX] = luma(src.Pix[si], src.Pix[si+1], src.Pix[si+2])
				si += 4
			}
		}
	default:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				c := color.GrayModel.Convert(img.At(srcMinX+dstX, srcMinY+dstY)).(color.Gray)
				dst.Pix[di+dstX] = c.Y
			}
		}
	}

	return dst
}

// luma uses the same fixed point weights as color.GrayModel, so gray inputs stay exact.
func luma(r, g, b uint8) uint8 {
	return uint8((19595*uint32(r) + 38470*uint32(g) + 7471*uint32(b) + 1<<15) >> 16)
}

// CropGray copies the region r of src into a new grid with min-point at (0, 0).
func CropGray(src *image.Gray, r image.Rectangle) *image.Gray {
	r = r.Intersect(src.Bounds())
	dst := image.NewGray(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := 0; y < r.Dy(); y++ {
		si := src.PixOffset(r.Min.X, r.Min.Y+y)
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+r.Dx()], src.Pix[si:si+r.Dx()])
	}
	return dst
}
