package dataset

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
)

const (
	// GridSize is the side of the canonical square every stored face is stretched to.
	GridSize = 48
	// PixelCount is the number of intensities in one record.
	PixelCount = GridSize * GridSize
)

var (
	ErrBadGrid   = errors.New("variant is not a 48x48 grid")
	ErrBadRecord = errors.New("malformed record")
)

// Record is one row of the dataset file.
type Record struct {
	Emotion Emotion
	Pixels  []uint8
	Usage   Split
}

// NewRecord flattens a 48x48 grayscale grid row-major into a record.
func NewRecord(emotion Emotion, grid *image.Gray, usage Split) (Record, error) {
	if grid == nil {
		return Record{}, ErrBadGrid
	}
	b := grid.Bounds()
	if b.Dx() != GridSize || b.Dy() != GridSize {
		return Record{}, fmt.Errorf("%w: got %dx%d", ErrBadGrid, b.Dx(), b.Dy())
	}
	pixels := make([]uint8, PixelCount)
	for y := 0; y < GridSize; y++ {
		i := grid.PixOffset(b.Min.X, b.Min.Y+y)
		copy(pixels[y*GridSize:(y+1)*GridSize], grid.Pix[i:i+GridSize])
	}
	return Record{Emotion: emotion, Pixels: pixels, Usage: usage}, nil
}

// Fields returns the three CSV columns of the record.
func (r Record) Fields() []string {
	return []string{strconv.Itoa(int(r.Emotion)), joinPixels(r.Pixels), string(r.Usage)}
}

// Image rebuilds the 48x48 grid of the record.
func (r Record) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, GridSize, GridSize))
	copy(img.Pix, r.Pixels)
	return img
}

func joinPixels(pixels []uint8) string {
	buf := make([]byte, 0, len(pixels)*4)
	for i, p := range pixels {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendUint(buf, uint64(p), 10)
	}
	return string(buf)
}

// ParseRecord validates and decodes the three columns of a dataset row.
func ParseRecord(fields []string, vocab *Vocabulary) (Record, error) {
	if len(fields) != 3 {
		return Record{}, fmt.Errorf("%w: expected 3 fields, got %d", ErrBadRecord, len(fields))
	}
	code, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return Record{}, fmt.Errorf("%w: label %q is not an integer", ErrBadRecord, fields[0])
	}
	if !vocab.Valid(Emotion(code)) {
		return Record{}, fmt.Errorf("%w: label %d is outside the vocabulary", ErrBadRecord, code)
	}
	usage, err := ParseSplit(fields[2])
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrBadRecord, err)
	}

	values := strings.Fields(fields[1])
	if len(values) != PixelCount {
		return Record{}, fmt.Errorf("%w: expected %d pixels, got %d", ErrBadRecord, PixelCount, len(values))
	}
	pixels := make([]uint8, PixelCount)
	for i, v := range values {
		p, err := strconv.ParseUint(v, 10, 8)
		if err != nil {
			return Record{}, fmt.Errorf("%w: pixel %d: %q is not in [0,255]", ErrBadRecord, i, v)
		}
		pixels[i] = uint8(p)
	}
	return Record{Emotion: Emotion(code), Pixels: pixels, Usage: usage}, nil
}
