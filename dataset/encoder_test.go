package dataset

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMirror struct {
	batches [][]Record
	err     error
}

func (m *recordingMirror) Insert(_ context.Context, records []Record) error {
	m.batches = append(m.batches, records)
	return m.err
}

func uniformGrid(v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, GridSize, GridSize))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func fourVariants() []*image.Gray {
	return []*image.Gray{uniformGrid(10), uniformGrid(20), uniformGrid(30), gradientGrid()}
}

func TestEncoder_AppendsFourRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.csv")
	enc := NewEncoder(path, nil)

	n, err := enc.Append(context.Background(), "happy", fourVariants(), Testing)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\r\n"), "\r\n")
	require.Len(t, lines, 4)

	for i, line := range lines {
		fields := strings.Split(line, ",")
		require.Len(t, fields, 3, "line %d", i)
		assert.Equal(t, "3", fields[0])
		assert.Equal(t, "testing", fields[2])
		assert.Len(t, strings.Fields(fields[1]), PixelCount)
	}
	assert.True(t, strings.HasPrefix(lines[0], "3,10 10 10 "))
	assert.True(t, strings.HasPrefix(lines[3], "3,0 1 2 3 "))
}

func TestEncoder_AppendNeverTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte("existing\r\n"), 0644))

	enc := NewEncoder(path, nil)
	_, err := enc.Append(context.Background(), "neutral", fourVariants(), Training)
	require.NoError(t, err)
	_, err = enc.Append(context.Background(), "angry", fourVariants(), Training)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "existing\r\n6,"))
	assert.Equal(t, 9, strings.Count(string(data), "\r\n"))
}

func TestEncoder_UnknownLabelWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.csv")
	enc := NewEncoder(path, nil)

	n, err := enc.Append(context.Background(), "bored", fourVariants(), Training)
	assert.ErrorIs(t, err, ErrUnknownLabel)
	assert.Equal(t, 0, n)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "store must not be created for a rejected label")
}

func TestEncoder_RejectsBadSplitAndGrid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.csv")
	enc := NewEncoder(path, nil)

	_, err := enc.Append(context.Background(), "happy", fourVariants(), Split("validation"))
	assert.ErrorIs(t, err, ErrUnknownSplit)

	variants := fourVariants()
	variants[2] = image.NewGray(image.Rect(0, 0, 47, 48))
	n, err := enc.Append(context.Background(), "happy", variants, Training)
	assert.ErrorIs(t, err, ErrBadGrid)
	assert.Equal(t, 0, n)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestEncoder_StoreUnavailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dataset.csv")
	enc := NewEncoder(path, nil)

	n, err := enc.Append(context.Background(), "happy", fourVariants(), Training)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Equal(t, 0, n)
}

func TestEncoder_Mirror(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.csv")
	mirror := &recordingMirror{}
	enc := NewEncoder(path, nil)
	enc.Mirror = mirror

	n, err := enc.Append(context.Background(), "surprise", fourVariants(), Training)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	require.Len(t, mirror.batches, 1)
	assert.Len(t, mirror.batches[0], 4)
	assert.Equal(t, Surprise, mirror.batches[0][0].Emotion)

	mirror.err = errors.New("connection reset")
	n, err = enc.Append(context.Background(), "surprise", fourVariants(), Training)
	assert.Error(t, err)
	assert.Equal(t, 4, n, "the file append already happened")
}

func TestEncoder_RecordsReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.csv")
	enc := NewEncoder(path, nil)
	variants := fourVariants()

	_, err := enc.Append(context.Background(), "fear", variants, Testing)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rd := NewReader(f, nil)
	for i, v := range variants {
		rec, err := rd.Read()
		require.NoError(t, err, "record %d", i)
		assert.Equal(t, Fear, rec.Emotion)
		assert.Equal(t, Testing, rec.Usage)
		assert.Equal(t, v.Pix, rec.Image().Pix)
	}
}
