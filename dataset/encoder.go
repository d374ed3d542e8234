package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"image"
	"os"
)

// ErrStoreUnavailable is returned when the dataset file cannot be opened for append.
var ErrStoreUnavailable = errors.New("dataset store unavailable")

// Mirror receives a copy of every batch appended to the dataset file.
type Mirror interface {
	Insert(ctx context.Context, records []Record) error
}

// Encoder turns augmented variants into dataset rows and appends them to a CSV file.
// The file is opened, appended to and closed on every call; it is never truncated.
type Encoder struct {
	Path   string
	Vocab  *Vocabulary
	Mirror Mirror
}

// NewEncoder returns an encoder appending to path with the given vocabulary.
func NewEncoder(path string, vocab *Vocabulary) *Encoder {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &Encoder{Path: path, Vocab: vocab}
}

// Append writes one record per variant, in order, and returns how many records
// reached the file. Label, split and grid sizes are validated before the file is
// touched, so a rejected call writes nothing.
func (e *Encoder) Append(ctx context.Context, label string, variants []*image.Gray, split Split) (int, error) {
	code, err := e.Vocab.Code(label)
	if err != nil {
		return 0, err
	}
	if _, err := ParseSplit(string(split)); err != nil {
		return 0, err
	}

	records := make([]Record, 0, len(variants))
	for i, v := range variants {
		rec, err := NewRecord(code, v, split)
		if err != nil {
			return 0, fmt.Errorf("variant %d: %w", i, err)
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return 0, nil
	}

	data, err := encodeRows(records)
	if err != nil {
		return 0, err
	}

	f, err := os.OpenFile(e.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return 0, fmt.Errorf("append to %s: %w", e.Path, err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close %s: %w", e.Path, err)
	}

	if e.Mirror != nil {
		if err := e.Mirror.Insert(ctx, records); err != nil {
			return len(records), fmt.Errorf("mirror: %w", err)
		}
	}
	return len(records), nil
}

// encodeRows serializes the whole batch up front so it reaches the file in a single write.
// Rows end with CRLF, like the files produced by Python's csv module.
func encodeRows(records []Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = true
	for _, rec := range records {
		if err := w.Write(rec.Fields()); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
