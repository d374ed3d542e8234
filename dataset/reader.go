package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// Reader decodes dataset rows one at a time.
type Reader struct {
	csv   *csv.Reader
	vocab *Vocabulary
	line  int
}

// NewReader returns a reader validating rows against vocab.
func NewReader(r io.Reader, vocab *Vocabulary) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	cr.ReuseRecord = true
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &Reader{csv: cr, vocab: vocab}
}

// Read returns the next record, or io.EOF once the input is exhausted.
func (r *Reader) Read() (Record, error) {
	fields, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		return Record{}, fmt.Errorf("%w: %v", ErrBadRecord, err)
	}
	r.line++
	rec, err := ParseRecord(fields, r.vocab)
	if err != nil {
		return Record{}, fmt.Errorf("row %d: %w", r.line, err)
	}
	return rec, nil
}

// Row returns the number of rows read so far.
func (r *Reader) Row() int { return r.line }

// ReadRow returns the record at the zero based index.
func ReadRow(r io.Reader, vocab *Vocabulary, index int) (Record, error) {
	if index < 0 {
		return Record{}, fmt.Errorf("invalid row index %d", index)
	}
	rd := NewReader(r, vocab)
	for {
		rec, err := rd.Read()
		if err == io.EOF {
			return Record{}, fmt.Errorf("row %d not found: dataset has %d rows", index, rd.Row())
		}
		if err != nil {
			return Record{}, err
		}
		if rd.Row()-1 == index {
			return rec, nil
		}
	}
}

// Stats counts records per emotion and split.
type Stats struct {
	Total  int
	Counts map[Emotion]map[Split]int
}

// Collect reads the whole dataset and fails on the first row violating the record invariants.
func Collect(r io.Reader, vocab *Vocabulary) (Stats, error) {
	st := Stats{Counts: make(map[Emotion]map[Split]int)}
	rd := NewReader(r, vocab)
	for {
		rec, err := rd.Read()
		if err == io.EOF {
			return st, nil
		}
		if err != nil {
			return st, err
		}
		if st.Counts[rec.Emotion] == nil {
			st.Counts[rec.Emotion] = make(map[Split]int)
		}
		st.Counts[rec.Emotion][rec.Usage]++
		st.Total++
	}
}
