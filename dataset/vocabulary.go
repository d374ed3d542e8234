package dataset

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownLabel = errors.New("unknown label")
	ErrUnknownSplit = errors.New("unknown split")
)

// Emotion is the integer code stored in the first column of a record.
type Emotion int

// The seven emotion codes. Their values are part of the file format and never change.
const (
	Angry Emotion = iota
	Disgust
	Fear
	Happy
	Sad
	Surprise
	Neutral
)

// emotionNames holds the fixed part of every vocabulary, indexed by code.
var emotionNames = [...]string{"angry", "disgust", "fear", "happy", "sad", "surprise", "neutral"}

// legacyCategory is the eighth category of the original label set. It does not
// describe an emotion; it is kept at code 7 only so that existing dataset files
// stay readable. Use NewVocabulary to replace it.
const legacyCategory = "gay"

// Split selects the partition a record belongs to.
type Split string

const (
	Training Split = "training"
	Testing  Split = "testing"
)

// ParseSplit accepts only the two split literals.
func ParseSplit(s string) (Split, error) {
	switch Split(s) {
	case Training, Testing:
		return Split(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSplit, s)
}

// Toggle returns the other split.
func (s Split) Toggle() Split {
	if s == Testing {
		return Training
	}
	return Testing
}

// Vocabulary is a closed, ordered mapping between label names and codes.
type Vocabulary struct {
	names []string
	codes map[string]Emotion
}

// DefaultVocabulary returns the label set the dataset files were written with.
func DefaultVocabulary() *Vocabulary {
	v, _ := NewVocabulary(legacyCategory)
	return v
}

// NewVocabulary builds a vocabulary from the seven fixed emotions followed by
// the given extra categories, which receive codes 7, 8, ...
func NewVocabulary(extra ...string) (*Vocabulary, error) {
	v := &Vocabulary{codes: make(map[string]Emotion)}
	for _, name := range emotionNames {
		v.add(name)
	}
	for _, name := range extra {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			return nil, errors.New("empty label name")
		}
		if _, ok := v.codes[name]; ok {
			return nil, fmt.Errorf("duplicate label name %q", name)
		}
		v.add(name)
	}
	return v, nil
}

// ParseVocabulary reads a comma separated label list. The first seven names
// must be the fixed emotions in code order; the rest become extra categories.
func ParseVocabulary(list string) (*Vocabulary, error) {
	names := strings.Split(list, ",")
	if len(names) < len(emotionNames) {
		return nil, fmt.Errorf("label list needs at least %d names, got %d", len(emotionNames), len(names))
	}
	for i, want := range emotionNames {
		if got := strings.ToLower(strings.TrimSpace(names[i])); got != want {
			return nil, fmt.Errorf("label %d must be %q, got %q", i, want, got)
		}
	}
	return NewVocabulary(names[len(emotionNames):]...)
}

func (v *Vocabulary) add(name string) {
	v.codes[name] = Emotion(len(v.names))
	v.names = append(v.names, name)
}

// Code maps a label name to its code. Unknown names are rejected, never defaulted.
func (v *Vocabulary) Code(name string) (Emotion, error) {
	code, ok := v.codes[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLabel, name)
	}
	return code, nil
}

// Name maps a code back to its label name.
func (v *Vocabulary) Name(code Emotion) (string, error) {
	if !v.Valid(code) {
		return "", fmt.Errorf("%w: code %d", ErrUnknownLabel, code)
	}
	return v.names[code], nil
}

// Valid reports whether code belongs to the vocabulary.
func (v *Vocabulary) Valid(code Emotion) bool {
	return code >= 0 && int(code) < len(v.names)
}

func (v *Vocabulary) Len() int { return len(v.names) }

// Names returns the label names in code order.
func (v *Vocabulary) Names() []string {
	return append([]string(nil), v.names...)
}
