package emoset

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/cyclopcam/logs"
	"github.com/emoset/emoset/dataset"
)

// DefaultDelay is the pause between two preview frames.
const DefaultDelay = 15 * time.Millisecond

// ErrFrameUnavailable is returned by a FrameSource that has no frame to give.
var ErrFrameUnavailable = errors.New("no frame available from the video source")

// FrameSource hands out the latest frame of a video feed.
type FrameSource interface {
	Read() (image.Image, error)
}

// Surface presents the session to the operator and reports the operator's input.
type Surface interface {
	ShowFrame(frame image.Image) error
	ShowVariants(variants []*image.Gray) error
	// WaitEvent blocks for at most delay and returns the operator's input, if any.
	WaitEvent(delay time.Duration) Event
}

// Appender persists the variants of one capture.
type Appender interface {
	Append(ctx context.Context, label string, variants []*image.Gray, split dataset.Split) (int, error)
}

// EventKind enumerates the operator actions.
type EventKind int

const (
	EventNone EventKind = iota
	EventCapture
	EventSelectLabel
	EventToggleSplit
	EventQuit
)

// Event is one operator action. Code holds the label code of EventSelectLabel.
type Event struct {
	Kind EventKind
	Code int
}

const keyEsc = 27

// KeyEvent maps a key code, as returned by a HighGUI wait, to an operator action.
func KeyEvent(key int) Event {
	switch {
	case key == ' ' || key == 'c' || key == 'C':
		return Event{Kind: EventCapture}
	case key >= '0' && key <= '9':
		return Event{Kind: EventSelectLabel, Code: key - '0'}
	case key == 't' || key == 'T':
		return Event{Kind: EventToggleSplit}
	case key == 'q' || key == 'Q' || key == keyEsc:
		return Event{Kind: EventQuit}
	}
	return Event{}
}

// Status tells what a capture did. The zero value is Failed.
type Status int

const (
	Failed Status = iota
	Saved
	SkippedNoFrame
	SkippedNoFace
)

func (s Status) String() string {
	switch s {
	case Failed:
		return "failed"
	case Saved:
		return "saved"
	case SkippedNoFrame:
		return "skipped: no frame"
	case SkippedNoFace:
		return "skipped: no face"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Outcome is the result of one capture trigger.
type Outcome struct {
	Status  Status
	Written int
	Region  image.Rectangle
}

// Session is the interactive capture loop. It is not safe for concurrent use:
// preview ticks and captures run one after the other on the caller's goroutine.
type Session struct {
	Source    FrameSource
	Locator   *Locator
	Augmenter *Augmenter
	Store     Appender
	Surface   Surface
	Vocab     *dataset.Vocabulary
	Log       logs.Log
	Delay     time.Duration

	label  string
	split  dataset.Split
	status string
}

// NewSession returns a session labelling captures "neutral" for training.
func NewSession(src FrameSource, loc *Locator, store Appender, log logs.Log) *Session {
	return &Session{
		Source:    src,
		Locator:   loc,
		Augmenter: NewAugmenter(),
		Store:     store,
		Vocab:     dataset.DefaultVocabulary(),
		Log:       log,
		Delay:     DefaultDelay,
		label:     "neutral",
		split:     dataset.Training,
	}
}

// Label returns the label applied to the next capture.
func (s *Session) Label() string { return s.label }

// Split returns the split applied to the next capture.
func (s *Session) Split() dataset.Split { return s.split }

// SetLabel selects the label of the following captures.
func (s *Session) SetLabel(name string) error {
	if _, err := s.Vocab.Code(name); err != nil {
		return err
	}
	s.label = name
	return nil
}

// SetSplit selects the split of the following captures.
func (s *Session) SetSplit(split dataset.Split) error {
	split, err := dataset.ParseSplit(string(split))
	if err != nil {
		return err
	}
	s.split = split
	return nil
}

// Tick renders one preview frame with every face region outlined and returns the regions.
func (s *Session) Tick() ([]image.Rectangle, error) {
	frame, err := s.Source.Read()
	if err != nil {
		return nil, err
	}
	regions := s.Locator.Locate(frame)
	if s.Surface != nil {
		if err := s.Surface.ShowFrame(DrawRegions(frame, regions, s.caption())); err != nil {
			return regions, err
		}
	}
	return regions, nil
}

// Capture saves the variants of the first face found in a fresh frame.
// A missing frame or a frame without faces is reported through the outcome
// status and is not an error.
func (s *Session) Capture(ctx context.Context) (Outcome, error) {
	frame, err := s.Source.Read()
	if errors.Is(err, ErrFrameUnavailable) {
		return Outcome{Status: SkippedNoFrame}, nil
	}
	if err != nil {
		return Outcome{Status: Failed}, err
	}

	gray := ToGray(frame)
	regions := s.Locator.LocateGray(gray)
	if len(regions) == 0 {
		return Outcome{Status: SkippedNoFace}, nil
	}
	region := regions[0]

	variants, err := s.Augmenter.Augment(CropGray(gray, region))
	if err != nil {
		return Outcome{Status: Failed, Region: region}, err
	}

	n, err := s.Store.Append(ctx, s.label, variants, s.split)
	if n == 0 {
		return Outcome{Status: Failed, Region: region}, err
	}
	s.Log.Infof("Saved %d augmented %s faces in %s mode", n, s.label, s.split)

	if s.Surface != nil {
		if err := s.Surface.ShowVariants(variants); err != nil {
			s.Log.Warnf("Could not show the augmented faces: %v", err)
		}
	}
	return Outcome{Status: Saved, Written: n, Region: region}, err
}

// Run renders the preview every Delay and reacts to the operator until the
// operator quits or ctx is cancelled. Failed captures are logged and the loop goes on.
func (s *Session) Run(ctx context.Context) error {
	if s.Surface == nil {
		return errors.New("session has no surface to render to")
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if _, err := s.Tick(); err != nil && !errors.Is(err, ErrFrameUnavailable) {
			s.Log.Warnf("Preview failed: %v", err)
		}
		if s.handle(ctx, s.Surface.WaitEvent(s.Delay)) {
			return nil
		}
	}
}

// handle applies one operator event and reports whether the loop should stop.
func (s *Session) handle(ctx context.Context, ev Event) bool {
	switch ev.Kind {
	case EventCapture:
		out, err := s.Capture(ctx)
		switch {
		case err != nil && out.Written > 0:
			s.Log.Warnf("Saved %d faces but the mirror failed: %v", out.Written, err)
			s.status = "mirror failed"
		case err != nil:
			s.Log.Errorf("Capture failed: %v", err)
			s.status = "capture failed"
		case out.Status == Saved:
			s.status = fmt.Sprintf("saved %d", out.Written)
		default:
			s.Log.Infof("Nothing saved, %s", out.Status)
			s.status = out.Status.String()
		}
	case EventSelectLabel:
		name, err := s.Vocab.Name(dataset.Emotion(ev.Code))
		if err != nil {
			s.Log.Warnf("No label with code %d", ev.Code)
			return false
		}
		s.label = name
		s.status = ""
	case EventToggleSplit:
		s.split = s.split.Toggle()
		s.status = ""
	case EventQuit:
		return true
	}
	return false
}

func (s *Session) caption() string {
	if s.status == "" {
		return fmt.Sprintf("%s | %s", s.label, s.split)
	}
	return fmt.Sprintf("%s | %s | %s", s.label, s.split, s.status)
}
