package camera

import (
	"image"
	"time"

	"github.com/emoset/emoset"
	"gocv.io/x/gocv"
)

// VariantsTitle is the title of the window showing the last saved variants.
const VariantsTitle = "Augmented Faces"

// Window is a session surface made of two HighGUI windows: the live preview
// and, once something was saved, the grid of the last variants.
type Window struct {
	preview  *gocv.Window
	variants *gocv.Window
	title    string
}

// NewWindow opens the preview window.
func NewWindow(title string) *Window {
	return &Window{preview: gocv.NewWindow(title), title: title}
}

// ShowFrame displays an annotated frame.
func (w *Window) ShowFrame(frame image.Image) error {
	mat, err := gocv.ImageToMatRGB(frame)
	if err != nil {
		return err
	}
	defer mat.Close()
	w.preview.IMShow(mat)
	return nil
}

// ShowVariants displays the variants two per row, upscaled so single pixels can be told apart.
func (w *Window) ShowVariants(variants []*image.Gray) error {
	mat, err := gocv.ImageToMatRGB(emoset.VariantGrid(variants, emoset.VariantCell))
	if err != nil {
		return err
	}
	defer mat.Close()

	if w.variants == nil {
		w.variants = gocv.NewWindow(VariantsTitle)
	}
	w.variants.IMShow(mat)
	return nil
}

// WaitEvent pumps the HighGUI event loop for delay and translates the pressed key.
// Closing the preview window counts as quitting.
func (w *Window) WaitEvent(delay time.Duration) emoset.Event {
	ms := int(delay.Milliseconds())
	if ms < 1 {
		// A zero wait blocks until a key is pressed.
		ms = 1
	}
	key := w.preview.WaitKey(ms)
	if !w.preview.IsOpen() {
		return emoset.Event{Kind: emoset.EventQuit}
	}
	return emoset.KeyEvent(key)
}

// Close destroys both windows.
func (w *Window) Close() error {
	if w.variants != nil {
		w.variants.Close()
	}
	return w.preview.Close()
}
