package main

import (
	"fmt"
	"os"
	"time"

	"github.com/emoset/emoset"
	"github.com/emoset/emoset/camera"
	"github.com/emoset/emoset/dataset"
	"github.com/emoset/emoset/utils"
	"github.com/spf13/cobra"
)

const controlsHelp = `Controls (preview window focused):
  space, c   capture the first visible face
  0-9        select the label by code
  t          toggle training / testing
  q, Esc     quit
`

var captureOpts struct {
	detector detectorOptions
	device   int
	label    string
	split    string
	delay    time.Duration
}

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture labeled faces from a live camera",
	RunE:  runCapture,
}

func init() {
	captureOpts.detector.register(captureCmd.Flags())
	captureCmd.Flags().IntVar(&captureOpts.device, "device", 0, "Video device index")
	captureCmd.Flags().StringVar(&captureOpts.label, "label", "neutral", "Initial emotion label")
	captureCmd.Flags().StringVar(&captureOpts.split, "split", string(dataset.Training), "Initial split: training or testing")
	captureCmd.Flags().DurationVar(&captureOpts.delay, "delay", emoset.DefaultDelay, "Pause between preview frames")
	rootCmd.AddCommand(captureCmd)
}

func runCapture(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	det, closeDetector, err := captureOpts.detector.load()
	if err != nil {
		return err
	}
	defer closeDetector()

	enc, err := newEncoder(ctx)
	if err != nil {
		return err
	}

	cam, err := camera.Open(captureOpts.device)
	if err != nil {
		return err
	}
	defer cam.Close()

	w, h := cam.Size()
	logger.Infof("Camera %d opened at %dx%d, appending to %s", captureOpts.device, w, h, datasetPath)

	win := camera.NewWindow("emoset")
	defer win.Close()

	sess := emoset.NewSession(cam, emoset.NewLocator(det), enc, logger)
	sess.Vocab = vocab
	sess.Surface = win
	sess.Delay = captureOpts.delay
	if err := sess.SetLabel(captureOpts.label); err != nil {
		return err
	}
	if err := sess.SetSplit(dataset.Split(captureOpts.split)); err != nil {
		return err
	}

	fmt.Fprint(os.Stderr, controlsHelp)
	now := time.Now()
	if err := sess.Run(ctx); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "\nSession time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	return nil
}
