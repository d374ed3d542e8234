package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/emoset/emoset"
	"github.com/emoset/emoset/camera"
	"github.com/emoset/emoset/utils"
	"github.com/spf13/pflag"
)

// detectorOptions holds the face detector flags shared by capture and import.
type detectorOptions struct {
	Kind    string
	Cascade string
}

func (o *detectorOptions) register(fs *pflag.FlagSet) {
	fs.StringVar(&o.Kind, "detector", "pigo", "Face detector backend: pigo or haar")
	fs.StringVar(&o.Cascade, "cascade", "", "Cascade file: pigo facefinder or OpenCV Haar XML (default: $EMOSET_CASCADE)")
}

// load unpacks the cascade while a spinner runs. The returned closer releases native resources.
func (o *detectorOptions) load() (emoset.Detector, func(), error) {
	path := o.Cascade
	if path == "" {
		path = os.Getenv("EMOSET_CASCADE")
	}
	if path == "" {
		return nil, nil, errors.New("a cascade file is required, set --cascade or $EMOSET_CASCADE")
	}

	spinner := utils.NewSpinner(utils.StatusLine("loading the face detector...", utils.DefaultMessage), 80*time.Millisecond, true)
	spinner.Start()
	now := time.Now()

	var (
		det    emoset.Detector
		closer = func() {}
		err    error
	)
	switch o.Kind {
	case "pigo":
		det, err = emoset.LoadPigoDetector(path)
	case "haar":
		var haar *camera.HaarDetector
		haar, err = camera.LoadHaarDetector(path)
		if err == nil {
			det = haar
			closer = func() { haar.Close() }
		}
	default:
		err = fmt.Errorf("unknown detector %q, expected pigo or haar", o.Kind)
	}

	if err != nil {
		spinner.StopMsg = utils.StatusLine("loading the face detector failed ✘", utils.ErrorMessage)
		spinner.Stop()
		return nil, nil, err
	}
	spinner.StopMsg = utils.StatusLine(
		fmt.Sprintf("%s detector ready in %s ✔", o.Kind, utils.FormatTime(time.Since(now))),
		utils.SuccessMessage,
	)
	spinner.Stop()
	return det, closer, nil
}
