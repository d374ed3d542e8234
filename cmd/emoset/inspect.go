package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/emoset/emoset"
	"github.com/emoset/emoset/dataset"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// pipeName is the file name that indicates stdout is being used.
const pipeName = "-"

var inspectOpts struct {
	row   int
	dest  string
	scale int
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Write one dataset record as an image file",
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().IntVar(&inspectOpts.row, "row", 0, "Zero based index of the record")
	inspectCmd.Flags().StringVar(&inspectOpts.dest, "image", "record.png", "Destination image (png, jpg or bmp), - for stdout")
	inspectCmd.Flags().IntVar(&inspectOpts.scale, "scale", 4, "Upscale factor")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	if inspectOpts.scale < 1 {
		return fmt.Errorf("invalid scale %d", inspectOpts.scale)
	}

	f, err := os.Open(datasetPath)
	if err != nil {
		return err
	}
	defer f.Close()

	rec, err := dataset.ReadRow(f, vocab, inspectOpts.row)
	if err != nil {
		return err
	}
	name, err := vocab.Name(rec.Emotion)
	if err != nil {
		return err
	}

	dst, err := openDestination(inspectOpts.dest)
	if err != nil {
		return err
	}
	if c, ok := dst.(io.Closer); ok && dst != os.Stdout {
		defer c.Close()
	}

	size := dataset.GridSize * inspectOpts.scale
	img := imaging.Resize(rec.Image(), size, size, imaging.NearestNeighbor)
	if err := emoset.EncodeImage(dst, img); err != nil {
		return err
	}
	if dst != os.Stdout {
		logger.Infof("Row %d (%s, %s) written to %s", inspectOpts.row, name, rec.Usage, inspectOpts.dest)
	}
	return nil
}

// openDestination returns stdout for the pipe name, refusing to dump binary data on a terminal.
func openDestination(dest string) (io.Writer, error) {
	if dest == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdout")
		}
		return os.Stdout, nil
	}
	f, err := os.Create(dest)
	if err != nil {
		return nil, fmt.Errorf("unable to create the destination file: %v", err)
	}
	return f, nil
}
