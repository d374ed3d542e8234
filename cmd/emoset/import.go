package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/emoset/emoset"
	"github.com/emoset/emoset/dataset"
	"github.com/emoset/emoset/utils"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var importOpts struct {
	detector     detectorOptions
	source       string
	workers      int
	label        string
	split        string
	labelFromDir bool
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Add faces found in image files, a directory tree or an image URL",
	RunE:  runImport,
}

func init() {
	importOpts.detector.register(importCmd.Flags())
	importCmd.Flags().StringVar(&importOpts.source, "in", "", "Image file, directory or URL")
	importCmd.Flags().IntVar(&importOpts.workers, "conc", runtime.NumCPU(), "Number of files to process concurrently")
	importCmd.Flags().StringVar(&importOpts.label, "label", "neutral", "Emotion label of the imported faces")
	importCmd.Flags().StringVar(&importOpts.split, "split", string(dataset.Training), "Split: training or testing")
	importCmd.Flags().BoolVar(&importOpts.labelFromDir, "label-from-dir", false, "Use the parent directory name of each image as its label")
	importCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	split, err := dataset.ParseSplit(importOpts.split)
	if err != nil {
		return err
	}
	if !importOpts.labelFromDir {
		if _, err := vocab.Code(importOpts.label); err != nil {
			return err
		}
	} else if utils.IsValidUrl(importOpts.source) {
		return fmt.Errorf("--label-from-dir needs a file or directory source: %w", emoset.ErrLabelFromURL)
	}

	det, closeDetector, err := importOpts.detector.load()
	if err != nil {
		return err
	}
	defer closeDetector()

	enc, err := newEncoder(ctx)
	if err != nil {
		return err
	}

	// The number of files is only known once the walk is over.
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Importing"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)

	im := emoset.NewImporter(emoset.NewLocator(det), enc, logger)
	im.Label = importOpts.label
	im.Split = split
	im.LabelFromDir = importOpts.labelFromDir
	im.Workers = importOpts.workers
	im.Progress = func(emoset.ImportResult) {
		bar.Add(1)
	}

	now := time.Now()
	summary, err := im.Import(ctx, importOpts.source)
	bar.Finish()
	fmt.Fprintln(os.Stderr)

	if err != nil && ctx.Err() == nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%s %d files, %s saved, %d without a face, %s failed\n",
		utils.StatusLine("import done:", utils.DefaultMessage),
		summary.Files,
		utils.DecorateText(fmt.Sprint(summary.Saved), utils.SuccessMessage),
		summary.NoFace,
		utils.DecorateText(fmt.Sprint(summary.Failed), utils.ErrorMessage),
	)
	fmt.Fprintf(os.Stderr, "%d records appended to %s in %s\n",
		summary.Records, datasetPath, utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	return ctx.Err()
}
