package emoset

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/cyclopcam/logs"
	"github.com/emoset/emoset/dataset"
	"github.com/emoset/emoset/utils"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// ErrLabelFromURL is returned when labels should come from directory names but the source is a URL.
var ErrLabelFromURL = errors.New("labels cannot be taken from the directory of a downloaded image")

// Supported files
var validExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif"}

// Importer runs the capture pipeline over still images instead of a camera.
// Decoding, detection and augmentation run on a pool of workers, while every
// append happens on the goroutine calling Import.
type Importer struct {
	Locator   *Locator
	Augmenter *Augmenter
	Store     Appender
	Log       logs.Log

	Label string
	Split dataset.Split
	// LabelFromDir takes the label of each image from the name of its parent directory.
	LabelFromDir bool
	Workers      int

	// Progress, if set, is called once per processed file.
	Progress func(ImportResult)
}

// ImportResult is the outcome of one image file.
type ImportResult struct {
	Path    string
	Label   string
	Outcome Outcome
	Err     error
}

// ImportSummary counts the processed files per outcome.
type ImportSummary struct {
	Files   int
	Saved   int
	NoFace  int
	Failed  int
	Records int
}

// job holds the relevant information about one decoded and augmented file.
type job struct {
	path     string
	label    string
	region   image.Rectangle
	variants []*image.Gray
	err      error
}

// NewImporter returns an Importer using all the available CPUs.
func NewImporter(loc *Locator, store Appender, log logs.Log) *Importer {
	return &Importer{
		Locator:   loc,
		Augmenter: NewAugmenter(),
		Store:     store,
		Log:       log,
		Label:     "neutral",
		Split:     dataset.Training,
		Workers:   runtime.NumCPU(),
	}
}

// Import processes src, which can be an image file, a directory walked
// recursively or the URL of an image. Files that cannot be decoded, show no
// face or carry an unknown label are counted and skipped; an unavailable
// store stops the import.
func (im *Importer) Import(ctx context.Context, src string) (ImportSummary, error) {
	if utils.IsValidUrl(src) {
		if im.LabelFromDir {
			return ImportSummary{}, ErrLabelFromURL
		}
		f, err := utils.DownloadImage(src)
		if err != nil {
			return ImportSummary{}, fmt.Errorf("failed to load the source image: %w", err)
		}
		defer os.Remove(f.Name())
		f.Close()
		return im.importFiles(ctx, func(done <-chan struct{}) (<-chan string, <-chan error) {
			return singlePath(f.Name())
		})
	}

	fs, err := os.Stat(src)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("failed to load the source: %w", err)
	}
	if !fs.IsDir() {
		return im.importFiles(ctx, func(done <-chan struct{}) (<-chan string, <-chan error) {
			return singlePath(src)
		})
	}
	return im.importFiles(ctx, func(done <-chan struct{}) (<-chan string, <-chan error) {
		return walkDir(done, src, validExtensions)
	})
}

func (im *Importer) importFiles(
	ctx context.Context,
	source func(done <-chan struct{}) (<-chan string, <-chan error),
) (ImportSummary, error) {
	var (
		summary ImportSummary
		wg      sync.WaitGroup
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Limit the concurrently running workers to maxWorkers.
	workers := im.Workers
	if workers <= 0 || workers > maxWorkers {
		workers = utils.Min(runtime.NumCPU(), maxWorkers)
	}

	paths, errc := source(ctx.Done())
	jobs := make(chan job)

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			im.consumer(ctx, paths, jobs)
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(jobs)
		wg.Wait()
	}()

	for j := range jobs {
		res := im.store(ctx, j)
		summary.Files++
		summary.Records += res.Outcome.Written
		switch {
		case res.Err != nil:
			summary.Failed++
			im.Log.Warnf("Skipping %s: %v", j.path, res.Err)
		case res.Outcome.Status == SkippedNoFace:
			summary.NoFace++
		default:
			summary.Saved++
		}
		if im.Progress != nil {
			im.Progress(res)
		}
		if errors.Is(res.Err, dataset.ErrStoreUnavailable) {
			return summary, res.Err
		}
	}

	if err := <-errc; err != nil {
		return summary, err
	}
	return summary, ctx.Err()
}

// consumer reads the path names from the paths channel and runs detection and augmentation on each image.
func (im *Importer) consumer(ctx context.Context, paths <-chan string, jobs chan<- job) {
	for path := range paths {
		j := im.prepare(path)
		select {
		case <-ctx.Done():
			return
		case jobs <- j:
		}
	}
}

func (im *Importer) prepare(path string) job {
	j := job{path: path, label: im.labelFor(path)}

	img, err := decodeImg(path)
	if err != nil {
		j.err = err
		return j
	}
	gray := ToGray(img)
	regions := im.Locator.LocateGray(gray)
	if len(regions) == 0 {
		return j
	}
	j.region = regions[0]
	j.variants, j.err = im.Augmenter.Augment(CropGray(gray, j.region))
	return j
}

// store appends the variants of a prepared job. It only ever runs on the Import goroutine.
func (im *Importer) store(ctx context.Context, j job) ImportResult {
	res := ImportResult{Path: j.path, Label: j.label, Err: j.err}
	res.Outcome.Status = Failed
	if j.err != nil {
		return res
	}
	if len(j.variants) == 0 {
		res.Outcome.Status = SkippedNoFace
		return res
	}

	n, err := im.Store.Append(ctx, j.label, j.variants, im.Split)
	res.Err = err
	res.Outcome.Region = j.region
	res.Outcome.Written = n
	if n > 0 {
		res.Outcome.Status = Saved
	}
	return res
}

func (im *Importer) labelFor(path string) string {
	if im.LabelFromDir {
		return LabelFromDir(path)
	}
	return im.Label
}

// LabelFromDir returns the lower cased name of the directory holding path,
// so that happy/img001.jpg is labelled "happy".
func LabelFromDir(path string) string {
	return strings.ToLower(filepath.Base(filepath.Dir(path)))
}

func singlePath(path string) (<-chan string, <-chan error) {
	pathChan := make(chan string, 1)
	errChan := make(chan error, 1)
	pathChan <- path
	close(pathChan)
	errChan <- nil
	return pathChan, errChan
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each supported image to a new channel.
// It finishes in case the done channel is getting closed.
func walkDir(
	done <-chan struct{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if !isValidExtension(strings.ToLower(filepath.Ext(d.Name())), srcExts) {
				return nil
			}

			select {
			case <-done:
				return errors.New("directory walk cancelled")
			case pathChan <- path:
			}
			return nil
		})
	}()
	return pathChan, errChan
}

// isValidExtension checks for the supported extensions.
func isValidExtension(ext string, extensions []string) bool {
	for _, ex := range extensions {
		if ex == ext {
			return true
		}
	}
	return false
}
