/*
Package emoset builds labeled facial expression datasets from a camera feed or from still images.

Every capture runs the same pipeline: the Locator finds the faces in a frame and widens each box
by half its width, the first face is cropped in grayscale, the Augmenter derives four 48x48
variants from the crop (original, mirrored, contrast enhanced and rotated) and the variants are
appended to the dataset file as FER style rows:

	3,70 80 82 72 58 58 60 63 54 58 60 48 89 115 121 ...,training

The live camera loop is driven by a Session, batches of image files go through an Importer.
Both only depend on small interfaces, so the pipeline can be exercised without a camera:

	loc := emoset.NewLocator(detector)
	sess := emoset.NewSession(source, loc, dataset.NewEncoder("dataset.csv", nil), logger)
	if err := sess.SetLabel("happy"); err != nil {
		return err
	}
	outcome, err := sess.Capture(ctx)
*/
package emoset
