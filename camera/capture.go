// Package camera connects the capture pipeline to OpenCV: a webcam frame source,
// HighGUI preview windows and a Haar cascade face detector.
package camera

import (
	"fmt"
	"image"

	"github.com/emoset/emoset"
	"gocv.io/x/gocv"
)

// Camera is a frame source backed by a local video device.
type Camera struct {
	cap *gocv.VideoCapture
	mat gocv.Mat
}

// Open starts capturing from the video device with the given index.
func Open(device int) (*Camera, error) {
	vc, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("cannot open video device %d: %w", device, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("cannot open video device %d", device)
	}
	return &Camera{cap: vc, mat: gocv.NewMat()}, nil
}

// Size returns the frame dimensions reported by the device.
func (c *Camera) Size() (width, height int) {
	return int(c.cap.Get(gocv.VideoCaptureFrameWidth)), int(c.cap.Get(gocv.VideoCaptureFrameHeight))
}

// Read grabs the next frame. It returns emoset.ErrFrameUnavailable when the device gives nothing.
func (c *Camera) Read() (image.Image, error) {
	if ok := c.cap.Read(&c.mat); !ok || c.mat.Empty() {
		return nil, emoset.ErrFrameUnavailable
	}
	img, err := c.mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("cannot convert frame: %w", err)
	}
	return img, nil
}

// Close releases the device.
func (c *Camera) Close() error {
	c.mat.Close()
	return c.cap.Close()
}
