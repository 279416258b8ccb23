// Package video wraps OpenCV capture and writer handles for the pipeline.
package video

import (
	"fmt"
	"os"

	"gocv.io/x/gocv"
)

// Source yields video frames one at a time. The pipeline owns the source
// exclusively for the duration of a run and closes it on exit.
type Source interface {
	// Read fills dst with the next frame. Returns false when the source
	// is exhausted.
	Read(dst *gocv.Mat) bool

	// FPS returns the source frame rate, or 0 if unknown.
	FPS() float64

	// Size returns the frame dimensions in pixels.
	Size() (width, height int)

	// Close releases the underlying capture handle.
	Close() error
}

// FileSource reads frames from a video file via gocv.VideoCapture.
type FileSource struct {
	cap  *gocv.VideoCapture
	path string
}

// OpenFile opens a video file for reading. Fails fast when the path does
// not exist or the container cannot be decoded.
func OpenFile(path string) (*FileSource, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("video not found: %s", path)
	}

	capture, err := gocv.OpenVideoCapture(path)
	if err != nil {
		return nil, fmt.Errorf("open video %s: %w", path, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("cannot decode video: %s", path)
	}

	return &FileSource{cap: capture, path: path}, nil
}

// Path returns the file the source was opened from.
func (s *FileSource) Path() string {
	return s.path
}

// Read fills dst with the next frame. Returns false at end of video or when
// the decoder hands back an empty frame.
func (s *FileSource) Read(dst *gocv.Mat) bool {
	if ok := s.cap.Read(dst); !ok {
		return false
	}
	return !dst.Empty()
}

// FPS returns the container frame rate.
func (s *FileSource) FPS() float64 {
	return s.cap.Get(gocv.VideoCaptureFPS)
}

// Size returns the frame dimensions.
func (s *FileSource) Size() (width, height int) {
	return int(s.cap.Get(gocv.VideoCaptureFrameWidth)),
		int(s.cap.Get(gocv.VideoCaptureFrameHeight))
}

// Close releases the capture handle.
func (s *FileSource) Close() error {
	return s.cap.Close()
}
