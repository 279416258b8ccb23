package video

import (
	"fmt"

	"gocv.io/x/gocv"
)

// writerCodec is the FourCC used for the annotated output video.
const writerCodec = "mp4v"

// Writer writes annotated frames to a video file via gocv.VideoWriter.
type Writer struct {
	w    *gocv.VideoWriter
	path string
}

// NewWriter creates a video file matching the source geometry. A zero fps
// (unknown source rate) falls back to 25.
func NewWriter(path string, fps float64, width, height int) (*Writer, error) {
	if fps <= 0 {
		fps = 25
	}

	w, err := gocv.VideoWriterFile(path, writerCodec, fps, width, height, true)
	if err != nil {
		return nil, fmt.Errorf("open video writer %s: %w", path, err)
	}
	if !w.IsOpened() {
		w.Close()
		return nil, fmt.Errorf("video writer failed to open: %s", path)
	}

	return &Writer{w: w, path: path}, nil
}

// Write appends one frame to the output video.
func (w *Writer) Write(frame gocv.Mat) error {
	return w.w.Write(frame)
}

// Path returns the output file path.
func (w *Writer) Path() string {
	return w.path
}

// Close finalizes the output file.
func (w *Writer) Close() error {
	return w.w.Close()
}
