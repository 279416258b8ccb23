package pipeline

import (
	"gocv.io/x/gocv"

	"github.com/roadeye/lanewatch/pkg/lane"
	"github.com/roadeye/lanewatch/pkg/snapshot"
	"github.com/roadeye/lanewatch/pkg/video"
)

// MatSink consumes annotated frames as OpenCV mats. The mat is only valid
// for the duration of the call.
type MatSink interface {
	WriteFrame(frame gocv.Mat, det lane.Detection, frameIdx int) error
}

// JPEGSink consumes annotated frames as encoded JPEG bytes. The pipeline
// encodes each frame at most once regardless of how many JPEG sinks are
// attached.
type JPEGSink interface {
	WriteJPEG(jpegData []byte, det lane.Detection, frameIdx int) error
}

// WriterSink forwards annotated frames to a video file.
type WriterSink struct {
	W *video.Writer
}

// WriteFrame appends the frame to the output video.
func (s WriterSink) WriteFrame(frame gocv.Mat, _ lane.Detection, _ int) error {
	return s.W.Write(frame)
}

// SnapshotSink saves annotated frames on the recorder's cadence.
type SnapshotSink struct {
	R *snapshot.Recorder
}

// WriteJPEG saves the frame when it falls on the snapshot cadence.
func (s SnapshotSink) WriteJPEG(jpegData []byte, _ lane.Detection, frameIdx int) error {
	if !s.R.ShouldSave(frameIdx) {
		return nil
	}
	return s.R.Save(jpegData, frameIdx)
}
