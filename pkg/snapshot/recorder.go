// Package snapshot saves periodic annotated frames to disk for later review.
package snapshot

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// thumbWidth is the width of generated thumbnails in pixels.
const thumbWidth = 320

// Recorder writes annotated JPEG snapshots plus thumbnails under a per-run
// directory. Directory names combine a timestamp with a short run ID so
// successive runs never collide.
type Recorder struct {
	dir   string
	runID string
	every int

	mu    sync.Mutex
	saved int
}

// NewRecorder creates the run directory under baseDir. every controls the
// cadence: one snapshot per N frames.
func NewRecorder(baseDir string, every int) (*Recorder, error) {
	if every < 1 {
		every = 1
	}

	runID := uuid.NewString()[:8]
	dir := filepath.Join(baseDir, time.Now().Format("20060102-150405")+"-"+runID)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}

	return &Recorder{dir: dir, runID: runID, every: every}, nil
}

// Dir returns the run directory snapshots are written into.
func (r *Recorder) Dir() string {
	return r.dir
}

// RunID returns the short run identifier.
func (r *Recorder) RunID() string {
	return r.runID
}

// Count returns how many snapshots have been saved so far.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saved
}

// ShouldSave reports whether the given frame index is on the cadence.
func (r *Recorder) ShouldSave(frameIdx int) bool {
	return frameIdx%r.every == 0
}

// Save writes the JPEG frame and a thumbnail to the run directory. The
// frame is decoded before anything touches disk, so a bad frame leaves no
// partial files behind.
func (r *Recorder) Save(jpegData []byte, frameIdx int) error {
	img, err := jpeg.Decode(bytes.NewReader(jpegData))
	if err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := fmt.Sprintf("frame-%06d.jpg", frameIdx)
	if err := os.WriteFile(filepath.Join(r.dir, name), jpegData, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	// The full-size frame is on disk; count it even if the thumbnail fails.
	r.saved++

	// Height 0 preserves the aspect ratio.
	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	thumbName := fmt.Sprintf("frame-%06d.thumb.jpg", frameIdx)
	if err := imaging.Save(thumb, filepath.Join(r.dir, thumbName)); err != nil {
		return fmt.Errorf("write thumbnail: %w", err)
	}
	return nil
}
