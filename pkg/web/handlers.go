package web

import (
	"bufio"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/valyala/fasthttp"

	"github.com/roadeye/lanewatch/pkg/hub"
	"github.com/roadeye/lanewatch/pkg/lane"
)

// mjpegInterval paces the MJPEG stream; frames arriving faster than this
// are coalesced into the latest one.
const mjpegInterval = 40 * time.Millisecond

// Telemetry is the per-frame lane summary broadcast to websocket clients.
type Telemetry struct {
	Frame    int       `json:"frame"`
	Segments int       `json:"segments"`
	Left     *LaneInfo `json:"left,omitempty"`
	Right    *LaneInfo `json:"right,omitempty"`
}

// LaneInfo describes one fitted lane line.
type LaneInfo struct {
	Slope      float64 `json:"slope"`
	Intercept  float64 `json:"intercept"`
	Support    int     `json:"support"`
	Confidence float64 `json:"confidence"`
}

func newTelemetry(frameIdx int, det lane.Detection) Telemetry {
	t := Telemetry{
		Frame:    frameIdx,
		Segments: len(det.Segments),
	}
	if det.Left != nil {
		t.Left = newLaneInfo(*det.Left)
	}
	if det.Right != nil {
		t.Right = newLaneInfo(*det.Right)
	}
	return t
}

func newLaneInfo(f lane.Fit) *LaneInfo {
	return &LaneInfo{
		Slope:      f.Slope,
		Intercept:  f.Intercept,
		Support:    f.Support,
		Confidence: f.Confidence(),
	}
}

// handleStats returns the current pipeline statistics
func (s *Server) handleStats(c *fiber.Ctx) error {
	if s.StatsFunc == nil {
		return c.Status(503).JSON(fiber.Map{
			"error": "pipeline not running",
		})
	}
	return c.JSON(s.StatsFunc())
}

// handleGetConfig returns the live detection configuration
func (s *Server) handleGetConfig(c *fiber.Ctx) error {
	return c.JSON(s.manager.GetConfig())
}

// handleUpdateConfig applies a partial parameter update, e.g.
// {"min_votes": 30, "canny_low": 40}
func (s *Server) handleUpdateConfig(c *fiber.Ctx) error {
	var params map[string]interface{}
	if err := c.BodyParser(&params); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "invalid JSON body",
		})
	}

	if err := s.manager.UpdateConfig(params); err != nil {
		return c.Status(422).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(s.manager.GetConfig())
}

// handleMJPEG streams annotated frames as multipart/x-mixed-replace, which
// any browser renders as live video.
func (s *Server) handleMJPEG(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "multipart/x-mixed-replace; boundary=frame")
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(s.streamMJPEG))
	return nil
}

// streamMJPEG writes multipart frame parts until the client disconnects or
// the server shuts down. The shutdown select matters: when frames stop
// changing the loop never writes, so a write error alone would never
// surface and fiber's Shutdown would wait on this handler forever.
func (s *Server) streamMJPEG(w *bufio.Writer) {
	ticker := time.NewTicker(mjpegInterval)
	defer ticker.Stop()

	var lastSent []byte
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
		}

		s.frameMu.RLock()
		frame := s.latestFrame
		s.frameMu.RUnlock()

		if len(frame) == 0 || &frame[0] == firstByte(lastSent) {
			continue
		}
		lastSent = frame

		if _, err := fmt.Fprintf(w, "--frame\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", len(frame)); err != nil {
			return
		}
		if _, err := w.Write(frame); err != nil {
			return
		}
		if _, err := w.WriteString("\r\n"); err != nil {
			return
		}
		if err := w.Flush(); err != nil {
			return
		}
	}
}

// firstByte returns a pointer to the first byte, used to cheaply detect
// whether the frame slice changed between ticks.
func firstByte(b []byte) *byte {
	if len(b) == 0 {
		return nil
	}
	return &b[0]
}

// handleFramesWS streams annotated JPEG frames to a websocket client
func (s *Server) handleFramesWS(c *websocket.Conn) {
	client := hub.NewClient(s.frameHub, c)
	if client == nil {
		return // hub already stopped
	}
	client.Run()
}

// handleTelemetryWS streams per-frame lane telemetry to a websocket client
func (s *Server) handleTelemetryWS(c *websocket.Conn) {
	client := hub.NewClient(s.telemetryHub, c)
	if client == nil {
		return // hub already stopped
	}
	client.Run()
}
