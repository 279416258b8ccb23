// Package web provides a live dashboard for lanewatch: run statistics,
// runtime tuning of detection parameters, and streaming of annotated frames
// over MJPEG and websockets.
package web

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/roadeye/lanewatch/internal/log"
	"github.com/roadeye/lanewatch/pkg/hub"
	"github.com/roadeye/lanewatch/pkg/lane"
)

// Server is the dashboard server. It doubles as a pipeline JPEG sink: every
// annotated frame is kept for the MJPEG stream and fanned out to websocket
// clients together with per-frame lane telemetry.
type Server struct {
	app  *fiber.App
	port string

	// Runtime tuning of detection parameters
	manager *lane.Manager

	// Hubs for websocket broadcast (thread-safe!)
	frameHub     *hub.Hub
	telemetryHub *hub.Hub

	// Latest annotated frame for the MJPEG stream
	frameMu     sync.RWMutex
	latestFrame []byte

	// Closed on Shutdown so MJPEG stream loops exit even when no new
	// frames arrive; otherwise fiber waits on them forever.
	done     chan struct{}
	stopOnce sync.Once

	// StatsFunc supplies current pipeline stats for /api/stats
	StatsFunc func() any
}

// NewServer creates the dashboard server.
func NewServer(port string, manager *lane.Manager) *Server {
	s := &Server{
		port:         port,
		manager:      manager,
		frameHub:     hub.New("frames"),
		telemetryHub: hub.New("telemetry"),
		done:         make(chan struct{}),
	}

	app := fiber.New(fiber.Config{
		AppName:               "lanewatch dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// API routes
	api := app.Group("/api")
	api.Get("/stats", s.handleStats)
	api.Get("/config", s.handleGetConfig)
	api.Patch("/config", s.handleUpdateConfig)

	// MJPEG stream of annotated frames
	app.Get("/stream.mjpeg", s.handleMJPEG)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// WebSocket routes
	app.Get("/ws/frames", websocket.New(s.handleFramesWS))
	app.Get("/ws/telemetry", websocket.New(s.handleTelemetryWS))

	s.app = app
	return s
}

// Start starts the dashboard server and its broadcast hubs. Blocks.
func (s *Server) Start() error {
	log.Info("dashboard listening", "addr", "http://localhost:"+s.port)

	go s.frameHub.Run()
	go s.telemetryHub.Run()

	return s.app.Listen(":" + s.port)
}

// StartAsync starts the dashboard server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("dashboard server failed", "error", err)
		}
	}()
}

// WriteJPEG receives an annotated frame from the pipeline. It satisfies the
// pipeline's JPEG sink interface.
func (s *Server) WriteJPEG(jpegData []byte, det lane.Detection, frameIdx int) error {
	s.frameMu.Lock()
	s.latestFrame = jpegData
	s.frameMu.Unlock()

	s.frameHub.BroadcastBinary(jpegData)
	return s.telemetryHub.BroadcastJSON(newTelemetry(frameIdx, det))
}

// Shutdown gracefully stops the server and disconnects stream clients.
func (s *Server) Shutdown() error {
	s.stopOnce.Do(func() { close(s.done) })
	s.frameHub.Stop()
	s.telemetryHub.Stop()
	return s.app.Shutdown()
}
