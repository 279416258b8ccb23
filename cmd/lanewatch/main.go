// lanewatch - lane marking detection for dashcam footage
//
// Reads a video frame by frame, finds lane markings with a probabilistic
// Hough transform, fits a line per lane side and overlays the result.
//
// Usage: lanewatch [path/to/video]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/roadeye/lanewatch/internal/config"
	"github.com/roadeye/lanewatch/internal/log"
	"github.com/roadeye/lanewatch/pkg/lane"
	"github.com/roadeye/lanewatch/pkg/pipeline"
	"github.com/roadeye/lanewatch/pkg/snapshot"
	"github.com/roadeye/lanewatch/pkg/video"
	"github.com/roadeye/lanewatch/pkg/web"
)

func main() {
	var (
		outPath   = flag.String("out", "", "write the annotated video to this file")
		headless  = flag.Bool("headless", false, "disable the display window")
		webPort   = flag.String("web", config.WebPort(""), "serve the dashboard on this port (empty = disabled)")
		snapDir   = flag.String("snapshots", config.SnapshotDir(""), "save periodic annotated snapshots under this directory")
		snapEvery = flag.Int("snapshot-every", 30, "save every Nth frame when -snapshots is set")
		logLevel  = flag.String("log", "info", "log level (debug, info, warn, error)")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [path/to/video]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Without a video path the bundled clip %s is used.\n\n", config.DefaultVideo)
		flag.PrintDefaults()
	}
	flag.Parse()

	log.Init(*logLevel)

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}

	videoPath := config.VideoPath(config.DefaultVideo)
	if flag.NArg() == 1 {
		videoPath = flag.Arg(0)
	}

	if err := run(videoPath, *outPath, *webPort, *snapDir, *snapEvery, !*headless); err != nil {
		log.Error("lanewatch failed", "error", err)
		os.Exit(1)
	}
}

func run(videoPath, outPath, webPort, snapDir string, snapEvery int, display bool) error {
	// Ctrl+C cancels the run; resources below are released via defers.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src, err := video.OpenFile(videoPath)
	if err != nil {
		return err
	}
	defer src.Close()

	width, height := src.Size()
	log.Info("video opened", "path", videoPath, "width", width, "height", height, "fps", src.FPS())

	cfg := lane.DefaultConfig()
	detector, err := lane.NewDetector(cfg)
	if err != nil {
		return err
	}

	// The manager lets the dashboard retune the detector mid-run.
	manager := lane.NewManager(cfg)
	manager.OnConfigChange = detector.SetConfig

	pcfg := pipeline.Config{
		Source:   src,
		Detector: detector,
		Smoother: lane.NewSmoother(cfg.SmoothAlpha),
		Display:  display,
	}

	if outPath != "" {
		writer, err := video.NewWriter(outPath, src.FPS(), width, height)
		if err != nil {
			return err
		}
		defer writer.Close()
		pcfg.MatSinks = append(pcfg.MatSinks, pipeline.WriterSink{W: writer})
		log.Info("writing annotated video", "path", outPath)
	}

	if snapDir != "" {
		rec, err := snapshot.NewRecorder(snapDir, snapEvery)
		if err != nil {
			return err
		}
		pcfg.JPEGSinks = append(pcfg.JPEGSinks, pipeline.SnapshotSink{R: rec})
		log.Info("saving snapshots", "dir", rec.Dir(), "every", snapEvery)
	}

	var server *web.Server
	if webPort != "" {
		server = web.NewServer(webPort, manager)
		pcfg.JPEGSinks = append(pcfg.JPEGSinks, server)
	}

	p, err := pipeline.New(pcfg)
	if err != nil {
		return err
	}

	if server != nil {
		server.StatsFunc = func() any { return p.Stats() }
		server.StartAsync()
		defer server.Shutdown()
	}

	if err := p.Run(ctx); err != nil {
		return err
	}

	stats := p.Stats()
	log.Info("run complete",
		"frames", stats.Frames,
		"skipped", stats.Skipped,
		"segments", stats.Segments,
		"left_frames", stats.LeftFrames,
		"right_frames", stats.RightFrames,
		"fps", fmt.Sprintf("%.1f", stats.FPS),
	)
	return nil
}
