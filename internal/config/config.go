// Package config provides configuration helpers for lanewatch commands.
package config

import "os"

// DefaultVideo is the bundled dashcam clip used when no path is given.
const DefaultVideo = "data/solidWhiteRight.mp4"

// VideoPath returns the input video path from LANEWATCH_VIDEO env var.
// Falls back to the provided default if not set.
func VideoPath(defaultPath string) string {
	if p := os.Getenv("LANEWATCH_VIDEO"); p != "" {
		return p
	}
	return defaultPath
}

// WebPort returns the dashboard port from LANEWATCH_PORT env var.
// Falls back to the provided default if not set.
func WebPort(defaultPort string) string {
	if port := os.Getenv("LANEWATCH_PORT"); port != "" {
		return port
	}
	return defaultPort
}

// SnapshotDir returns the snapshot directory from LANEWATCH_SNAPSHOTS.
// Falls back to the provided default if not set.
func SnapshotDir(defaultDir string) string {
	if dir := os.Getenv("LANEWATCH_SNAPSHOTS"); dir != "" {
		return dir
	}
	return defaultDir
}
