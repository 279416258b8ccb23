package config

import "testing"

func TestVideoPath(t *testing.T) {
	t.Run("default when unset", func(t *testing.T) {
		t.Setenv("LANEWATCH_VIDEO", "")
		if got := VideoPath(DefaultVideo); got != DefaultVideo {
			t.Errorf("VideoPath: got %q, want %q", got, DefaultVideo)
		}
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv("LANEWATCH_VIDEO", "/tmp/clip.mp4")
		if got := VideoPath(DefaultVideo); got != "/tmp/clip.mp4" {
			t.Errorf("VideoPath: got %q, want /tmp/clip.mp4", got)
		}
	})
}

func TestWebPort(t *testing.T) {
	t.Run("default when unset", func(t *testing.T) {
		t.Setenv("LANEWATCH_PORT", "")
		if got := WebPort(""); got != "" {
			t.Errorf("WebPort: got %q, want empty (dashboard stays disabled)", got)
		}
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv("LANEWATCH_PORT", "9000")
		if got := WebPort(""); got != "9000" {
			t.Errorf("WebPort: got %q, want 9000", got)
		}
	})
}

func TestSnapshotDir(t *testing.T) {
	t.Run("default when unset", func(t *testing.T) {
		t.Setenv("LANEWATCH_SNAPSHOTS", "")
		if got := SnapshotDir(""); got != "" {
			t.Errorf("SnapshotDir: got %q, want empty (snapshots stay disabled)", got)
		}
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv("LANEWATCH_SNAPSHOTS", "/data/snaps")
		if got := SnapshotDir(""); got != "/data/snaps" {
			t.Errorf("SnapshotDir: got %q, want /data/snaps", got)
		}
	})
}
