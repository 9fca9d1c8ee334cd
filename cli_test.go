// ABOUTME: Tests for the simulate trace and the command tree
// ABOUTME: Runs commands in-process with their output captured

package main

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"showreel/config"
	"showreel/marquee"
	"showreel/media"
)

// execute runs the command tree with args and returns what it printed
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCmd(&app{})
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "showreel.toml")))

	err := cmd.Execute()

	return out.String(), err
}

func simulate(t *testing.T, opts SimulateOptions) string {
	t.Helper()

	var out bytes.Buffer
	if err := RunSimulate(&out, media.DefaultCatalog(), config.DefaultConfig(), opts, zap.NewNop()); err != nil {
		t.Fatalf("RunSimulate() error = %v", err)
	}

	return out.String()
}

// traceLine returns the trace line for frame n
func traceLine(t *testing.T, out string, frame string) string {
	t.Helper()

	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == frame {
			return line
		}
	}

	t.Fatalf("no trace line for frame %s in:\n%s", frame, out)

	return ""
}

func TestSimulateAutoplay(t *testing.T) {
	// 4 items over a 1200 set: the track starts at 1200 and gains 0.6 per frame
	out := simulate(t, SimulateOptions{Frames: 1000, SetWidth: 1200, Every: 500})

	for frame, want := range map[string][]string{
		"500":  {"auto", "1500.00", "300.00"},
		"1000": {"auto", "1800.00", "600.00"},
	} {
		line := traceLine(t, out, frame)
		for _, w := range want {
			if !strings.Contains(line, w) {
				t.Errorf("frame %s line %q missing %q", frame, line, w)
			}
		}
	}

	if !strings.Contains(out, "Set width 1200.00, final phase 600.00") {
		t.Errorf("summary missing from:\n%s", out)
	}

	if strings.Contains(out, "user-driven") {
		t.Errorf("autoplay-only run reported user-driven frames:\n%s", out)
	}
}

func TestSimulateNudgeAndResume(t *testing.T) {
	out := simulate(t, SimulateOptions{
		Frames:   700,
		SetWidth: 1200,
		NudgeAt:  500,
		NudgeDir: marquee.Left,
		Every:    0,
	})

	// Card width 300 plus the default 20 gap
	nudge := traceLine(t, out, "500")
	for _, w := range []string{"user-driven", "1180.00", "nudge left by 320"} {
		if !strings.Contains(nudge, w) {
			t.Errorf("nudge line %q missing %q", nudge, w)
		}
	}

	if !strings.Contains(out, "autoplay resumed after") {
		t.Fatalf("trace never resumed autoplay:\n%s", out)
	}

	// Autoplay picks up from the nudged position
	if !strings.Contains(out, "1180.60") {
		t.Errorf("resume did not continue from the nudged position:\n%s", out)
	}
}

func TestSimulateNudgeRight(t *testing.T) {
	out := simulate(t, SimulateOptions{Frames: 10, SetWidth: 1200, NudgeAt: 10, NudgeDir: marquee.Right})

	line := traceLine(t, out, "10")
	if !strings.Contains(line, "nudge right by 320") {
		t.Errorf("nudge line = %q", line)
	}
}

func TestSimulateStripLayout(t *testing.T) {
	// Long cards are 400 wide with a 20 gap: one set of 4 spans 1680
	out := simulate(t, SimulateOptions{Frames: 1000, Columns: 78, Every: 1000})

	line := traceLine(t, out, "1000")
	if !strings.Contains(line, "2280.00") {
		t.Errorf("frame 1000 line = %q, want position 2280.00", line)
	}

	if !strings.Contains(out, "Set width 1680.00") {
		t.Errorf("summary missing set width:\n%s", out)
	}
}

func TestSimulateRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		opts SimulateOptions
	}{
		{"row out of range", SimulateOptions{Row: 5, Frames: 10}},
		{"negative row", SimulateOptions{Row: -1, Frames: 10}},
		{"no frames", SimulateOptions{Frames: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RunSimulate(io.Discard, media.DefaultCatalog(), config.DefaultConfig(), tt.opts, zap.NewNop())
			if err == nil {
				t.Error("RunSimulate() error = nil, want error")
			}
		})
	}
}

func TestSimulateCommand(t *testing.T) {
	out, err := execute(t, "simulate", "--set-width", "1200", "--frames", "1000", "--every", "500")
	if err != nil {
		t.Fatalf("simulate error = %v", err)
	}

	if !strings.Contains(traceLine(t, out, "1000"), "1800.00") {
		t.Errorf("unexpected trace:\n%s", out)
	}
}

func TestSimulateCommandRejectsNudgeDirection(t *testing.T) {
	if _, err := execute(t, "simulate", "--nudge-dir", "up"); err == nil {
		t.Error("simulate --nudge-dir up succeeded, want error")
	}
}

func TestCatalogListCommand(t *testing.T) {
	out, err := execute(t, "catalog", "list")
	if err != nil {
		t.Fatalf("catalog list error = %v", err)
	}

	for _, want := range []string{
		"Long-form Cinematic Tours",
		"Vertical Social Content",
		"Bel Air Estate Tour",
		"https://www.youtube.com/watch?v=ysz5S6PUM-U",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("catalog list missing %q:\n%s", want, out)
		}
	}

	// Header, separator and 8 items
	if lines := strings.Count(strings.TrimSpace(out), "\n") + 1; lines != 10 {
		t.Errorf("catalog list printed %d lines, want 10", lines)
	}
}

func TestCatalogExportYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "catalog.yaml")

	if _, err := execute(t, "catalog", "export", path); err != nil {
		t.Fatalf("catalog export error = %v", err)
	}

	got, err := media.LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}

	if diff := cmp.Diff(media.DefaultCatalog(), got); diff != "" {
		t.Errorf("exported catalog mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalogExportPlaylist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reel.m3u8")

	_, err := execute(t, "catalog", "export", path)
	if !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("exporting the studio catalog as M3U8: error = %v, want ErrNothingToExport", err)
	}

	c := media.Catalog{Rows: []media.Row{{
		Title: "Local",
		Items: []media.Item{
			{Title: "Kitchen", VideoID: "ysz5S6PUM-U", Size: media.Short, Source: "kitchen.mp4"},
			{Title: "Online only", VideoID: "M7J4Wj2V1Y0", Size: media.Long},
			{Title: "Pool", VideoID: "Xg9f3X6Yy9M", Size: media.Long, Source: "pool.mp4"},
		},
	}}}

	if err := ExportCatalog(path, c); err != nil {
		t.Fatalf("ExportCatalog() error = %v", err)
	}

	got, err := media.ReadPlaylist(path)
	if err != nil {
		t.Fatalf("ReadPlaylist() error = %v", err)
	}

	if diff := cmp.Diff([]string{"kitchen.mp4", "pool.mp4"}, got); diff != "" {
		t.Errorf("exported playlist mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalogFlagLoadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")

	c := media.Catalog{Rows: []media.Row{{
		Title:     "Open Houses",
		Direction: "right",
		Items:     []media.Item{{ID: "o1", Title: "Lakeside Cabin", VideoID: "ysz5S6PUM-U", Size: media.Long}},
	}}}

	if err := media.SaveCatalog(path, c); err != nil {
		t.Fatalf("SaveCatalog() error = %v", err)
	}

	out, err := execute(t, "catalog", "list", "--catalog", path)
	if err != nil {
		t.Fatalf("catalog list error = %v", err)
	}

	if !strings.Contains(out, "Lakeside Cabin") || !strings.Contains(out, "right") {
		t.Errorf("catalog list ignored --catalog:\n%s", out)
	}

	if strings.Contains(out, "Bel Air") {
		t.Errorf("catalog list still shows the studio catalog:\n%s", out)
	}
}

func TestMissingCatalogFails(t *testing.T) {
	_, err := execute(t, "catalog", "list", "--catalog", filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("catalog list with a missing file succeeded, want error")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"Bel Air Estate Tour", 30, "Bel Air Estate Tour"},
		{"Manhattan Penthouse Showcase", 12, "Manhattan..."},
		{"Villa", 3, "Vil"},
		{"Château Tour", 8, "Châte..."},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}
