// ABOUTME: Tests for item metadata helpers
// ABOUTME: Covers video reference extraction, size classes, stable IDs and player URLs

package media

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		want    string
	}{
		{"prefix", "youtube:ysz5S6PUM-U", "ysz5S6PUM-U"},
		{"prefix with text", "Final cut - youtube:M7J4Wj2V1Y0 - approved", "M7J4Wj2V1Y0"},
		{"watch url", "https://www.youtube.com/watch?v=Xg9f3X6Yy9M", "Xg9f3X6Yy9M"},
		{"short url", "https://youtu.be/S1_S3aM3tQE", "S1_S3aM3tQE"},
		{"missing", "no reference here", ""},
		{"too short", "youtube:abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractVideoID(tt.comment); got != tt.want {
				t.Errorf("extractVideoID(%q) = %q, want %q", tt.comment, got, tt.want)
			}
		})
	}
}

func TestExtractSizeClass(t *testing.T) {
	tests := []struct {
		comment string
		genre   string
		want    SizeClass
	}{
		{"youtube:ysz5S6PUM-U", "", Long},
		{"youtube:ysz5S6PUM-U vertical", "", Short},
		{"", "Shorts", Short},
		{"Reel cut", "Real Estate", Short},
		{"shortlist candidate", "", Long},
	}

	for _, tt := range tests {
		if got := extractSizeClass(tt.comment, tt.genre); got != tt.want {
			t.Errorf("extractSizeClass(%q, %q) = %s, want %s", tt.comment, tt.genre, got, tt.want)
		}
	}
}

func TestParseSizeClass(t *testing.T) {
	for in, want := range map[string]SizeClass{"": Long, "long": Long, " Short ": Short} {
		got, err := ParseSizeClass(in)
		if err != nil {
			t.Fatalf("ParseSizeClass(%q) error: %v", in, err)
		}

		if got != want {
			t.Errorf("ParseSizeClass(%q) = %s, want %s", in, got, want)
		}
	}

	if _, err := ParseSizeClass("square"); err == nil {
		t.Error("Expected error for unknown size class")
	}
}

func TestStableID(t *testing.T) {
	a := stableID("videos/tour.mp4")
	b := stableID("videos/tour.mp4")
	c := stableID("videos/other.mp4")

	if a != b {
		t.Errorf("Expected same ID for same path, got %s and %s", a, b)
	}

	if a == c {
		t.Error("Expected different IDs for different paths")
	}
}

func TestItemURLs(t *testing.T) {
	it := Item{VideoID: "ysz5S6PUM-U"}

	if got := it.WatchURL(); got != "https://www.youtube.com/watch?v=ysz5S6PUM-U" {
		t.Errorf("WatchURL() = %s", got)
	}

	if got := it.EmbedURL(); got != "https://www.youtube.com/embed/ysz5S6PUM-U?autoplay=1&rel=0&modestbranding=1&controls=1" {
		t.Errorf("EmbedURL() = %s", got)
	}
}

func TestGetItemMetadataErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := GetItemMetadata("missing.mp4", dir); err == nil {
		t.Error("Expected error for missing file")
	}

	// A file without any tag container cannot be probed
	if err := os.WriteFile(filepath.Join(dir, "plain.mp4"), []byte("not a video"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := GetItemMetadata("plain.mp4", dir); err == nil {
		t.Error("Expected error for untagged file")
	}
}
