// ABOUTME: Defines the media Item shown on portfolio cards and metadata probing from video files
// ABOUTME: Reads title and comment tags to find the playable video reference and size class

package media

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dhowden/tag"
	"github.com/google/uuid"
)

// SizeClass selects the rendered card dimensions
type SizeClass string

// Size classes: landscape tours and vertical social cuts
const (
	Long  SizeClass = "long"
	Short SizeClass = "short"
)

// Item is one portfolio video. Items are never mutated after loading.
type Item struct {
	ID        string    `yaml:"id"`
	Title     string    `yaml:"title"`
	Thumbnail string    `yaml:"thumbnail,omitempty"`
	VideoID   string    `yaml:"video_id"`
	Size      SizeClass `yaml:"size"`
	Source    string    `yaml:"source,omitempty"` // Local file the item was probed from (empty for catalog entries)
}

// Compile regexes once at package initialization
var (
	videoIDRegex = regexp.MustCompile(`(?i)(?:youtube:|youtu\.be/|[?&]v=)([A-Za-z0-9_-]{11})`)
	shortRegex   = regexp.MustCompile(`(?i)\b(short|shorts|vertical|reel)\b`)
)

// ParseSizeClass converts a catalog string into a SizeClass
// An empty string defaults to Long
func ParseSizeClass(s string) (SizeClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "long":
		return Long, nil
	case "short":
		return Short, nil
	default:
		return "", fmt.Errorf("unknown size class %q", s)
	}
}

// WatchURL returns the page URL for the item's video
func (it Item) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + it.VideoID
}

// EmbedURL returns the autoplaying embed URL used by the player modal
func (it Item) EmbedURL() string {
	return "https://www.youtube.com/embed/" + it.VideoID + "?autoplay=1&rel=0&modestbranding=1&controls=1"
}

// String returns a formatted string representation of the item
func (it Item) String() string {
	return fmt.Sprintf("%-30s [%s] %s", it.Title, it.Size, it.VideoID)
}

// GetItemMetadata builds an Item by reading the tags of a local video file.
// Relative paths are resolved against baseDir (typically the playlist's directory).
// The video reference comes from a "youtube:<id>" (or a YouTube URL) in the comment tag.
func GetItemMetadata(itemPath string, baseDir string) (*Item, error) {
	fullPath := itemPath
	if !filepath.IsAbs(itemPath) && baseDir != "" {
		fullPath = filepath.Join(baseDir, itemPath)
	}

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	metadata, err := tag.ReadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	comment := metadata.Comment()

	videoID := extractVideoID(comment)
	if videoID == "" {
		return nil, fmt.Errorf("no video reference in comment tag of %s", itemPath)
	}

	title := metadata.Title()
	if title == "" {
		base := filepath.Base(itemPath)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	thumbnail := ""
	if pic := metadata.Picture(); pic != nil {
		thumbnail = "embedded:" + pic.MIMEType
	}

	return &Item{
		ID:        stableID(fullPath),
		Title:     title,
		Thumbnail: thumbnail,
		VideoID:   videoID,
		Size:      extractSizeClass(comment, metadata.Genre()),
		Source:    itemPath,
	}, nil
}

// extractVideoID extracts the video reference from a comment string
// Example: "youtube:ysz5S6PUM-U" -> "ysz5S6PUM-U"
func extractVideoID(comment string) string {
	matches := videoIDRegex.FindStringSubmatch(comment)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// extractSizeClass marks vertical cuts as Short when the comment or genre says so
func extractSizeClass(comment, genre string) SizeClass {
	if shortRegex.MatchString(comment) || shortRegex.MatchString(genre) {
		return Short
	}

	return Long
}

// stableID derives the same identifier for the same file across reloads
func stableID(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.ToSlash(abs))).String()
}
