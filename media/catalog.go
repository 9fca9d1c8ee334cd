// ABOUTME: Portfolio catalog: titled rows of items loaded from YAML or an M3U8 list
// ABOUTME: Includes the studio's built-in catalog used when no file is given

package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Row titles used when rows are derived from size classes
const (
	LongRowTitle  = "Long-form Cinematic Tours"
	ShortRowTitle = "Vertical Social Content"
)

// ErrEmptyCatalog is returned when a catalog has no rows with items
var ErrEmptyCatalog = errors.New("catalog has no items")

// Row is one carousel: a title, a scroll direction and its items
type Row struct {
	Title     string `yaml:"title"`
	Direction string `yaml:"direction,omitempty"` // "left" (default) or "right"
	Items     []Item `yaml:"items"`
}

// Catalog is the ordered set of rows shown on screen
type Catalog struct {
	Rows []Row `yaml:"rows"`
}

// LoadCatalog loads a catalog by file extension: .yaml/.yml or .m3u/.m3u8
func LoadCatalog(path string) (Catalog, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".m3u", ".m3u8":
		items, skipped, err := LoadPlaylist(path, false)
		if err != nil {
			return Catalog{}, err
		}

		if len(items) == 0 && len(skipped) > 0 {
			return Catalog{}, fmt.Errorf("no playable videos in %s: %w", path, errors.Join(skipped...))
		}

		c := CatalogFromItems(items)
		if err := c.Validate(); err != nil {
			return Catalog{}, err
		}

		return c, nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return Catalog{}, fmt.Errorf("failed to read catalog: %w", err)
		}

		return ParseCatalog(data)
	}
}

// ParseCatalog decodes and validates a YAML catalog
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("failed to parse catalog: %w", err)
	}

	for r := range c.Rows {
		for i := range c.Rows[r].Items {
			it := &c.Rows[r].Items[i]

			size, err := ParseSizeClass(string(it.Size))
			if err != nil {
				return Catalog{}, fmt.Errorf("row %q item %q: %w", c.Rows[r].Title, it.Title, err)
			}

			it.Size = size

			if it.ID == "" {
				it.ID = fmt.Sprintf("%d-%d", r+1, i+1)
			}
		}
	}

	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}

	return c, nil
}

// SaveCatalog writes the catalog as YAML, creating parent directories
func SaveCatalog(path string, c Catalog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}

	return nil
}

// Validate checks that every row is playable
func (c Catalog) Validate() error {
	if len(c.Rows) == 0 {
		return ErrEmptyCatalog
	}

	for _, row := range c.Rows {
		if len(row.Items) == 0 {
			return fmt.Errorf("row %q: %w", row.Title, ErrEmptyCatalog)
		}

		switch strings.ToLower(row.Direction) {
		case "", "left", "right":
		default:
			return fmt.Errorf("row %q: unknown direction %q", row.Title, row.Direction)
		}

		for _, it := range row.Items {
			if it.VideoID == "" {
				return fmt.Errorf("row %q item %q: missing video_id", row.Title, it.Title)
			}
		}
	}

	return nil
}

// Items returns every item of every row in order
func (c Catalog) Items() []Item {
	var all []Item
	for _, row := range c.Rows {
		all = append(all, row.Items...)
	}

	return all
}

// CatalogFromItems groups items into a long-form row and a short-form row.
// Empty groups are left out.
func CatalogFromItems(items []Item) Catalog {
	var long, short []Item

	for _, it := range items {
		if it.Size == Short {
			short = append(short, it)
		} else {
			long = append(long, it)
		}
	}

	var c Catalog
	if len(long) > 0 {
		c.Rows = append(c.Rows, Row{Title: LongRowTitle, Direction: "left", Items: long})
	}

	if len(short) > 0 {
		c.Rows = append(c.Rows, Row{Title: ShortRowTitle, Direction: "left", Items: short})
	}

	return c
}

// DefaultCatalog returns the studio's portfolio
func DefaultCatalog() Catalog {
	return Catalog{Rows: []Row{
		{
			Title:     LongRowTitle,
			Direction: "left",
			Items: []Item{
				{ID: "1", Title: "Bel Air Estate Tour", Thumbnail: "https://images.unsplash.com/photo-1613490493576-7fde63acd811?w=800&q=80", VideoID: "ysz5S6PUM-U", Size: Long},
				{ID: "2", Title: "Manhattan Penthouse Showcase", Thumbnail: "https://images.unsplash.com/photo-1512917774080-9991f1c4c750?w=800&q=80", VideoID: "M7J4Wj2V1Y0", Size: Long},
				{ID: "3", Title: "Malibu Beachfront Property", Thumbnail: "https://images.unsplash.com/photo-1512915922686-57c11f9ad6b3?w=800&q=80", VideoID: "Xg9f3X6Yy9M", Size: Long},
				{ID: "4", Title: "Modern Swiss Villa", Thumbnail: "https://images.unsplash.com/photo-1600585154340-be6191ecdb50?w=800&q=80", VideoID: "S1_S3aM3tQE", Size: Long},
			},
		},
		{
			Title:     ShortRowTitle,
			Direction: "left",
			Items: []Item{
				{ID: "s1", Title: "Luxury Kitchen Reveal", Thumbnail: "https://images.unsplash.com/photo-1556911220-e15b29be8c8f?w=400&h=700&fit=crop", VideoID: "ysz5S6PUM-U", Size: Short},
				{ID: "s2", Title: "Infinity Pool Sunset", Thumbnail: "https://images.unsplash.com/photo-1572331165267-854da2b00ca1?w=400&h=700&fit=crop", VideoID: "M7J4Wj2V1Y0", Size: Short},
				{ID: "s3", Title: "Master Bathroom Spa", Thumbnail: "https://images.unsplash.com/photo-1616594039964-40891a909d99?w=400&h=700&fit=crop", VideoID: "Xg9f3X6Yy9M", Size: Short},
				{ID: "s4", Title: "Grand Entryway", Thumbnail: "https://images.unsplash.com/photo-1512917774080-9991f1c4c750?w=400&h=700&fit=crop", VideoID: "S1_S3aM3tQE", Size: Short},
			},
		},
	}}
}
