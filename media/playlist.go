// ABOUTME: Handles reading and writing M3U8 lists of local video files
// ABOUTME: Probes every listed file's tags in parallel and keeps the playlist order

// Package media holds the portfolio video items and the catalogs they are loaded from.
// Items come from the built-in studio catalog, a YAML catalog file, or an M3U8 list of
// local video files whose tags carry the title and the playable video reference.
package media

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"showreel/pool"
)

// ReadPlaylist reads an M3U8 file and returns the listed paths in order
func ReadPlaylist(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open playlist: %w", err)
	}

	defer func() {
		_ = file.Close() // Explicitly ignore error for read-only file
	}()

	var entries []string

	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entries = append(entries, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading playlist: %w", err)
	}

	return entries, nil
}

// LoadPlaylist reads an M3U8 list and probes each file for item metadata.
// Files that cannot be probed are skipped and returned as errors alongside the items.
func LoadPlaylist(path string, verbose bool) ([]Item, []error, error) {
	entries, err := ReadPlaylist(path)
	if err != nil {
		return nil, nil, err
	}

	if verbose {
		fmt.Printf("Probing %d video files...\n", len(entries))
	}

	baseDir := filepath.Dir(path)
	probed := make([]*Item, len(entries))
	probeErrs := make([]error, len(entries))

	pool.Each(len(entries), 0, func(i int) {
		probed[i], probeErrs[i] = GetItemMetadata(entries[i], baseDir)
	})

	items := make([]Item, 0, len(entries))

	var skipped []error

	for i := range entries {
		if probeErrs[i] != nil {
			skipped = append(skipped, fmt.Errorf("%s: %w", entries[i], probeErrs[i]))

			if verbose {
				fmt.Printf("[!] Skipping video (could not load metadata): %s: %v\n", entries[i], probeErrs[i])
			}

			continue
		}

		items = append(items, *probed[i])
	}

	return items, skipped, nil
}

// WritePlaylist writes the Source path of each file-backed item to an M3U8 file.
// Items without a Source are left out. An existing file is kept as a .bak backup.
func WritePlaylist(path string, items []Item) (err error) {
	if _, statErr := os.Stat(path); statErr == nil {
		backupPath := path + ".bak"
		if err := os.Rename(path, backupPath); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close playlist file: %w", closeErr)
		}
	}()

	writer := bufio.NewWriter(file)

	if _, err := writer.WriteString("#EXTM3U\n"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, it := range items {
		if it.Source == "" {
			continue
		}

		if _, err := writer.WriteString(it.Source + "\n"); err != nil {
			return fmt.Errorf("failed to write item: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush writer: %w", err)
	}

	return nil
}
