// ABOUTME: Catalog commands: list the rows and items, export to YAML or M3U8
// ABOUTME: Exports pick the format from the output file extension

package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"showreel/media"
)

// ErrNothingToExport is returned when an M3U8 export has no file-backed items
var ErrNothingToExport = errors.New("no file-backed items to export")

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect or convert the portfolio catalog",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every row and item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := loadCatalog(a.catalogPath)
			if err != nil {
				return err
			}

			ListCatalog(cmd.OutOrStdout(), catalog)

			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "export <file>",
		Short: "Write the catalog as YAML, or as an M3U8 list of its local files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(a.catalogPath)
			if err != nil {
				return err
			}

			if err := ExportCatalog(args[0], catalog); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d items to %s\n", len(catalog.Items()), args[0])

			return nil
		},
	})

	return cmd
}

// ListCatalog prints the catalog as a table
func ListCatalog(w io.Writer, c media.Catalog) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "#\tRow\tDir\tSize\tTitle\tWatch"); err != nil {
		log.Printf("Warning: failed to write header: %v", err)
	}

	if _, err := fmt.Fprintln(tw, "---\t---\t---\t----\t-----\t-----"); err != nil {
		log.Printf("Warning: failed to write separator: %v", err)
	}

	n := 0

	for _, row := range c.Rows {
		dir := row.Direction
		if dir == "" {
			dir = "left"
		}

		for _, it := range row.Items {
			n++

			if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
				n,
				truncate(row.Title, 28),
				dir,
				it.Size,
				truncate(it.Title, 32),
				it.WatchURL(),
			); err != nil {
				log.Printf("Warning: failed to write item %d: %v", n, err)
			}
		}
	}

	if err := tw.Flush(); err != nil {
		log.Printf("Warning: failed to flush output: %v", err)
	}
}

// ExportCatalog writes c to path. M3U8 exports only carry items probed from local files.
func ExportCatalog(path string, c media.Catalog) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".m3u", ".m3u8":
		items := c.Items()

		hasSource := false
		for _, it := range items {
			if it.Source != "" {
				hasSource = true

				break
			}
		}

		if !hasSource {
			return ErrNothingToExport
		}

		if err := media.WritePlaylist(path, items); err != nil {
			return fmt.Errorf("failed to export playlist: %w", err)
		}

		return nil
	default:
		if err := media.SaveCatalog(path, c); err != nil {
			return fmt.Errorf("failed to export catalog: %w", err)
		}

		return nil
	}
}
