// ABOUTME: TUI mode configuration and dependencies
// ABOUTME: Defines input parameters for running the TUI locally or inside an SSH session

package tui

import (
	"go.uber.org/zap"

	"showreel/media"
)

// Options contains configuration for running the TUI
type Options struct {
	CatalogPath string        // Catalog file (YAML or M3U8); empty shows Catalog
	Catalog     media.Catalog // Initial catalog
	Watch       bool          // Reload the catalog and config when their files change
	SaveOnQuit  bool          // Save the tuned config when quitting
}

// Dependencies holds all external dependencies for the TUI
type Dependencies struct {
	Config      ConfigProvider
	ConfigPath  string
	LoadCatalog CatalogLoader
	SaveConfig  ConfigSaver
	Logger      *zap.Logger
}
