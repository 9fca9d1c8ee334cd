// ABOUTME: Interfaces defining dependencies for the TUI package
// ABOUTME: Allows clean separation and easy testing with mocks

package tui

import (
	"showreel/config"
	"showreel/media"
)

// ConfigProvider provides thread-safe access to the live configuration
type ConfigProvider interface {
	Get() config.Config
	Update(cfg config.Config)
}

// CatalogLoader loads a catalog from disk
type CatalogLoader func(path string) (media.Catalog, error)

// ConfigSaver persists the configuration on quit
type ConfigSaver func(path string, cfg config.Config) error
