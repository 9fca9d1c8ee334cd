// ABOUTME: Shared initialization code for all commands (TUI, simulate, catalog, serve)
// ABOUTME: Provides debug logging, catalog loading and config setup

package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"showreel/config"
	"showreel/media"
)

const debugLogFile = "showreel-debug.log"

// SetupDebugLog builds a development logger writing to filename
func SetupDebugLog(filename string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{filename}
	cfg.ErrorOutputPaths = []string{filename}

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize debug log: %w", err)
	}

	if filename == debugLogFile && isTTY(os.Stdout) {
		fmt.Printf("Debug logging enabled: %s\n", filename)
	}

	return log, nil
}

// newServerLogger logs info and above to stderr for the long-running SSH server
func newServerLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.Encoding = "console"

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize server log: %w", err)
	}

	return log, nil
}

// loadCatalog loads the catalog at path, or the studio catalog when path is empty
func loadCatalog(path string) (media.Catalog, error) {
	if path == "" {
		return media.DefaultCatalog(), nil
	}

	c, err := media.LoadCatalog(path)
	if err != nil {
		return media.Catalog{}, fmt.Errorf("failed to load catalog: %w", err)
	}

	return c, nil
}

// loadSharedConfig loads the config file. A broken file is reported and the defaults are used.
func loadSharedConfig(path string, log *zap.Logger) *config.SharedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Warn("using default config", zap.String("path", path), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}

	return config.NewSharedConfig(cfg)
}

// isTTY checks if the given file is a terminal
func isTTY(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}

	return (stat.Mode() & os.ModeCharDevice) != 0
}

// truncate shortens s to maxLen runes, adding "..." if needed
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return string(r[:maxLen])
	}

	return string(r[:maxLen-3]) + "..."
}
