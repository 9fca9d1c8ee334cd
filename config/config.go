// ABOUTME: Configuration management for marquee motion, display and SSH server settings
// ABOUTME: Handles loading/saving TOML config files with fallback to defaults

package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid config")

// ErrLayoutMargin is returned when a row's layout leaves too little room for seamless wrapping
var ErrLayoutMargin = errors.New("card layout breaks the wrap margin")

// Config holds every tunable setting
type Config struct {
	Marquee MarqueeConfig `toml:"marquee"`
	Display DisplayConfig `toml:"display"`
	Server  ServerConfig  `toml:"server"`
}

// MarqueeConfig holds the scroll engine's motion parameters
type MarqueeConfig struct {
	Speed         float64 `toml:"speed"`           // Offset units per frame
	ResumeDelayMS int     `toml:"resume_delay_ms"` // Quiet period before autoplay resumes
	NudgeGap      float64 `toml:"nudge_gap"`       // Added to the card width for one nudge
	DefaultNudge  float64 `toml:"default_nudge"`   // Nudge amount when no card is mounted
}

// DisplayConfig holds the terminal rendering parameters.
// Widths are in offset units; CellWidth units make up one terminal column.
type DisplayConfig struct {
	FPS            int     `toml:"fps"`
	CellWidth      float64 `toml:"cell_width"`
	LongCardWidth  float64 `toml:"long_card_width"`
	ShortCardWidth float64 `toml:"short_card_width"`
	CardHeight     int     `toml:"card_height"` // Rows per card
	CardGap        float64 `toml:"card_gap"`
}

// ServerConfig holds the SSH server settings
type ServerConfig struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	HostKeyPath string `toml:"host_key_path"`
	IdleTimeout int    `toml:"idle_timeout"` // Seconds, 0 disables
}

// ResumeDelay returns the resume delay as a duration
func (m MarqueeConfig) ResumeDelay() time.Duration {
	return time.Duration(m.ResumeDelayMS) * time.Millisecond
}

// FrameInterval returns the time between display frames
func (d DisplayConfig) FrameInterval() time.Duration {
	if d.FPS <= 0 {
		return time.Second / 60
	}

	return time.Second / time.Duration(d.FPS)
}

// Address returns host:port
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// IdleTimeoutDuration returns the idle timeout as a duration
func (s ServerConfig) IdleTimeoutDuration() time.Duration {
	return time.Duration(s.IdleTimeout) * time.Second
}

// GetConfigPath returns the default config file path
// First tries current directory, then falls back to ~/.config/showreel/config.toml
func GetConfigPath() string {
	if _, err := os.Stat("./showreel.toml"); err == nil {
		return "./showreel.toml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./showreel.toml"
	}

	return filepath.Join(home, ".config", "showreel", "config.toml")
}

// LoadConfig loads configuration from a TOML file
// If the file doesn't exist, returns default config. Keys missing from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}

		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return DefaultConfig(), err
	}

	return config, nil
}

// SaveConfig saves configuration to a TOML file
func SaveConfig(path string, config Config) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Round to the precision the parameter panel shows so repeated saves don't drift
	config = roundConfigPrecision(config)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", closeErr)
		}
	}()

	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultConfig returns the stock settings: 0.6 units per frame at 60 fps, 2s resume delay
func DefaultConfig() Config {
	return Config{
		Marquee: MarqueeConfig{
			Speed:         0.6,
			ResumeDelayMS: 2000,
			NudgeGap:      20,
			DefaultNudge:  300,
		},
		Display: DisplayConfig{
			FPS:            60,
			CellWidth:      10,
			LongCardWidth:  400,
			ShortCardWidth: 200,
			CardHeight:     7,
			CardGap:        20,
		},
		Server: ServerConfig{
			Host:        "localhost",
			Port:        23234,
			HostKeyPath: ".ssh/showreel_ed25519",
			IdleTimeout: 600,
		},
	}
}

// Validate checks value ranges
func (c Config) Validate() error {
	m, d, s := c.Marquee, c.Display, c.Server

	checks := []struct {
		ok   bool
		what string
	}{
		{m.Speed > 0 && !math.IsInf(m.Speed, 0), "marquee.speed must be positive"},
		{m.ResumeDelayMS >= 0, "marquee.resume_delay_ms must not be negative"},
		{m.NudgeGap >= 0, "marquee.nudge_gap must not be negative"},
		{m.DefaultNudge > 0, "marquee.default_nudge must be positive"},
		{d.FPS >= 1 && d.FPS <= 240, "display.fps must be between 1 and 240"},
		{d.CellWidth > 0, "display.cell_width must be positive"},
		{d.LongCardWidth >= d.CellWidth, "display.long_card_width must be at least one cell"},
		{d.ShortCardWidth >= d.CellWidth, "display.short_card_width must be at least one cell"},
		{d.CardHeight >= 3, "display.card_height must be at least 3"},
		{d.CardGap >= 0, "display.card_gap must not be negative"},
		{s.Port >= 0 && s.Port <= 65535, "server.port out of range"},
		{s.IdleTimeout >= 0, "server.idle_timeout must not be negative"},
	}

	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, c.what)
		}
	}

	return nil
}

// CheckRowLayout reports whether a row of distinct cards of one width leaves the margin
// seamless wrapping needs: no card may exceed a quarter of one set, and the visible
// viewport must fit in one set, otherwise the clamped offset cannot reach the forward
// wrap point.
func (d DisplayConfig) CheckRowLayout(distinct int, cardWidth, viewportWidth float64) error {
	setWidth := float64(distinct) * (cardWidth + d.CardGap)

	if cardWidth > setWidth/4 {
		return fmt.Errorf("%w: card width %.0f exceeds a quarter of the %.0f wide set (%d items)",
			ErrLayoutMargin, cardWidth, setWidth, distinct)
	}

	if viewportWidth > setWidth {
		return fmt.Errorf("%w: viewport %.0f is wider than one %.0f wide set (%d items)",
			ErrLayoutMargin, viewportWidth, setWidth, distinct)
	}

	return nil
}

// roundConfigPrecision rounds all float64 fields to 2 decimal places
func roundConfigPrecision(config Config) Config {
	round := func(x float64) float64 {
		return math.Round(x*100) / 100
	}

	config.Marquee.Speed = round(config.Marquee.Speed)
	config.Marquee.NudgeGap = round(config.Marquee.NudgeGap)
	config.Marquee.DefaultNudge = round(config.Marquee.DefaultNudge)
	config.Display.CellWidth = round(config.Display.CellWidth)
	config.Display.LongCardWidth = round(config.Display.LongCardWidth)
	config.Display.ShortCardWidth = round(config.Display.ShortCardWidth)
	config.Display.CardGap = round(config.Display.CardGap)

	return config
}

// SharedConfig wraps Config with a mutex for access between the file watcher,
// SSH sessions and the TUI parameter panel
type SharedConfig struct {
	mu     sync.RWMutex
	config Config
}

// NewSharedConfig creates a SharedConfig holding cfg
func NewSharedConfig(cfg Config) *SharedConfig {
	return &SharedConfig{config: cfg}
}

// Get returns a copy of the current config (thread-safe read)
func (sc *SharedConfig) Get() Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	return sc.config
}

// Update replaces the config (thread-safe write)
func (sc *SharedConfig) Update(config Config) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.config = config
}
