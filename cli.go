// ABOUTME: Headless simulate mode: drives one carousel on a frame clock and prints its trace
// ABOUTME: Shows positions, wrap phase and mode changes around an optional nudge

package main

import (
	"fmt"
	"io"
	"log"
	"math"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"showreel/config"
	"showreel/marquee"
	"showreel/media"
	"showreel/tui"
)

// simEpoch is the simulated wall clock start; only differences matter
var simEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// SimulateOptions controls one headless run
type SimulateOptions struct {
	Row      int               // Catalog row to mount
	Frames   int               // Frames to run
	NudgeAt  int               // Frame after which to nudge; 0 disables
	NudgeDir marquee.Direction // Nudge direction
	SetWidth float64           // Fixed set width; 0 lays the row out like the TUI does
	Columns  int               // Viewport columns for the TUI layout
	Every    int               // Print every N frames; events are always printed
}

// simSurface is a marquee surface that may animate between frames
type simSurface interface {
	marquee.Surface
	Animate()
}

// fixedSurface lays every card out at the same width so one set spans setWidth.
// Animated scrolls land instantly.
type fixedSurface struct {
	setWidth float64
	cards    int
	offset   float64
}

func (s *fixedSurface) Layout(track marquee.Track) { s.cards = len(track) }

func (s *fixedSurface) ScrollLeft() float64 { return s.offset }

func (s *fixedSurface) SetScrollLeft(x float64) { s.offset = x }

func (s *fixedSurface) SmoothScrollTo(x float64) { s.offset = x }

func (s *fixedSurface) Animate() {}

func (s *fixedSurface) ScrollWidth() float64 {
	if s.cards == 0 {
		return 0
	}

	return s.setWidth * marquee.TrackRepeat
}

func (s *fixedSurface) CardWidth() (float64, bool) {
	if s.cards == 0 {
		return 0, false
	}

	return s.ScrollWidth() / float64(s.cards), true
}

func newSimulateCmd(a *app) *cobra.Command {
	var (
		opts     SimulateOptions
		nudgeDir string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run one carousel headless and print its position trace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := marquee.ParseDirection(nudgeDir)
			if err != nil {
				return fmt.Errorf("invalid --nudge-dir: %w", err)
			}

			opts.NudgeDir = dir

			catalog, err := loadCatalog(a.catalogPath)
			if err != nil {
				return err
			}

			cfg := loadSharedConfig(a.configPath, a.log).Get()

			return RunSimulate(cmd.OutOrStdout(), catalog, cfg, opts, a.log)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.Row, "row", 0, "catalog row to simulate")
	flags.IntVar(&opts.Frames, "frames", 1000, "number of frames to run")
	flags.IntVar(&opts.NudgeAt, "nudge-at", 0, "nudge after this frame (0 disables)")
	flags.StringVar(&nudgeDir, "nudge-dir", "left", "nudge direction: left or right")
	flags.Float64Var(&opts.SetWidth, "set-width", 0, "fixed set width in offset units (0 lays cards out like the TUI)")
	flags.IntVar(&opts.Columns, "columns", 78, "viewport columns when laying cards out like the TUI")
	flags.IntVar(&opts.Every, "every", 100, "print a trace line every N frames (0 prints events only)")

	return cmd
}

// RunSimulate mounts one catalog row on a frame clock, runs it and writes the trace to w
func RunSimulate(w io.Writer, catalog media.Catalog, cfg config.Config, opts SimulateOptions, logger *zap.Logger) error {
	if opts.Row < 0 || opts.Row >= len(catalog.Rows) {
		return fmt.Errorf("row %d out of range: catalog has %d rows", opts.Row, len(catalog.Rows))
	}

	if opts.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", opts.Frames)
	}

	row := catalog.Rows[opts.Row]

	dir, err := marquee.ParseDirection(row.Direction)
	if err != nil {
		return fmt.Errorf("row %q: %w", row.Title, err)
	}

	var surface simSurface
	if opts.SetWidth > 0 {
		surface = &fixedSurface{setWidth: opts.SetWidth}
	} else {
		strip := tui.NewStrip(cfg.Display)
		strip.SetViewportColumns(opts.Columns)
		surface = strip
	}

	clock := marquee.NewFrameClock(simEpoch)
	c := marquee.New(surface, clock, clock, marquee.Options{
		Speed:         cfg.Marquee.Speed,
		ResumeDelay:   cfg.Marquee.ResumeDelay(),
		NudgeGap:      cfg.Marquee.NudgeGap,
		NudgeFallback: cfg.Marquee.DefaultNudge,
		Logger:        logger,
	})

	if err := c.Mount(row.Items, dir, row.Title); err != nil {
		return err
	}
	defer c.Unmount()

	interval := cfg.Display.FrameInterval()

	fmt.Fprintf(w, "Simulating %q (%d items, %s) for %d frames at %d fps\n\n",
		row.Title, len(row.Items), dir, opts.Frames, cfg.Display.FPS)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "Frame\tTime\tMode\tPosition\tPhase\tEvent"); err != nil {
		log.Printf("Warning: failed to write header: %v", err)
	}

	if _, err := fmt.Fprintln(tw, "-----\t----\t----\t--------\t-----\t-----"); err != nil {
		log.Printf("Warning: failed to write separator: %v", err)
	}

	prev := math.NaN()
	precision := minDisplayPrecision

	printRow := func(frame int, event string) {
		st := c.State()

		var pos string
		pos, precision = FormatWithMonotonicPrecision(prev, st.Position, precision)
		prev = st.Position

		elapsed := clock.Now().Sub(simEpoch).Round(time.Millisecond)
		if _, err := fmt.Fprintf(tw, "%d\t%v\t%s\t%s\t%.2f\t%s\n", frame, elapsed, st.Mode, pos, st.Offset(), event); err != nil {
			log.Printf("Warning: failed to write frame %d: %v", frame, err)
		}
	}

	lastMode := c.State().Mode
	nudged := 0

	for frame := 1; frame <= opts.Frames; frame++ {
		surface.Animate()
		clock.Step(interval)

		event := ""

		if frame == opts.NudgeAt {
			if st := c.State(); st.Measured() {
				c.Nudge(opts.NudgeDir)
				event = fmt.Sprintf("nudge %s by %.0f", opts.NudgeDir, c.NudgeAmount())
				nudged = frame
			} else {
				event = "nudge skipped (unmeasured)"
			}
		}

		mode := c.State().Mode
		if event == "" && mode != lastMode {
			event = "mode " + mode.String()
			if mode == marquee.Auto && nudged > 0 {
				event = fmt.Sprintf("autoplay resumed after %d frames", frame-nudged)
			}
		}

		lastMode = mode

		if event != "" || (opts.Every > 0 && frame%opts.Every == 0) || frame == opts.Frames {
			printRow(frame, event)
		}
	}

	if err := tw.Flush(); err != nil {
		log.Printf("Warning: failed to flush output: %v", err)
	}

	st := c.State()
	fmt.Fprintf(w, "\nSet width %.2f, final phase %.2f\n", st.SetWidth, st.Offset())

	return nil
}
