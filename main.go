// ABOUTME: Entry point for showreel
// ABOUTME: Builds the command tree, handles profiling and routes to TUI, simulate, catalog or serve modes

// Package main provides the entry point for showreel, an infinite marquee portfolio for a
// real-estate video studio.
package main

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"showreel/config"
	"showreel/media"
	"showreel/tui"
)

func main() {
	os.Exit(run())
}

func run() int {
	a := &app{}
	defer a.close()

	if err := newRootCmd(a).Execute(); err != nil {
		return 1
	}

	return 0
}

// app holds the persistent flags and the resources set up before any command runs
type app struct {
	catalogPath string
	configPath  string
	debug       bool
	cpuprofile  string
	memprofile  string

	log            *zap.Logger
	stopCPUProfile func()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "showreel",
		Short: "Infinite marquee portfolio for a real-estate video studio",
		Long: `showreel shows the studio's portfolio as rows of cards that scroll forever.
Hover, drag or scroll a row to take over; autoplay resumes after a short pause.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runTUI,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.catalogPath, "catalog", "", "catalog file (.yaml or .m3u8); the studio catalog when empty")
	flags.StringVar(&a.configPath, "config", "", "config file (default ./showreel.toml or ~/.config/showreel/config.toml)")
	flags.BoolVar(&a.debug, "debug", false, "enable debug logging to "+debugLogFile)
	flags.StringVar(&a.cpuprofile, "cpuprofile", "", "write cpu profile to file")
	flags.StringVar(&a.memprofile, "memprofile", "", "write memory profile to file")

	root.AddCommand(newSimulateCmd(a), newCatalogCmd(a), newServeCmd(a))

	return root
}

// setup runs before every command
func (a *app) setup(_ *cobra.Command, _ []string) error {
	if a.configPath == "" {
		a.configPath = config.GetConfigPath()
	}

	a.log = zap.NewNop()

	if a.debug {
		logger, err := SetupDebugLog(debugLogFile)
		if err != nil {
			return err
		}

		a.log = logger
	}

	if a.cpuprofile != "" {
		stop, err := setupCPUProfile(a.cpuprofile)
		if err != nil {
			return err
		}

		a.stopCPUProfile = stop
	}

	return nil
}

// close flushes the profiles and the debug log
func (a *app) close() {
	if a.stopCPUProfile != nil {
		a.stopCPUProfile()
	}

	if a.memprofile != "" {
		writeMemoryProfile(a.memprofile)
	}

	if a.log != nil {
		_ = a.log.Sync()
	}
}

// runTUI is the default command: the interactive showreel
func (a *app) runTUI(_ *cobra.Command, _ []string) error {
	catalog, err := loadCatalog(a.catalogPath)
	if err != nil {
		return err
	}

	opts := tui.Options{
		CatalogPath: a.catalogPath,
		Catalog:     catalog,
		Watch:       true,
		SaveOnQuit:  true,
	}

	deps := tui.Dependencies{
		Config:      loadSharedConfig(a.configPath, a.log),
		ConfigPath:  a.configPath,
		LoadCatalog: media.LoadCatalog,
		SaveConfig:  config.SaveConfig,
		Logger:      a.log,
	}

	return tui.Run(opts, deps)
}

// setupCPUProfile starts CPU profiling, returns cleanup function
func setupCPUProfile(filename string) (func(), error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("could not create CPU profile: %w", err)
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()

		return nil, fmt.Errorf("could not start CPU profile: %w", err)
	}

	return func() {
		pprof.StopCPUProfile()

		if err := f.Close(); err != nil {
			log.Printf("Warning: failed to close CPU profile: %v", err)
		}
	}, nil
}

// writeMemoryProfile writes memory profile to file
func writeMemoryProfile(filename string) {
	f, err := os.Create(filename)
	if err != nil {
		log.Printf("could not create memory profile: %v", err)

		return
	}

	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Warning: failed to close memory profile: %v", err)
		}
	}()

	runtime.GC()

	if err := pprof.WriteHeapProfile(f); err != nil {
		log.Printf("could not write memory profile: %v", err)
	}
}
