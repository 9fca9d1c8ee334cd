// ABOUTME: Serve command: hosts the showreel over SSH
// ABOUTME: Flags override the [server] section of the config file

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"showreel/server"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the showreel over SSH, one independent session per connection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := loadCatalog(a.catalogPath)
			if err != nil {
				return err
			}

			logger := a.log
			if !a.debug {
				if logger, err = newServerLogger(); err != nil {
					return err
				}

				defer func() { _ = logger.Sync() }()
			}

			shared := loadSharedConfig(a.configPath, logger)

			cfg := shared.Get()
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}

			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			shared.Update(cfg)

			s, err := server.New(shared, a.configPath, catalog, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return s.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host (default from config)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (default from config)")

	return cmd
}
