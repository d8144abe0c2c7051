package cli

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/lambdalog/lambdalog/internal/config"
	"github.com/lambdalog/lambdalog/internal/render"
	"github.com/lambdalog/lambdalog/internal/store"
	"github.com/lambdalog/lambdalog/internal/web"
)

// NewServeCommand creates the serve command.
func NewServeCommand(opts *RootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the blog HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			s, err := store.Open(cfg.Database.Path)
			if err != nil {
				return err
			}
			// The server runs until killed; no deferred Close.

			r, err := render.New(cfg.Site.Title)
			if err != nil {
				return err
			}

			logger := log.New(os.Stderr, "", log.LstdFlags)
			return web.New(cfg, s, r, logger).Run()
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides config)")
	return cmd
}

// loadConfig loads the configured or default site configuration.
func loadConfig(opts *RootOptions) (*config.Config, error) {
	if opts.ConfigPath != "" {
		return config.Load(opts.ConfigPath)
	}
	return config.Default()
}
