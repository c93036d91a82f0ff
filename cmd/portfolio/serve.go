package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cdelgado/portfolio/internal/config"
	"github.com/cdelgado/portfolio/internal/devserver"
)

type serveFlags struct {
	host string
	port int
	root string
}

func newServeCommand(global *globalFlags) *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview the site with live reload",
		Long: `Serves the site directory, reloads open pages when files change and
accepts contact form submissions at the configured path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}
			if _, err := os.Stat(cfg.Dev.Root); err != nil {
				return fmt.Errorf("site root %s: %w", cfg.Dev.Root, err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return devserver.New(cfg, newLogger(cfg)).Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&flags.host, "host", "H", "", "Host to bind the preview server to")
	cmd.Flags().IntVarP(&flags.port, "port", "p", 0, "Port to run the preview server on")
	cmd.Flags().StringVarP(&flags.root, "root", "r", "", "Directory holding the site")

	return cmd
}

// apply lets flags given on the command line win over file and environment.
func (f *serveFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("host") {
		cfg.Dev.Host = f.host
	}
	if cmd.Flags().Changed("port") {
		cfg.Dev.Port = f.port
	}
	if cmd.Flags().Changed("root") {
		cfg.Dev.Root = f.root
	}
	return cfg.Validate()
}
