package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/ncobase/example-api/config"
	"github.com/ncobase/example-api/internal/app"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Aliases: []string{"s", "start"},
		Args:    cobra.NoArgs,
		Short:   "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := app.InitializeApp()
			if err != nil {
				return err
			}
			defer cleanup()

			config.Watch(func(c *config.Config) {
				if c == nil || c.Logger == nil {
					return
				}
				a.Logger.SetLevel(logrus.Level(c.Logger.Level))
				a.Logger.Info(context.Background(), "Configuration reloaded", "level", a.Logger.GetLevel().String())
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return a.Server.Run(ctx)
		},
	}
}
