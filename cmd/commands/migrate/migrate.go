package migrate

import (
	"context"

	"github.com/ncobase/example-api/biz/example"
	"github.com/ncobase/example-api/internal/app"
	"github.com/spf13/cobra"
)

// NewCommand creates the migrate command
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "migrate",
		Args:    cobra.NoArgs,
		Aliases: []string{"m"},
		Short:   "Create the database schema",
		Long:    `Create the examples table and its indexes on the configured database. Safe to run repeatedly.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, cleanup, err := app.InitializeMigrator()
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if err := example.Migrate(ctx, m.Data); err != nil {
				return err
			}
			m.Logger.Info(ctx, "Schema is up to date", "driver", m.Data.Driver)
			return nil
		},
	}
}
