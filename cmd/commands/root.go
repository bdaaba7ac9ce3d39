package commands

import (
	"github.com/ncobase/example-api/cmd/commands/migrate"
	"github.com/ncobase/example-api/config"
	"github.com/ncobase/example-api/logging/logger"
	"github.com/ncobase/example-api/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var confPath string

	rootCmd := &cobra.Command{
		Use:           "example",
		Short:         "Example resource API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if confPath != "" {
				config.SetPath(confPath)
			}
			logger.SetVersion(version.GetVersionInfo().Version)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&confPath, "conf", "c", "", "path to the configuration file")

	rootCmd.AddCommand(
		NewServeCommand(),
		migrate.NewCommand(),
		NewVersionCommand(),
	)

	return rootCmd
}
