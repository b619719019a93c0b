package commands

import (
	"github.com/spf13/cobra"

	"github.com/iliyamo/property-backoffice/internal/config"
)

// RootCmd returns the command tree.
func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "backoffice",
		Short:         "Property management back office",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("env-file", ".env", "Optional .env file loaded before reading the environment")

	root.AddCommand(
		ServeCmd(),
		WorkerCmd(),
		MigrateCmd(),
	)
	return root
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	return config.Load(envFile)
}
