// Package cli wires the tabhost commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/tabhost/tabhost/pkg/config"
	"github.com/tabhost/tabhost/pkg/logger"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "tabhost",
		Short:        "Dashboard tab contribution host",
		Long:         "tabhost validates extension-contributed dashboard tabs and serves the resulting registry.",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "", "path to a tabhost config file")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().Bool("log-json", false, "emit logs as JSON")
	root.PersistentFlags().Bool("log-source", false, "include caller locations in logs")

	root.AddCommand(
		ValidateCmd(),
		ServeCmd(),
	)
	return root
}

// setupFromFlags initializes logging and loads the configuration, letting
// CLI flags override the config file values where they were set.
func setupFromFlags(cmd *cobra.Command) (*config.Config, error) {
	logLevel, _ := cmd.Flags().GetString("log-level")
	logJSON, _ := cmd.Flags().GetBool("log-json")
	logSource, _ := cmd.Flags().GetBool("log-source")
	logger.SetupLogger(logLevel, logJSON, logSource)

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cmd.Context(), configFile)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Runtime.LogLevel = logLevel
	}
	if dir, _ := cmd.Flags().GetString("extensions"); dir != "" {
		cfg.Extensions.Dir = dir
	}
	if cmd.Flags().Changed("strict") {
		strict, _ := cmd.Flags().GetBool("strict")
		cfg.Extensions.Strict = strict
	}
	return cfg, nil
}
