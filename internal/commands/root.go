// Package commands implements the splitbill command line.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/mmynk/splitbill/internal/buildinfo"
	"github.com/mmynk/splitbill/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "splitbill",
		Short:   "Split bills item by item, with tip and tax shared fairly",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "path to the YAML config file")

	rootCmd.AddCommand(newServeCommand(&configPath))
	rootCmd.AddCommand(newSummarizeCommand(&configPath))

	return rootCmd
}
