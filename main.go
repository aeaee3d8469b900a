package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rss-podcast/pkg/config"
	"rss-podcast/pkg/logger"
)

var (
	configDir string
	verbose   bool
)

func main() {
	root := &cobra.Command{
		Use:   "rss-podcast",
		Short: "Turn RSS feeds into a two-host podcast",
		Long: "Fetches articles from RSS feeds, asks a local LLM to draft a two-host\n" +
			"dialogue script summarizing them, and optionally synthesizes the script\n" +
			"into audio through a pluggable TTS backend.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVarP(&configDir, "config", "c", "config", "Configuration directory")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	root.AddCommand(
		fetchCmd(),
		generateCmd(),
		pipelineCmd(),
		listFeedsCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
