package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func pipelineCmd() *cobra.Command {
	var (
		days       int
		scriptOnly bool
		language   string
	)

	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Run the full pipeline: fetch articles, then generate the podcast",
		Long: "Runs fetch and generate sequentially. There is no rollback: if the\n" +
			"generate stage fails, the fetched articles snapshot stays on disk and a\n" +
			"later 'generate' run picks it up.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("days") {
				cfg.Scraper.DaysBack = days
			}
			if language != "" {
				cfg.Podcast.Language = language
			}

			path, articles, err := runFetch(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			fmt.Printf("Fetched %d articles, saved to %s\n", len(articles), path)

			return runGenerate(cmd.Context(), cfg, path, scriptOnly)
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 7, "Days back to fetch")
	cmd.Flags().BoolVar(&scriptOnly, "script-only", false, "Generate script only (no audio)")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Script language code (e.g. en, pl)")

	return cmd
}

func listFeedsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-feeds",
		Short: "List the configured RSS feeds",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			for _, f := range cfg.Feeds {
				if f.Category != "" {
					fmt.Printf("  • %s [%s]\n", f.DisplayName(), f.Category)
				} else {
					fmt.Printf("  • %s\n", f.DisplayName())
				}
				fmt.Printf("    %s\n", f.URL)
			}

			return nil
		},
	}
}
