package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"rss-podcast/pkg/config"
	"rss-podcast/pkg/domain"
	"rss-podcast/pkg/feed"
	"rss-podcast/pkg/httpclient"
	"rss-podcast/pkg/scraper"
	"rss-podcast/pkg/store"
)

func fetchCmd() *cobra.Command {
	var (
		days     int
		noScrape bool
		output   string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch articles from the configured RSS feeds",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("days") {
				cfg.Scraper.DaysBack = days
			}
			if noScrape {
				cfg.Scraper.ScrapeFullArticles = false
			}
			if output != "" {
				cfg.Storage.ArticlesDir = output
			}

			path, articles, err := runFetch(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			fmt.Printf("Fetched %d articles, saved to %s\n", len(articles), path)
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 7, "Days back to fetch")
	cmd.Flags().BoolVar(&noScrape, "no-scrape", false, "Skip full article scraping")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Articles output directory")

	return cmd
}

// runFetch runs the fetch stage: feed retrieval, optional full-text
// scraping, and the snapshot write. Returns the snapshot path and the
// fetched articles.
func runFetch(ctx context.Context, cfg *config.Config) (string, []domain.Article, error) {
	now := time.Now()
	since := now.AddDate(0, 0, -cfg.Scraper.DaysBack)

	client := httpclient.New(cfg.Scraper.UserAgent, cfg.Scraper.RequestTimeout())

	articles, err := feed.NewFetcher(client).FetchAll(ctx, cfg.Feeds, since)
	if err != nil {
		return "", nil, fmt.Errorf("feed fetch failed: %w", err)
	}

	if cfg.Scraper.ScrapeFullArticles && len(articles) > 0 {
		articles = scraper.NewScraper(client, cfg.Scraper.MaxWorkers).ScrapeAll(ctx, articles)
	}

	articleStore, err := store.NewArticleStore(cfg.Storage.ArticlesDir)
	if err != nil {
		return "", nil, err
	}

	path, err := articleStore.Save(articles, since, now)
	if err != nil {
		return "", nil, err
	}

	return path, articles, nil
}
