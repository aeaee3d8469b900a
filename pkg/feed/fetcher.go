package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"

	"rss-podcast/pkg/domain"
	"rss-podcast/pkg/httpclient"
)

// Fetcher retrieves feed entries and normalizes them into Articles.
type Fetcher struct {
	client *httpclient.Client
	parser *gofeed.Parser
}

// NewFetcher creates a fetcher using the given HTTP client for feed
// retrieval.
func NewFetcher(client *httpclient.Client) *Fetcher {
	return &Fetcher{
		client: client,
		parser: gofeed.NewParser(),
	}
}

// FetchAll fetches entries from every feed published since the given
// time. A failing feed is logged and skipped; it never fails the batch.
// Output preserves feed iteration order with newest-first ordering within
// each feed, and duplicate article URLs are dropped (first occurrence
// wins). Entries without a parseable publish date are included with
// DateUnparsed set and sort after dated entries of their feed.
func (f *Fetcher) FetchAll(ctx context.Context, feeds []domain.Feed, since time.Time) ([]domain.Article, error) {
	var all []domain.Article
	seen := make(map[string]bool)

	for _, fd := range feeds {
		if err := ctx.Err(); err != nil {
			return all, err
		}

		articles, err := f.FetchFeed(ctx, fd, since)
		if err != nil {
			slog.Warn("failed to fetch feed", "feed", fd.DisplayName(), "url", fd.URL, "error", err)
			continue
		}

		kept := 0
		for _, a := range articles {
			if seen[a.URL] {
				continue
			}
			seen[a.URL] = true
			all = append(all, a)
			kept++
		}

		slog.Info("fetched feed", "feed", fd.DisplayName(), "articles", kept)
	}

	slog.Info("feed fetch complete", "total_articles", len(all))
	return all, nil
}

// FetchFeed fetches a single feed and returns its entries published
// since the given time, newest first.
func (f *Fetcher) FetchFeed(ctx context.Context, fd domain.Feed, since time.Time) ([]domain.Article, error) {
	body, err := f.client.GetBody(ctx, fd.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	parsed, err := f.parser.ParseString(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	source := fd.Name
	if source == "" {
		source = parsed.Title
	}
	if source == "" {
		source = fd.URL
	}

	var articles []domain.Article
	for _, item := range parsed.Items {
		if item.Link == "" {
			continue
		}

		published, unparsed := entryTime(item)
		if !unparsed && published.Before(since) {
			continue
		}

		articles = append(articles, domain.Article{
			ID:           domain.ArticleID(item.Link),
			Title:        itemTitle(item),
			URL:          item.Link,
			Source:       source,
			Category:     fd.Category,
			Published:    published,
			DateUnparsed: unparsed,
			Summary:      itemSummary(item),
			FetchStatus:  domain.FetchNotAttempted,
		})
	}

	// Newest first; entries without a parseable date sort last.
	sort.SliceStable(articles, func(i, j int) bool {
		if articles[i].DateUnparsed != articles[j].DateUnparsed {
			return !articles[i].DateUnparsed
		}
		return articles[i].Published.After(articles[j].Published)
	})

	return articles, nil
}

// entryTime extracts the best publish timestamp from a feed entry.
// It falls back to the updated timestamp, then to parsing the raw date
// strings. Returns a zero time and true when no date can be parsed.
func entryTime(item *gofeed.Item) (time.Time, bool) {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed, false
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed, false
	}
	for _, raw := range []string{item.Published, item.Updated} {
		if raw == "" {
			continue
		}
		if t, err := dateparse.ParseAny(raw); err == nil {
			return t, false
		}
	}
	return time.Time{}, true
}

func itemTitle(item *gofeed.Item) string {
	if item.Title != "" {
		return item.Title
	}
	return domain.UntitledTitle
}

func itemSummary(item *gofeed.Item) string {
	if item.Description != "" {
		return item.Description
	}
	return item.Content
}
