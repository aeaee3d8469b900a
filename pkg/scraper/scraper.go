package scraper

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"rss-podcast/pkg/content"
	"rss-podcast/pkg/domain"
	"rss-podcast/pkg/httpclient"
)

// Scraper fetches article pages and extracts their full body text using
// a bounded pool of workers.
type Scraper struct {
	client     *httpclient.Client
	extractor  content.Extractor
	maxWorkers int
	now        func() time.Time
}

// NewScraper creates a scraper with the given HTTP client and worker
// count.
func NewScraper(client *httpclient.Client, maxWorkers int) *Scraper {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Scraper{
		client:     client,
		extractor:  content.NewDefaultExtractor(),
		maxWorkers: maxWorkers,
		now:        time.Now,
	}
}

// SetExtractor replaces the content extractor. Used in tests.
func (s *Scraper) SetExtractor(e content.Extractor) {
	s.extractor = e
}

// ScrapeAll scrapes full content for every article concurrently and
// returns the articles in their input order. A failed scrape degrades
// that article to summary-only; it never fails the batch. All workers
// are joined before results are returned.
func (s *Scraper) ScrapeAll(ctx context.Context, articles []domain.Article) []domain.Article {
	total := len(articles)
	if total == 0 {
		return articles
	}

	slog.Info("scraping articles", "total", total, "workers", s.maxWorkers)

	jobChan := make(chan int, total)
	for i := range articles {
		jobChan <- i
	}
	close(jobChan)

	type result struct {
		index   int
		article domain.Article
	}
	resultsChan := make(chan result, total)

	var wg sync.WaitGroup
	for w := 0; w < s.maxWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobChan {
				resultsChan <- result{index: i, article: s.scrapeOne(ctx, articles[i])}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	out := make([]domain.Article, total)
	var scraped int
	for res := range resultsChan {
		out[res.index] = res.article
		if res.article.FetchStatus == domain.FetchFull {
			scraped++
		}
	}

	slog.Info("scraping complete", "scraped", scraped, "degraded", total-scraped)
	return out
}

// scrapeOne fetches and extracts one article. Any failure degrades the
// article to its feed summary with a summary-only status.
func (s *Scraper) scrapeOne(ctx context.Context, a domain.Article) domain.Article {
	html, err := s.client.GetBody(ctx, a.URL)
	if err != nil {
		slog.Warn("failed to fetch article page", "url", a.URL, "error", err)
		a.FetchStatus = domain.FetchSummaryOnly
		return a
	}

	text, err := s.extractor.ExtractText(html)
	if err != nil {
		slog.Warn("failed to extract article text", "url", a.URL, "error", err)
		a.FetchStatus = domain.FetchSummaryOnly
		return a
	}

	// A feed entry without a title gets the page's own title.
	if a.Title == "" || a.Title == domain.UntitledTitle {
		if title, err := s.extractor.ExtractTitle(html); err == nil {
			a.Title = title
		}
	}

	now := s.now()
	a.Content = text
	a.ScrapedAt = &now
	a.FetchStatus = domain.FetchFull

	slog.Debug("scraped article", "url", a.URL, "chars", len(text))
	return a
}
