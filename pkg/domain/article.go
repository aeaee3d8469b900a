package domain

import (
	"crypto/md5"
	"encoding/hex"
	"time"
)

// FetchStatus describes how much of an article's body was retrieved.
type FetchStatus string

const (
	// FetchNotAttempted means full-text scraping was never tried for this article.
	FetchNotAttempted FetchStatus = "not-attempted"

	// FetchSummaryOnly means scraping was attempted and failed; only the
	// feed-provided summary is available.
	FetchSummaryOnly FetchStatus = "summary-only"

	// FetchFull means the full article body was scraped successfully.
	FetchFull FetchStatus = "full"
)

// Feed represents a configured RSS/Atom source. Identity is the URL.
type Feed struct {
	URL      string `yaml:"url" json:"url"`
	Name     string `yaml:"name" json:"name"`
	Category string `yaml:"category" json:"category,omitempty"`
	Enabled  bool   `yaml:"enabled" json:"enabled"`
}

// DisplayName returns the configured name, falling back to the URL.
func (f Feed) DisplayName() string {
	if f.Name != "" {
		return f.Name
	}
	return f.URL
}

// Article represents one normalized news item fetched from a feed.
// Articles are written once and never mutated after persistence.
type Article struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	URL          string      `json:"url"`
	Source       string      `json:"source"`
	Category     string      `json:"category,omitempty"`
	Published    time.Time   `json:"published"`
	DateUnparsed bool        `json:"date_unparsed,omitempty"`
	Summary      string      `json:"summary"`
	Content      string      `json:"content,omitempty"`
	ScrapedAt    *time.Time  `json:"scraped_at,omitempty"`
	FetchStatus  FetchStatus `json:"fetch_status"`
}

// UntitledTitle is the placeholder for feed entries that carry no title.
// The scraper replaces it with the page title when one can be extracted.
const UntitledTitle = "(No title)"

// ArticleID derives a stable 12-character identifier from an article URL.
// The same URL always produces the same ID.
func ArticleID(url string) string {
	sum := md5.Sum([]byte(url))
	return hex.EncodeToString(sum[:])[:12]
}

// HasContent reports whether the article has a scraped full-text body.
func (a *Article) HasContent() bool {
	return a.Content != ""
}

// Text returns the best available text for the article: the scraped
// content when present, otherwise the feed-provided summary.
func (a *Article) Text() string {
	if a.Content != "" {
		return a.Content
	}
	return a.Summary
}
