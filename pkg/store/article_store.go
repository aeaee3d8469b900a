package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rss-podcast/pkg/domain"
)

// ArticleStore persists article collections as dated JSON snapshots.
// Snapshots are written once and never mutated.
type ArticleStore struct {
	dir string
}

// NewArticleStore creates a store rooted at the given directory,
// creating it if needed.
func NewArticleStore(dir string) (*ArticleStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create articles directory: %w", err)
	}
	return &ArticleStore{dir: dir}, nil
}

// ArticlesMeta describes one persisted article collection.
type ArticlesMeta struct {
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	TotalArticles int       `json:"total_articles"`
	GeneratedAt   time.Time `json:"generated_at"`
}

type articlesFile struct {
	Meta     ArticlesMeta     `json:"meta"`
	Articles []domain.Article `json:"articles"`
}

// Save writes an article collection covering the given date window and
// returns the path of the written file.
func (s *ArticleStore) Save(articles []domain.Article, start, end time.Time) (string, error) {
	name := fmt.Sprintf("articles_%s_%s.json", start.Format("2006-01-02"), end.Format("2006-01-02"))
	path := filepath.Join(s.dir, name)

	data, err := json.MarshalIndent(articlesFile{
		Meta: ArticlesMeta{
			StartDate:     start,
			EndDate:       end,
			TotalArticles: len(articles),
			GeneratedAt:   time.Now(),
		},
		Articles: articles,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode articles: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write articles file: %w", err)
	}

	slog.Info("saved articles", "path", path, "count", len(articles))
	return path, nil
}

// Load reads an article collection back from a snapshot file.
func (s *ArticleStore) Load(path string) ([]domain.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read articles file: %w", err)
	}

	var parsed articlesFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse articles file %s: %w", path, err)
	}

	return parsed.Articles, nil
}

// Latest returns the path of the most recently written snapshot, or an
// empty string when no snapshot exists.
func (s *ArticleStore) Latest() (string, error) {
	return latestFile(s.dir, "articles_*.json")
}

// ExportText writes a plain-text rendering of the articles, suitable
// for feeding to an LLM outside the pipeline.
func (s *ArticleStore) ExportText(articles []domain.Article, path string) error {
	var b strings.Builder
	b.WriteString("# RSS ARTICLES EXPORT\n")
	fmt.Fprintf(&b, "Generated: %s\n", time.Now().Format("2006-01-02"))
	fmt.Fprintf(&b, "Total Articles: %d\n", len(articles))
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	for _, a := range articles {
		text := a.Text()
		if text == "" {
			text = "(No content available)"
		}
		fmt.Fprintf(&b, "SOURCE: %s\nDATE: %s\nTITLE: %s\nURL: %s\nCONTENT:\n%s\n%s\n\n",
			a.Source, a.Published.Format("2006-01-02"), a.Title, a.URL, text, strings.Repeat("-", 30))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

// latestFile returns the newest file (by modification time) matching the
// pattern inside dir, or an empty string when there is none.
func latestFile(dir, pattern string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", fmt.Errorf("failed to list files: %w", err)
	}

	var newest string
	var newestMod time.Time
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = m
			newestMod = info.ModTime()
		}
	}

	return newest, nil
}
