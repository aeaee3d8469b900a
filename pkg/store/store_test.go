package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"rss-podcast/pkg/domain"
)

func sampleArticles() []domain.Article {
	scraped := time.Date(2026, 8, 25, 12, 30, 0, 0, time.UTC)
	return []domain.Article{
		{
			ID:          domain.ArticleID("https://example.com/one"),
			Title:       "First Article",
			URL:         "https://example.com/one",
			Source:      "Example",
			Category:    "tech",
			Published:   time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC),
			Summary:     "A summary.",
			Content:     "Full article body.",
			ScrapedAt:   &scraped,
			FetchStatus: domain.FetchFull,
		},
		{
			ID:           domain.ArticleID("https://example.com/two"),
			Title:        "Second Article",
			URL:          "https://example.com/two",
			Source:       "Example",
			DateUnparsed: true,
			Summary:      "Only a summary.",
			FetchStatus:  domain.FetchSummaryOnly,
		},
	}
}

func TestArticleStore_SaveAndLoad(t *testing.T) {
	store, err := NewArticleStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewArticleStore failed: %v", err)
	}

	articles := sampleArticles()
	start := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)

	path, err := store.Save(articles, start, end)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if filepath.Base(path) != "articles_2026-08-20_2026-08-27.json" {
		t.Errorf("Unexpected snapshot name: %s", filepath.Base(path))
	}

	loaded, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Expected 2 articles, got %d", len(loaded))
	}
	if loaded[0].ID != articles[0].ID || loaded[0].Content != "Full article body." {
		t.Errorf("First article did not round-trip: %+v", loaded[0])
	}
	if loaded[0].ScrapedAt == nil || !loaded[0].ScrapedAt.Equal(*articles[0].ScrapedAt) {
		t.Error("ScrapedAt did not round-trip")
	}
	if !loaded[1].DateUnparsed {
		t.Error("DateUnparsed flag did not round-trip")
	}
	if loaded[1].FetchStatus != domain.FetchSummaryOnly {
		t.Errorf("FetchStatus did not round-trip: %q", loaded[1].FetchStatus)
	}
}

func TestArticleStore_Latest(t *testing.T) {
	dir := t.TempDir()
	store, err := NewArticleStore(dir)
	if err != nil {
		t.Fatalf("NewArticleStore failed: %v", err)
	}

	latest, err := store.Latest()
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if latest != "" {
		t.Errorf("Expected empty path with no snapshots, got %q", latest)
	}

	older, err := store.Save(sampleArticles(), time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 8, 8, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	newer, err := store.Save(sampleArticles(), time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Separate the modification times explicitly; both writes can land
	// in the same clock tick.
	now := time.Now()
	os.Chtimes(older, now.Add(-time.Hour), now.Add(-time.Hour))
	os.Chtimes(newer, now, now)

	latest, err = store.Latest()
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if latest != newer {
		t.Errorf("Expected latest snapshot %s, got %s", newer, latest)
	}
}

func TestArticleStore_ExportText(t *testing.T) {
	dir := t.TempDir()
	store, err := NewArticleStore(dir)
	if err != nil {
		t.Fatalf("NewArticleStore failed: %v", err)
	}

	path := filepath.Join(dir, "export", "articles.txt")
	if err := store.ExportText(sampleArticles(), path); err != nil {
		t.Fatalf("ExportText failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Reading export failed: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "First Article") || !strings.Contains(text, "Full article body.") {
		t.Error("Expected article content in export")
	}
	if !strings.Contains(text, "Only a summary.") {
		t.Error("Expected summary fallback in export for summary-only article")
	}
}

func sampleScript() *domain.Script {
	return &domain.Script{
		ID:    "0f2e8a7c-1b3d-4e5f-8a9b-0c1d2e3f4a5b",
		Title: "Tech Feed - 2026-08-27",
		Turns: []domain.DialogueTurn{
			{Speaker: domain.SpeakerHost, Text: "Welcome.", Index: 0},
			{Speaker: domain.SpeakerCoHost, Text: "Hello.", Index: 1},
		},
		SourceArticleIDs: []string{"abc123def456"},
		Language:         "en",
		GeneratedAt:      time.Date(2026, 8, 27, 18, 4, 5, 0, time.UTC),
	}
}

func TestPodcastStore_SaveAndLoadScript(t *testing.T) {
	store, err := NewPodcastStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewPodcastStore failed: %v", err)
	}

	script := sampleScript()
	path, err := store.SaveScript(script)
	if err != nil {
		t.Fatalf("SaveScript failed: %v", err)
	}
	if filepath.Base(path) != "script_2026-08-27_180405.json" {
		t.Errorf("Unexpected script file name: %s", filepath.Base(path))
	}

	// The plain-text rendering is written next to the JSON.
	txtPath := strings.TrimSuffix(path, ".json") + ".txt"
	txt, err := os.ReadFile(txtPath)
	if err != nil {
		t.Fatalf("Reading text rendering failed: %v", err)
	}
	if !strings.Contains(string(txt), "[HOST] Welcome.") || !strings.Contains(string(txt), "[CO-HOST] Hello.") {
		t.Errorf("Unexpected text rendering: %q", string(txt))
	}

	loaded, err := store.LoadScript(path)
	if err != nil {
		t.Fatalf("LoadScript failed: %v", err)
	}
	if loaded.ID != script.ID || loaded.TurnCount() != 2 {
		t.Errorf("Script did not round-trip: %+v", loaded)
	}
	if loaded.Turns[1].Speaker != domain.SpeakerCoHost {
		t.Errorf("Expected co_host speaker, got %q", loaded.Turns[1].Speaker)
	}
}

func TestPodcastStore_List(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPodcastStore(dir)
	if err != nil {
		t.Fatalf("NewPodcastStore failed: %v", err)
	}

	first := sampleScript()
	first.GeneratedAt = time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	if _, err := store.SaveScript(first); err != nil {
		t.Fatalf("SaveScript failed: %v", err)
	}

	second := sampleScript()
	second.GeneratedAt = time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	secondPath, err := store.SaveScript(second)
	if err != nil {
		t.Fatalf("SaveScript failed: %v", err)
	}

	// Sibling audio file is picked up for the episode.
	audioPath := strings.TrimSuffix(secondPath, ".json") + ".wav"
	if err := os.WriteFile(audioPath, []byte("RIFF"), 0o644); err != nil {
		t.Fatalf("Writing audio stub failed: %v", err)
	}

	episodes, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(episodes) != 2 {
		t.Fatalf("Expected 2 episodes, got %d", len(episodes))
	}
	if !episodes[0].GeneratedAt.After(episodes[1].GeneratedAt) {
		t.Error("Expected newest-first ordering")
	}
	if episodes[0].AudioPath != audioPath {
		t.Errorf("Expected sibling audio path %s, got %s", audioPath, episodes[0].AudioPath)
	}
	if episodes[1].AudioPath != "" {
		t.Errorf("Expected no audio for older episode, got %s", episodes[1].AudioPath)
	}
}

func TestPodcastStore_ListSkipsUnreadable(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPodcastStore(dir)
	if err != nil {
		t.Fatalf("NewPodcastStore failed: %v", err)
	}

	if _, err := store.SaveScript(sampleScript()); err != nil {
		t.Fatalf("SaveScript failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "script_2026-01-01_000000.json"), []byte("{broken"), 0o644); err != nil {
		t.Fatalf("Writing broken file failed: %v", err)
	}

	episodes, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(episodes) != 1 {
		t.Errorf("Expected broken script skipped, got %d episodes", len(episodes))
	}
}
