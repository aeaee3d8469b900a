package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"rss-podcast/pkg/domain"
)

// PodcastStore persists generated scripts (JSON plus a readable text
// rendering) in the podcast output directory.
type PodcastStore struct {
	dir string
}

// NewPodcastStore creates a store rooted at the given directory,
// creating it if needed.
func NewPodcastStore(dir string) (*PodcastStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create podcasts directory: %w", err)
	}
	return &PodcastStore{dir: dir}, nil
}

// Dir returns the store's base directory.
func (s *PodcastStore) Dir() string {
	return s.dir
}

// SaveScript writes the script as JSON and as plain text with speaker
// markers. Returns the path of the JSON file.
func (s *PodcastStore) SaveScript(script *domain.Script) (string, error) {
	stamp := script.GeneratedAt.Format("2006-01-02_150405")

	jsonPath := filepath.Join(s.dir, fmt.Sprintf("script_%s.json", stamp))
	data, err := json.MarshalIndent(script, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode script: %w", err)
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write script file: %w", err)
	}

	txtPath := filepath.Join(s.dir, fmt.Sprintf("script_%s.txt", stamp))
	if err := os.WriteFile(txtPath, []byte(script.PlainText()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write script text file: %w", err)
	}

	slog.Info("saved script", "path", jsonPath, "turns", script.TurnCount())
	return jsonPath, nil
}

// LoadScript reads a script back from its JSON file.
func (s *PodcastStore) LoadScript(path string) (*domain.Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script file: %w", err)
	}

	var script domain.Script
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("failed to parse script file %s: %w", path, err)
	}

	return &script, nil
}

// LatestScript returns the path of the most recently written script
// JSON, or an empty string when none exists.
func (s *PodcastStore) LatestScript() (string, error) {
	return latestFile(s.dir, "script_*.json")
}

// Episode summarizes one generated podcast on disk.
type Episode struct {
	Title       string
	GeneratedAt time.Time
	TurnCount   int
	ScriptPath  string
	AudioPath   string
}

// List returns metadata for every persisted script, newest first.
// Unreadable files are logged and skipped.
func (s *PodcastStore) List() ([]Episode, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "script_*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list scripts: %w", err)
	}

	episodes := make([]Episode, 0, len(matches))
	for _, path := range matches {
		script, err := s.LoadScript(path)
		if err != nil {
			slog.Warn("skipping unreadable script", "path", path, "error", err)
			continue
		}

		audioPath := strings.TrimSuffix(path, ".json") + ".wav"
		if _, err := os.Stat(audioPath); err != nil {
			audioPath = script.AudioPath
		}

		episodes = append(episodes, Episode{
			Title:       script.Title,
			GeneratedAt: script.GeneratedAt,
			TurnCount:   script.TurnCount(),
			ScriptPath:  path,
			AudioPath:   audioPath,
		})
	}

	sort.Slice(episodes, func(i, j int) bool {
		return episodes[i].GeneratedAt.After(episodes[j].GeneratedAt)
	})

	return episodes, nil
}
