package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"rss-podcast/pkg/domain"
)

type feedsFile struct {
	Feeds []feedEntry `yaml:"feeds"`
}

type feedEntry struct {
	URL      string `yaml:"url"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Enabled  *bool  `yaml:"enabled"`
}

// LoadFeeds reads the feed list from a YAML file. Feeds default to
// enabled; disabled feeds are dropped. A feed without a URL is a
// configuration error.
func LoadFeeds(path string) ([]domain.Feed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feeds file %s: %w", path, err)
	}

	var parsed feedsFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse feeds file %s: %w", path, err)
	}

	feeds := make([]domain.Feed, 0, len(parsed.Feeds))
	for i, entry := range parsed.Feeds {
		if entry.URL == "" {
			return nil, fmt.Errorf("feeds file %s: entry %d has no url", path, i)
		}
		enabled := entry.Enabled == nil || *entry.Enabled
		if !enabled {
			continue
		}
		feeds = append(feeds, domain.Feed{
			URL:      entry.URL,
			Name:     entry.Name,
			Category: entry.Category,
			Enabled:  true,
		})
	}

	return feeds, nil
}
