package config

import (
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// Loader reads the sources and vocabulary configuration. When sourcesDir
// is empty, or a file is missing from it, the embedded defaults are used.
type Loader struct {
	sourcesDir string
}

func NewLoader(sourcesDir string) *Loader {
	return &Loader{sourcesDir: sourcesDir}
}

func (l *Loader) LoadSources() (*Sources, error) {
	data, origin, err := l.readFile("sources.yaml")
	if err != nil {
		return nil, err
	}

	var sources Sources
	if err := yaml.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", origin, err)
	}

	setSourceDefaults(&sources)

	if err := validateSources(&sources); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", origin, err)
	}

	slog.Debug("Sources configuration loaded", "origin", origin,
		"subreddits", len(sources.Subreddits), "news_feeds", len(sources.NewsFeeds),
		"funding_feeds", len(sources.FundingFeeds))

	return &sources, nil
}

func (l *Loader) LoadVocabulary() (*Vocabulary, error) {
	data, origin, err := l.readFile("vocabulary.yaml")
	if err != nil {
		return nil, err
	}

	var vocab Vocabulary
	if err := yaml.Unmarshal(data, &vocab); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", origin, err)
	}

	if err := validateVocabulary(&vocab); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", origin, err)
	}

	slog.Debug("Vocabulary loaded", "origin", origin,
		"relevance_terms", len(vocab.RelevanceTerms), "categories", len(vocab.Categories),
		"companies", len(vocab.Companies))

	return &vocab, nil
}

// readFile prefers an override in sourcesDir and falls back to the
// embedded defaults.
func (l *Loader) readFile(name string) ([]byte, string, error) {
	if l.sourcesDir != "" {
		path := filepath.Join(l.sourcesDir, name)
		if data, err := os.ReadFile(path); err == nil {
			return data, path, nil
		} else if !os.IsNotExist(err) {
			return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	data, err := defaultsFS.ReadFile("defaults/" + name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read embedded %s: %w", name, err)
	}
	return data, "embedded " + name, nil
}

func setSourceDefaults(sources *Sources) {
	if sources.SocialMaxItems == 0 {
		sources.SocialMaxItems = 100
	}
	if sources.NewsMaxItems == 0 {
		sources.NewsMaxItems = 80
	}
	if sources.HackerNewsCap == 0 {
		sources.HackerNewsCap = 200
	}
}

func validateSources(sources *Sources) error {
	for i, feed := range sources.NewsFeeds {
		if feed.URL == "" {
			return fmt.Errorf("news feed at index %d has no URL", i)
		}
		if feed.Name == "" {
			return fmt.Errorf("news feed at index %d has no name", i)
		}
		if feed.Priority <= 0 {
			return fmt.Errorf("news feed %s must have a positive priority", feed.Name)
		}
	}
	if sources.SocialMaxItems < 0 || sources.NewsMaxItems < 0 {
		return fmt.Errorf("item caps must be non-negative")
	}
	return nil
}

func validateVocabulary(vocab *Vocabulary) error {
	if len(vocab.RelevanceTerms) == 0 {
		return fmt.Errorf("relevance_terms must not be empty")
	}
	if len(vocab.Categories) == 0 {
		return fmt.Errorf("categories must not be empty")
	}
	seen := make(map[string]bool, len(vocab.Categories))
	for i, cat := range vocab.Categories {
		if cat.Name == "" {
			return fmt.Errorf("category at index %d has no name", i)
		}
		if seen[cat.Name] {
			return fmt.Errorf("duplicate category: %s", cat.Name)
		}
		seen[cat.Name] = true
		if len(cat.Keywords) == 0 {
			return fmt.Errorf("category %s has no keywords", cat.Name)
		}
	}
	return nil
}
