package ingest

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/rs1134/ai-disruption-tracker/app/classify"
	"github.com/rs1134/ai-disruption-tracker/app/config"
)

const (
	rssStagger    = 150 * time.Millisecond
	excerptLength = 600
	rssAccept     = "application/rss+xml, application/atom+xml, text/xml, */*"

	// Articles carrying a specific disruption category rank above
	// general coverage from the same outlet.
	categoryBonus = 20
)

// RSSAdapter pulls curated RSS/Atom feeds. Articles have no native
// engagement metrics, so the score is the feed's editorial priority
// plus a category bonus.
type RSSAdapter struct {
	httpClient *http.Client
	classifier *classify.Classifier
	parser     *gofeed.Parser
	feeds      []config.NewsFeed
	userAgent  string
}

func NewRSSAdapter(httpClient *http.Client, classifier *classify.Classifier, feeds []config.NewsFeed, userAgent string) *RSSAdapter {
	return &RSSAdapter{
		httpClient: httpClient,
		classifier: classifier,
		parser:     gofeed.NewParser(),
		feeds:      feeds,
		userAgent:  userAgent,
	}
}

// Fetch walks the configured feeds sequentially. A failing feed is
// logged and skipped.
func (a *RSSAdapter) Fetch(ctx context.Context) []Item {
	var items []Item

	for i, feed := range a.feeds {
		if i > 0 {
			if err := sleepCtx(ctx, rssStagger); err != nil {
				return items
			}
		}

		articles, err := a.fetchFeed(ctx, feed)
		if err != nil {
			slog.Error("Feed fetch failed", "source", feed.Name, "error", err)
			continue
		}

		slog.Debug("Feed fetched", "source", feed.Name, "relevant", len(articles))
		items = append(items, articles...)
	}

	return items
}

func (a *RSSAdapter) fetchFeed(ctx context.Context, feed config.NewsFeed) ([]Item, error) {
	data, err := fetchBytes(ctx, a.httpClient, feed.URL, a.userAgent, rssAccept)
	if err != nil {
		return nil, err
	}

	parsed, err := a.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	cutoff := time.Now().Add(-24 * time.Hour)
	var items []Item

	for _, entry := range parsed.Items {
		if entry.Title == "" || entry.Link == "" {
			continue
		}

		publishedAt := entryTime(entry)
		if publishedAt.IsZero() || publishedAt.Before(cutoff) {
			continue
		}

		excerpt := truncate(stripHTML(entryBody(entry)), excerptLength)

		text := entry.Title + " " + excerpt
		if !a.classifier.IsRelevant(text) {
			continue
		}

		category := a.classifier.DetectCategory(text)
		score := float64(feed.Priority)
		if category != classify.CategoryGeneral {
			score += categoryBonus
		}

		items = append(items, Item{
			ID:              articleID(entry.Link),
			Type:            TypeNews,
			Title:           entry.Title,
			Content:         excerpt,
			Author:          entryAuthor(entry, feed.Name),
			Source:          feed.Name,
			URL:             entry.Link,
			ImageURL:        entryImage(entry),
			EngagementScore: score,
			Category:        category,
			Sentiment:       a.classifier.AnalyzeSentiment(text),
			Tags:            a.classifier.ExtractTags(text),
			PublishedAt:     publishedAt,
		})
	}

	return items, nil
}

// articleID derives a stable item ID from the article URL, so re-fetching
// the same article updates its row instead of inserting a duplicate.
func articleID(link string) string {
	hash := sha256.Sum256([]byte(link))
	return "rss_" + hex.EncodeToString(hash[:])[:20]
}

func entryTime(entry *gofeed.Item) time.Time {
	if entry.PublishedParsed != nil {
		return *entry.PublishedParsed
	}
	if entry.UpdatedParsed != nil {
		return *entry.UpdatedParsed
	}
	return time.Time{}
}

func entryBody(entry *gofeed.Item) string {
	if entry.Description != "" {
		return entry.Description
	}
	return entry.Content
}

func entryAuthor(entry *gofeed.Item, fallback string) string {
	if len(entry.Authors) > 0 && entry.Authors[0] != nil && entry.Authors[0].Name != "" {
		return entry.Authors[0].Name
	}
	if entry.Author != nil && entry.Author.Name != "" {
		return entry.Author.Name
	}
	return fallback
}

// entryImage resolves an article image: media extensions first, then the
// enclosure, then the first usable <img> embedded in the HTML body.
func entryImage(entry *gofeed.Item) string {
	if entry.Image != nil && entry.Image.URL != "" {
		return entry.Image.URL
	}

	if media, ok := entry.Extensions["media"]; ok {
		for _, tag := range []string{"content", "thumbnail"} {
			for _, ext := range media[tag] {
				if url := ext.Attrs["url"]; url != "" {
					return url
				}
			}
		}
	}

	for _, enclosure := range entry.Enclosures {
		if enclosure != nil && strings.HasPrefix(enclosure.Type, "image/") && enclosure.URL != "" {
			return enclosure.URL
		}
	}

	html := entry.Content
	if html == "" {
		html = entry.Description
	}
	return firstImageURL(html)
}

// firstImageURL returns the first absolute image URL in the HTML that
// does not look like a tracking pixel or spacer.
func firstImageURL(html string) string {
	if html == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	found := ""
	doc.Find("img").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src := strings.TrimSpace(sel.AttrOr("src", ""))
		if !strings.HasPrefix(src, "http") {
			return true
		}
		if strings.Contains(src, "spacer") || strings.Contains(src, "pixel") ||
			strings.Contains(src, "tracking") || strings.HasSuffix(src, ".gif") {
			return true
		}
		found = src
		return false
	})

	return found
}

func stripHTML(html string) string {
	if html == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(htmlTagRe.ReplaceAllString(html, ""))
	}

	return strings.TrimSpace(doc.Text())
}
