package ingest

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/rs1134/ai-disruption-tracker/app/config"
)

func TestRSSAdapterFetchFilters(t *testing.T) {
	fresh := time.Now().Add(-3 * time.Hour)
	stale := time.Now().Add(-30 * time.Hour)

	doc := rssDocument(
		rssEntry("OpenAI raises $50M", "https://wire.test/a",
			"<p>An <b>amazing</b> breakthrough for artificial intelligence.</p>", fresh),
		rssEntry("OpenAI ships yesterday's model", "https://wire.test/b",
			"Old artificial intelligence news.", stale),
		rssEntry("Gardening tips for spring", "https://wire.test/c",
			"Nothing about technology here.", fresh),
		rssEntry("OpenAI item with no link", "",
			"An artificial intelligence story missing its link.", fresh),
	)

	transport := routedTransport(map[string]string{"http://feeds.test/wire": doc})
	adapter := NewRSSAdapter(&http.Client{Transport: transport}, testClassifier(),
		[]config.NewsFeed{{Name: "AI Wire", URL: "http://feeds.test/wire", Priority: 90}},
		"test-agent")

	items := adapter.Fetch(context.Background())

	if len(items) != 1 {
		t.Fatalf("Expected 1 item after age, relevance and link filters, got %d", len(items))
	}

	item := items[0]
	if !strings.HasPrefix(item.ID, "rss_") || len(item.ID) != len("rss_")+20 {
		t.Errorf("Expected 20-char hash ID with 'rss_' prefix, got %q", item.ID)
	}
	if item.Type != TypeNews {
		t.Errorf("Expected news type, got %q", item.Type)
	}
	if item.Content != "An amazing breakthrough for artificial intelligence." {
		t.Errorf("Expected HTML stripped from excerpt, got %q", item.Content)
	}
	if item.EngagementScore != 110 {
		t.Errorf("Expected priority 90 + category bonus 20, got %v", item.EngagementScore)
	}
	if item.Author != "AI Wire" {
		t.Errorf("Expected feed name as author fallback, got %q", item.Author)
	}
	if item.Source != "AI Wire" {
		t.Errorf("Expected source 'AI Wire', got %q", item.Source)
	}
}

func TestRSSAdapterSkipsBrokenFeed(t *testing.T) {
	fresh := time.Now().Add(-3 * time.Hour)

	transport := routedTransport(map[string]string{
		"http://feeds.test/broken": "this is not xml",
		"http://feeds.test/good": rssDocument(rssEntry(
			"OpenAI raises $50M", "https://wire.test/a",
			"An artificial intelligence round.", fresh)),
	})
	adapter := NewRSSAdapter(&http.Client{Transport: transport}, testClassifier(),
		[]config.NewsFeed{
			{Name: "Broken", URL: "http://feeds.test/broken", Priority: 70},
			{Name: "Good", URL: "http://feeds.test/good", Priority: 80},
		},
		"test-agent")

	items := adapter.Fetch(context.Background())

	if len(items) != 1 || items[0].Source != "Good" {
		t.Fatalf("Expected only the healthy feed's item, got %d items", len(items))
	}
}

func TestArticleIDStable(t *testing.T) {
	if articleID("https://wire.test/a") != articleID("https://wire.test/a") {
		t.Error("Expected identical links to hash to the same ID")
	}
	if articleID("https://wire.test/a") == articleID("https://wire.test/b") {
		t.Error("Expected different links to hash to different IDs")
	}
}

func TestEntryImage(t *testing.T) {
	tests := []struct {
		name     string
		entry    *gofeed.Item
		expected string
	}{
		{
			name:     "feed image wins",
			entry:    &gofeed.Item{Image: &gofeed.Image{URL: "https://img.test/feed.jpg"}},
			expected: "https://img.test/feed.jpg",
		},
		{
			name: "image enclosure",
			entry: &gofeed.Item{Enclosures: []*gofeed.Enclosure{
				{Type: "audio/mpeg", URL: "https://img.test/pod.mp3"},
				{Type: "image/jpeg", URL: "https://img.test/enclosure.jpg"},
			}},
			expected: "https://img.test/enclosure.jpg",
		},
		{
			name:     "img tag in content",
			entry:    &gofeed.Item{Content: `<p>text</p><img src="https://img.test/inline.jpg">`},
			expected: "https://img.test/inline.jpg",
		},
		{
			name:     "description fallback when content empty",
			entry:    &gofeed.Item{Description: `<img src="https://img.test/desc.png">`},
			expected: "https://img.test/desc.png",
		},
		{
			name:     "no image anywhere",
			entry:    &gofeed.Item{Description: "plain text only"},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := entryImage(tt.entry); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFirstImageURL(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "first usable image",
			html:     `<img src="https://img.test/a.jpg"><img src="https://img.test/b.jpg">`,
			expected: "https://img.test/a.jpg",
		},
		{
			name:     "tracking pixel skipped",
			html:     `<img src="https://ads.test/tracking.png"><img src="https://img.test/real.jpg">`,
			expected: "https://img.test/real.jpg",
		},
		{
			name:     "spacer skipped",
			html:     `<img src="https://img.test/spacer.png"><img src="https://img.test/real.jpg">`,
			expected: "https://img.test/real.jpg",
		},
		{
			name:     "gif skipped",
			html:     `<img src="https://img.test/anim.gif">`,
			expected: "",
		},
		{
			name:     "relative src skipped",
			html:     `<img src="/images/local.jpg">`,
			expected: "",
		},
		{
			name:     "empty html",
			html:     "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstImageURL(tt.html); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
