package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/rs1134/ai-disruption-tracker/app/classify"
)

const (
	hackerNewsBatchSize = 20
	hackerNewsStagger   = 100 * time.Millisecond
)

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

type hackerNewsStory struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Text        string `json:"text"`
	By          string `json:"by"`
	Time        int64  `json:"time"`
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"`
	Deleted     bool   `json:"deleted"`
}

// HackerNewsAdapter pulls top stories from the Firebase API. Story
// details are fetched in concurrent batches since the API serves one
// item per request.
type HackerNewsAdapter struct {
	httpClient *http.Client
	classifier *classify.Classifier
	userAgent  string
	storyCap   int
}

func NewHackerNewsAdapter(httpClient *http.Client, classifier *classify.Classifier, userAgent string, storyCap int) *HackerNewsAdapter {
	return &HackerNewsAdapter{
		httpClient: httpClient,
		classifier: classifier,
		userAgent:  userAgent,
		storyCap:   storyCap,
	}
}

func (a *HackerNewsAdapter) Fetch(ctx context.Context) ([]Item, error) {
	var ids []int
	err := fetchJSON(ctx, a.httpClient, "https://hacker-news.firebaseio.com/v0/topstories.json", a.userAgent, &ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top stories: %w", err)
	}

	if len(ids) > a.storyCap {
		ids = ids[:a.storyCap]
	}

	cutoff := time.Now().Add(-24 * time.Hour)
	var items []Item

	for start := 0; start < len(ids); start += hackerNewsBatchSize {
		if start > 0 {
			if err := sleepCtx(ctx, hackerNewsStagger); err != nil {
				return items, err
			}
		}

		end := min(start+hackerNewsBatchSize, len(ids))
		stories := a.fetchBatch(ctx, ids[start:end])

		for _, story := range stories {
			item, ok := a.toItem(story, cutoff)
			if ok {
				items = append(items, item)
			}
		}
	}

	return items, nil
}

// fetchBatch loads one batch of stories concurrently. Individual
// failures are logged and dropped so a dead story never sinks the run.
func (a *HackerNewsAdapter) fetchBatch(ctx context.Context, ids []int) []hackerNewsStory {
	stories := make([]*hackerNewsStory, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i, id int) {
			defer wg.Done()

			url := fmt.Sprintf("https://hacker-news.firebaseio.com/v0/item/%d.json", id)
			var story hackerNewsStory
			if err := fetchJSON(ctx, a.httpClient, url, a.userAgent, &story); err != nil {
				slog.Debug("Story fetch failed", "id", id, "error", err)
				return
			}
			stories[i] = &story
		}(i, id)
	}
	wg.Wait()

	result := make([]hackerNewsStory, 0, len(ids))
	for _, story := range stories {
		if story != nil {
			result = append(result, *story)
		}
	}
	return result
}

func (a *HackerNewsAdapter) toItem(s hackerNewsStory, cutoff time.Time) (Item, bool) {
	if s.Type != "story" || s.Deleted || s.Title == "" {
		return Item{}, false
	}

	publishedAt := time.Unix(s.Time, 0)
	if publishedAt.Before(cutoff) {
		return Item{}, false
	}

	text := s.Title + " " + s.Text
	if !a.classifier.IsRelevant(text) {
		return Item{}, false
	}

	content := s.Title
	if s.Text != "" {
		content = truncate(strings.TrimSpace(htmlTagRe.ReplaceAllString(s.Text, "")), 400)
	}

	author := s.By
	if author == "" {
		author = "Anonymous"
	}

	url := s.URL
	if url == "" {
		url = fmt.Sprintf("https://news.ycombinator.com/item?id=%d", s.ID)
	}

	engScore := float64(s.Score)*1 + float64(s.Descendants)*1.5

	return Item{
		ID:              fmt.Sprintf("hn_%d", s.ID),
		Type:            TypeSocial,
		Title:           s.Title,
		Content:         content,
		Author:          author,
		Source:          "Hacker News",
		URL:             url,
		EngagementScore: math.Round(engScore*10) / 10,
		Likes:           s.Score,
		Reposts:         0,
		Replies:         s.Descendants,
		Views:           0,
		Category:        a.classifier.DetectCategory(text),
		Sentiment:       a.classifier.AnalyzeSentiment(text),
		Tags:            a.classifier.ExtractTags(text),
		PublishedAt:     publishedAt,
	}, true
}
