package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/rs1134/ai-disruption-tracker/app/classify"
)

const redditStagger = 250 * time.Millisecond

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Permalink   string  `json:"permalink"`
	Author      string  `json:"author"`
	Subreddit   string  `json:"subreddit"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	UpvoteRatio float64 `json:"upvote_ratio"`
	CreatedUTC  float64 `json:"created_utc"`
	Thumbnail   string  `json:"thumbnail"`
	Stickied    bool    `json:"stickied"`
}

// RedditAdapter pulls hot posts from a fixed set of subreddits via the
// public JSON listing, no API key required.
type RedditAdapter struct {
	httpClient *http.Client
	classifier *classify.Classifier
	subreddits []string
	userAgent  string
}

func NewRedditAdapter(httpClient *http.Client, classifier *classify.Classifier, subreddits []string, userAgent string) *RedditAdapter {
	return &RedditAdapter{
		httpClient: httpClient,
		classifier: classifier,
		subreddits: subreddits,
		userAgent:  userAgent,
	}
}

// Fetch walks the subreddits sequentially with a small pause between
// requests. A failing subreddit is logged and skipped, the rest of the
// run continues.
func (a *RedditAdapter) Fetch(ctx context.Context) []Item {
	var items []Item

	for i, sub := range a.subreddits {
		if i > 0 {
			if err := sleepCtx(ctx, redditStagger); err != nil {
				return items
			}
		}

		posts, err := a.fetchSubreddit(ctx, sub)
		if err != nil {
			slog.Error("Subreddit fetch failed", "subreddit", sub, "error", err)
			continue
		}

		slog.Debug("Subreddit fetched", "subreddit", sub, "relevant", len(posts))
		items = append(items, posts...)
	}

	return items
}

func (a *RedditAdapter) fetchSubreddit(ctx context.Context, sub string) ([]Item, error) {
	url := fmt.Sprintf("https://www.reddit.com/r/%s/hot.json?limit=100", sub)

	var listing redditListing
	if err := fetchJSON(ctx, a.httpClient, url, a.userAgent, &listing); err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-24 * time.Hour)
	var items []Item

	for _, child := range listing.Data.Children {
		p := child.Data
		publishedAt := time.Unix(int64(p.CreatedUTC), 0)

		if p.Stickied || publishedAt.Before(cutoff) {
			continue
		}

		text := p.Title + " " + p.Selftext
		if !a.classifier.IsRelevant(text) {
			continue
		}

		engScore := float64(p.Score)*1 + float64(p.NumComments)*1.5

		content := truncate(p.Selftext, 500)
		if content == "" {
			content = p.Title
		}

		imageURL := ""
		if strings.HasPrefix(p.Thumbnail, "http") {
			imageURL = p.Thumbnail
		}

		items = append(items, Item{
			ID:              "rd_" + p.ID,
			Type:            TypeSocial,
			Title:           truncate(p.Title, 160),
			Content:         content,
			Author:          "u/" + p.Author,
			Source:          "r/" + p.Subreddit,
			URL:             "https://reddit.com" + p.Permalink,
			ImageURL:        imageURL,
			EngagementScore: math.Round(engScore*10) / 10,
			Likes:           p.Score,
			Reposts:         0,
			Replies:         p.NumComments,
			Views:           estimateViews(p.Score, p.UpvoteRatio),
			Category:        a.classifier.DetectCategory(text),
			Sentiment:       a.classifier.AnalyzeSentiment(text),
			Tags:            a.classifier.ExtractTags(text),
			PublishedAt:     publishedAt,
		})
	}

	return items, nil
}

// estimateViews approximates reach from the vote count. The ratio floor
// keeps heavily downvoted posts from producing absurd numbers.
func estimateViews(score int, upvoteRatio float64) int {
	return int(math.Round(float64(score) / math.Max(upvoteRatio, 0.1)))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
