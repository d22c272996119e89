package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/rs1134/ai-disruption-tracker/app/cache"
	"github.com/rs1134/ai-disruption-tracker/app/classify"
	"github.com/rs1134/ai-disruption-tracker/app/database"
)

// Results summarizes one full refresh run.
type Results struct {
	Social     int      `json:"social"`
	News       int      `json:"news"`
	Errors     []string `json:"errors"`
	DurationMs int64    `json:"durationMs"`
}

// Refresher runs the full ingestion pipeline: sweep expired rows, fetch
// both source families, classify, deduplicate, store, and invalidate
// the result cache.
type Refresher struct {
	reddit       *RedditAdapter
	hackerNews   *HackerNewsAdapter
	rss          *RSSAdapter
	classifier   *classify.Classifier
	itemRepo     database.ItemRepository
	companyRepo  database.CompanyRepository
	fetchLogRepo database.FetchLogRepository
	resultCache  *cache.Cache
	socialMax    int
	newsMax      int
}

func NewRefresher(reddit *RedditAdapter, hackerNews *HackerNewsAdapter, rss *RSSAdapter,
	classifier *classify.Classifier, itemRepo database.ItemRepository,
	companyRepo database.CompanyRepository, fetchLogRepo database.FetchLogRepository,
	resultCache *cache.Cache, socialMax, newsMax int) *Refresher {
	return &Refresher{
		reddit:       reddit,
		hackerNews:   hackerNews,
		rss:          rss,
		classifier:   classifier,
		itemRepo:     itemRepo,
		companyRepo:  companyRepo,
		fetchLogRepo: fetchLogRepo,
		resultCache:  resultCache,
		socialMax:    socialMax,
		newsMax:      newsMax,
	}
}

func (r *Refresher) Run(ctx context.Context) Results {
	startedAt := time.Now()
	results := Results{Errors: []string{}}

	r.sweepExpired()

	results.Social = r.runSocial(ctx, &results)
	results.News = r.runNews(ctx, &results)

	r.invalidateCaches()

	results.DurationMs = time.Since(startedAt).Milliseconds()
	slog.Info("Refresh completed",
		"social", results.Social,
		"news", results.News,
		"errors", len(results.Errors),
		"duration_ms", results.DurationMs)

	return results
}

func (r *Refresher) sweepExpired() {
	items, err := r.itemRepo.DeleteExpired()
	if err != nil {
		slog.Error("Expired item sweep failed", "error", err)
	}

	companies, err := r.companyRepo.DeleteExpired()
	if err != nil {
		slog.Error("Expired company sweep failed", "error", err)
	}

	if items > 0 || companies > 0 {
		slog.Debug("Expired rows swept", "items", items, "companies", companies)
	}
}

// runSocial ingests the Reddit and Hacker News family. Both sources are
// merged before deduplication so a story trending on both surfaces once.
func (r *Refresher) runSocial(ctx context.Context, results *Results) int {
	startedAt := time.Now()

	items := r.reddit.Fetch(ctx)

	status, errMsg := "success", ""
	hnItems, err := r.hackerNews.Fetch(ctx)
	if err != nil {
		slog.Error("Hacker News fetch failed", "error", err)
		results.Errors = append(results.Errors, "Social: "+err.Error())
		status, errMsg = "partial", err.Error()
	}
	items = append(items, hnItems...)

	stored := r.storeItems(capItems(items, r.socialMax))
	if stored == 0 && status == "partial" {
		status = "error"
	}

	duration := time.Since(startedAt)
	if err := r.fetchLogRepo.Append("social", status, stored, errMsg, int(duration.Milliseconds())); err != nil {
		slog.Error("Fetch log append failed", "family", "social", "error", err)
	}

	return stored
}

func (r *Refresher) runNews(ctx context.Context, results *Results) int {
	startedAt := time.Now()

	items := r.rss.Fetch(ctx)
	stored := r.storeItems(capItems(items, r.newsMax))

	duration := time.Since(startedAt)
	if err := r.fetchLogRepo.Append("news", "success", stored, "", int(duration.Milliseconds())); err != nil {
		slog.Error("Fetch log append failed", "family", "news", "error", err)
	}

	return stored
}

// capItems deduplicates, ranks by engagement, and keeps the top n.
func capItems(items []Item, n int) []Item {
	unique := Deduplicate(items)
	SortByEngagement(unique)
	if len(unique) > n {
		unique = unique[:n]
	}
	return unique
}

// storeItems upserts items and bumps the mention counter for every
// company named in them. A failing item is logged and skipped so one bad
// row never aborts the batch.
func (r *Refresher) storeItems(items []Item) int {
	stored := 0

	for _, item := range items {
		if err := r.itemRepo.UpsertItem(toFeedItem(item)); err != nil {
			slog.Error("Item upsert failed", "id", item.ID, "error", err)
			continue
		}

		for _, company := range r.classifier.ExtractMentionedCompanies(item.Title + " " + item.Content) {
			if err := r.companyRepo.UpsertCompany(company, string(item.Sentiment)); err != nil {
				slog.Error("Company upsert failed", "company", company, "error", err)
			}
		}

		stored++
	}

	return stored
}

func (r *Refresher) invalidateCaches() {
	r.resultCache.InvalidatePrefix(cache.FeedKeyPrefix)
	r.resultCache.Invalidate(cache.KeyTrending)
	r.resultCache.Invalidate(cache.KeyTopItem)
	r.resultCache.Invalidate(cache.KeyKeywords)
	r.resultCache.Invalidate(cache.KeyAdminStats)
}

func toFeedItem(item Item) database.FeedItem {
	return database.FeedItem{
		ID:              item.ID,
		Type:            string(item.Type),
		Title:           item.Title,
		Content:         item.Content,
		Author:          item.Author,
		Source:          item.Source,
		URL:             item.URL,
		ImageURL:        item.ImageURL,
		EngagementScore: item.EngagementScore,
		Likes:           item.Likes,
		Reposts:         item.Reposts,
		Replies:         item.Replies,
		Views:           item.Views,
		Category:        string(item.Category),
		Sentiment:       string(item.Sentiment),
		Tags:            item.Tags,
		PublishedAt:     item.PublishedAt,
	}
}
