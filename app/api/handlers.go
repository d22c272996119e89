package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rs1134/ai-disruption-tracker/app/cache"
	"github.com/rs1134/ai-disruption-tracker/app/classify"
	"github.com/rs1134/ai-disruption-tracker/app/database"
	"github.com/rs1134/ai-disruption-tracker/app/ingest"
)

const (
	defaultPostsLimit = 50
	maxPostsLimit     = 100
	maxFundingLimit   = 500
	keywordLimit      = 30
)

type Handler struct {
	itemRepo       database.ItemRepository
	companyRepo    database.CompanyRepository
	fetchLogRepo   database.FetchLogRepository
	fundingRepo    database.FundingRepository
	resultCache    *cache.Cache
	refresher      *ingest.Refresher
	fundingAdapter *ingest.FundingAdapter
	version        string
}

func NewHandler(itemRepo database.ItemRepository, companyRepo database.CompanyRepository,
	fetchLogRepo database.FetchLogRepository, fundingRepo database.FundingRepository,
	resultCache *cache.Cache, refresher *ingest.Refresher,
	fundingAdapter *ingest.FundingAdapter, version string) *Handler {
	return &Handler{
		itemRepo:       itemRepo,
		companyRepo:    companyRepo,
		fetchLogRepo:   fetchLogRepo,
		fundingRepo:    fundingRepo,
		resultCache:    resultCache,
		refresher:      refresher,
		fundingAdapter: fundingAdapter,
		version:        version,
	}
}

func dataResponse(data any, cached bool) gin.H {
	return gin.H{
		"data":      data,
		"cached":    cached,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
}

func errorResponse(c *gin.Context, message string, data any) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":     message,
		"data":      data,
		"cached":    false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// GetPosts serves the main feed. First pages are memoized; an empty
// store triggers one synchronous refresh so a cold start still serves
// content.
func (h *Handler) GetPosts(c *gin.Context) {
	itemType := c.Query("type")
	if itemType != "" && itemType != "social" && itemType != "news" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be 'social' or 'news'"})
		return
	}

	limit := parseIntParam(c.Query("limit"), defaultPostsLimit)
	if limit > maxPostsLimit {
		limit = maxPostsLimit
	}
	offset := parseIntParam(c.Query("offset"), 0)

	cacheKey := cache.KeyFeedAll
	switch itemType {
	case "social":
		cacheKey = cache.KeyFeedSocial
	case "news":
		cacheKey = cache.KeyFeedNews
	}

	if offset == 0 {
		if cached, ok := h.resultCache.Get(cacheKey); ok {
			items := cached.([]FeedItem)
			if len(items) > limit {
				items = items[:limit]
			}
			c.JSON(http.StatusOK, dataResponse(items, true))
			return
		}
	}

	if offset == 0 {
		if err := h.refreshIfEmpty(c); err != nil {
			errorResponse(c, "Failed to fetch posts", []FeedItem{})
			return
		}
	}

	rows, err := h.itemRepo.GetItems(itemType, limit, offset)
	if err != nil {
		slog.Error("Database error", "operation", "get_items", "error", err)
		errorResponse(c, "Failed to fetch posts", []FeedItem{})
		return
	}

	items := make([]FeedItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, toFeedItem(row))
	}

	if offset == 0 {
		h.resultCache.Set(cacheKey, items, cache.FeedTTL)
	}

	c.JSON(http.StatusOK, dataResponse(items, false))
}

// refreshIfEmpty runs one synchronous ingestion pass when the store has
// no live items, so the very first request after deploy or TTL expiry
// still returns data.
func (h *Handler) refreshIfEmpty(c *gin.Context) error {
	count, err := h.itemRepo.GetItemCount()
	if err != nil {
		slog.Error("Database error", "operation", "get_item_count", "error", err)
		return err
	}

	if count == 0 {
		slog.Info("No live items, running on-demand refresh")
		h.refresher.Run(c.Request.Context())
	}

	return nil
}

func (h *Handler) GetTrending(c *gin.Context) {
	if cached, ok := h.resultCache.Get(cache.KeyTrending); ok {
		c.JSON(http.StatusOK, dataResponse(cached, true))
		return
	}

	limit := parseIntParam(c.Query("limit"), 10)

	companies, err := h.companyRepo.GetTrendingCompanies(limit)
	if err != nil {
		slog.Error("Database error", "operation", "get_trending", "error", err)
		errorResponse(c, "Failed to fetch trending data", nil)
		return
	}

	items, err := h.itemRepo.GetItems("", 200, 0)
	if err != nil {
		slog.Error("Database error", "operation", "get_items", "error", err)
		errorResponse(c, "Failed to fetch trending data", nil)
		return
	}

	lastFetch, err := h.fetchLogRepo.GetLastSuccess()
	if err != nil {
		slog.Error("Database error", "operation", "get_last_success", "error", err)
		errorResponse(c, "Failed to fetch trending data", nil)
		return
	}

	stats := buildSidebarStats(companies, items, lastFetch)

	h.resultCache.Set(cache.KeyTrending, stats, cache.TrendingTTL)
	c.JSON(http.StatusOK, dataResponse(stats, false))
}

// buildSidebarStats aggregates layoff headcounts and funding amounts
// across the live feed.
func buildSidebarStats(companies []database.TrendingCompany, items []database.Item, lastFetch *time.Time) SidebarStats {
	trending := make([]TrendingCompany, 0, len(companies))
	for _, company := range companies {
		trending = append(trending, TrendingCompany{
			Name:      company.Name,
			Count:     company.Count,
			Sentiment: company.Sentiment,
		})
	}

	var totalLayoffs *int
	totalFundingM := 0.0

	for _, item := range items {
		text := item.Title + " " + item.Content

		if item.Category == string(classify.CategoryLayoffs) {
			if n := classify.ExtractLayoffCount(text); n > 0 {
				sum := n
				if totalLayoffs != nil {
					sum += *totalLayoffs
				}
				totalLayoffs = &sum
			}
		}

		if item.Category == string(classify.CategoryFunding) {
			totalFundingM += fundingAmountM(classify.ExtractFundingAmount(text))
		}
	}

	var totalFunding *string
	if totalFundingM > 0 {
		display := formatFundingTotal(totalFundingM)
		totalFunding = &display
	}

	lastRefreshed := time.Now().UTC()
	if lastFetch != nil {
		lastRefreshed = *lastFetch
	}

	return SidebarStats{
		TrendingCompanies: trending,
		TotalLayoffs:      totalLayoffs,
		TotalFunding:      totalFunding,
		LastRefreshed:     lastRefreshed,
		TotalItems:        len(items),
	}
}

// fundingAmountM converts a "$1.5B" / "$40M" display back to millions.
func fundingAmountM(display string) float64 {
	if display == "" {
		return 0
	}

	mult := 1.0
	if strings.Contains(display, "B") {
		mult = 1000
	}

	numeric := strings.NewReplacer("$", "", "B", "", "M", "").Replace(display)
	value, err := strconv.ParseFloat(numeric, 64)
	if err != nil {
		return 0
	}

	return value * mult
}

func formatFundingTotal(totalM float64) string {
	if totalM >= 1000 {
		return "$" + strconv.FormatFloat(totalM/1000, 'f', 1, 64) + "B"
	}
	return "$" + strconv.FormatFloat(totalM, 'f', 0, 64) + "M"
}

func (h *Handler) GetTopDisruption(c *gin.Context) {
	if cached, ok := h.resultCache.Get(cache.KeyTopItem); ok {
		c.JSON(http.StatusOK, dataResponse(cached, true))
		return
	}

	row, err := h.itemRepo.GetTopItem()
	if err != nil {
		slog.Error("Database error", "operation", "get_top_item", "error", err)
		errorResponse(c, "Failed to fetch top disruption", nil)
		return
	}

	var item *FeedItem
	if row != nil {
		converted := toFeedItem(*row)
		item = &converted
	}

	h.resultCache.Set(cache.KeyTopItem, item, cache.TopItemTTL)
	c.JSON(http.StatusOK, dataResponse(item, false))
}

func (h *Handler) GetKeywords(c *gin.Context) {
	if cached, ok := h.resultCache.Get(cache.KeyKeywords); ok {
		c.JSON(http.StatusOK, dataResponse(cached, true))
		return
	}

	keywords, err := h.itemRepo.GetKeywordCounts(keywordLimit)
	if err != nil {
		slog.Error("Database error", "operation", "get_keywords", "error", err)
		errorResponse(c, "Failed to fetch keywords", []database.KeywordCount{})
		return
	}

	h.resultCache.Set(cache.KeyKeywords, keywords, cache.KeywordsTTL)
	c.JSON(http.StatusOK, dataResponse(keywords, false))
}

func (h *Handler) GetAdminStats(c *gin.Context) {
	if cached, ok := h.resultCache.Get(cache.KeyAdminStats); ok {
		c.JSON(http.StatusOK, dataResponse(cached, true))
		return
	}

	feedStats, err := h.itemRepo.GetStats()
	if err != nil {
		slog.Error("Database error", "operation", "get_stats", "error", err)
		errorResponse(c, "Failed to fetch admin stats", nil)
		return
	}

	logs, err := h.fetchLogRepo.GetRecent(30)
	if err != nil {
		slog.Error("Database error", "operation", "get_fetch_logs", "error", err)
		errorResponse(c, "Failed to fetch admin stats", nil)
		return
	}

	lastFetch, err := h.fetchLogRepo.GetLastSuccess()
	if err != nil {
		slog.Error("Database error", "operation", "get_last_success", "error", err)
		errorResponse(c, "Failed to fetch admin stats", nil)
		return
	}

	logEntries := make([]FetchLogEntry, 0, len(logs))
	for _, log := range logs {
		logEntries = append(logEntries, FetchLogEntry{
			ID:         log.ID,
			Type:       log.Type,
			Status:     log.Status,
			Count:      log.Count,
			Error:      log.Error,
			DurationMs: log.DurationMs,
			CreatedAt:  log.CreatedAt,
		})
	}

	stats := AdminStats{
		TotalSocial:        feedStats.CountsByType["social"],
		TotalNews:          feedStats.CountsByType["news"],
		LastFetch:          lastFetch,
		FetchLogs:          logEntries,
		CategoryBreakdown:  feedStats.CountsByCategory,
		SentimentBreakdown: feedStats.CountsBySentiment,
		TopSources:         feedStats.TopSources,
	}

	h.resultCache.Set(cache.KeyAdminStats, stats, cache.StatsTTL)
	c.JSON(http.StatusOK, dataResponse(stats, false))
}

// Refresh runs the full ingestion pipeline synchronously. Serves both
// the scheduler-independent cron hook and the manual admin trigger.
func (h *Handler) Refresh(c *gin.Context) {
	results := h.refresher.Run(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"duration":  results.DurationMs,
		"results":   results,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) GetFundingRounds(c *gin.Context) {
	limit := parseIntParam(c.Query("limit"), 200)
	if limit > maxFundingLimit {
		limit = maxFundingLimit
	}

	filter := database.FundingFilter{
		Search:   c.Query("search"),
		Industry: c.Query("industry"),
		Stage:    c.Query("stage"),
		Location: c.Query("location"),
		Year:     c.Query("year"),
		Sort:     c.DefaultQuery("sort", "date"),
		Order:    c.DefaultQuery("order", "desc"),
		Limit:    limit,
		Offset:   parseIntParam(c.Query("offset"), 0),
	}

	rows, err := h.fundingRepo.GetRounds(filter)
	if err != nil {
		slog.Error("Database error", "operation", "get_funding_rounds", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch funding rounds"})
		return
	}

	total, err := h.fundingRepo.CountRounds(filter)
	if err != nil {
		slog.Error("Database error", "operation", "count_funding_rounds", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch funding rounds"})
		return
	}

	rounds := make([]FundingRound, 0, len(rows))
	for _, row := range rows {
		rounds = append(rounds, toFundingRound(row))
	}

	c.JSON(http.StatusOK, gin.H{
		"rounds": rounds,
		"total":  total,
	})
}

func (h *Handler) GetFundingStats(c *gin.Context) {
	stats, err := h.fundingRepo.GetStats()
	if err != nil {
		slog.Error("Database error", "operation", "get_funding_stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) RefreshFunding(c *gin.Context) {
	seeded, err := database.SeedFundingRounds(h.fundingRepo)
	if err != nil {
		slog.Error("Funding seed failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Refresh failed"})
		return
	}

	result := h.fundingAdapter.Run(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"seeded":   seeded,
		"fetched":  result.Fetched,
		"inserted": result.Inserted,
		"skipped":  result.Skipped,
		"errors":   result.Errors,
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := gin.H{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if count, err := h.itemRepo.GetItemCount(); err == nil {
		health["live_items"] = count
	}
	health["cache_entries"] = h.resultCache.Size()

	c.JSON(http.StatusOK, health)
}

func parseIntParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
