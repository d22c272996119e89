package api

import (
	"time"

	"github.com/rs1134/ai-disruption-tracker/app/database"
)

// FeedItem is the JSON shape served to clients.
type FeedItem struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Author          string    `json:"author"`
	Source          string    `json:"source"`
	URL             string    `json:"url"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	EngagementScore float64   `json:"engagementScore"`
	Likes           int       `json:"likes"`
	Reposts         int       `json:"reposts"`
	Replies         int       `json:"replies"`
	Views           int       `json:"views"`
	Category        string    `json:"category"`
	Sentiment       string    `json:"sentiment"`
	Tags            []string  `json:"tags"`
	PublishedAt     time.Time `json:"publishedAt"`
	CreatedAt       time.Time `json:"createdAt"`
}

type TrendingCompany struct {
	Name      string `json:"name"`
	Count     int    `json:"count"`
	Sentiment string `json:"sentiment"`
}

// SidebarStats aggregates the trending sidebar: hot companies plus
// rough layoff and funding totals mined from the live feed.
type SidebarStats struct {
	TrendingCompanies []TrendingCompany `json:"trendingCompanies"`
	TotalLayoffs      *int              `json:"totalLayoffs"`
	TotalFunding      *string           `json:"totalFunding"`
	LastRefreshed     time.Time         `json:"lastRefreshed"`
	TotalItems        int               `json:"totalItems"`
}

type FetchLogEntry struct {
	ID         int       `json:"id"`
	Type       string    `json:"type"`
	Status     string    `json:"status"`
	Count      int       `json:"count"`
	Error      string    `json:"error,omitempty"`
	DurationMs int       `json:"durationMs"`
	CreatedAt  time.Time `json:"createdAt"`
}

type AdminStats struct {
	TotalSocial        int                    `json:"totalSocial"`
	TotalNews          int                    `json:"totalNews"`
	LastFetch          *time.Time             `json:"lastFetch"`
	FetchLogs          []FetchLogEntry        `json:"fetchLogs"`
	CategoryBreakdown  map[string]int         `json:"categoryBreakdown"`
	SentimentBreakdown map[string]int         `json:"sentimentBreakdown"`
	TopSources         []database.SourceCount `json:"topSources"`
}

type FundingRound struct {
	ID               string   `json:"id"`
	CompanyName      string   `json:"companyName"`
	FundingAmountM   *float64 `json:"fundingAmountM"`
	FundingDisplay   string   `json:"fundingDisplay"`
	RoundType        string   `json:"roundType"`
	Investors        []string `json:"investors"`
	Industry         string   `json:"industry"`
	Location         string   `json:"location"`
	AnnouncedDate    string   `json:"announcedDate"`
	SourceURL        string   `json:"sourceUrl,omitempty"`
	Description      string   `json:"description"`
	ValuationDisplay string   `json:"valuationDisplay,omitempty"`
	IsSeedData       bool     `json:"isSeedData"`
}

func toFeedItem(item database.Item) FeedItem {
	return FeedItem{
		ID:              item.ID,
		Type:            item.Type,
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
		Category:        item.Category,
		Sentiment:       item.Sentiment,
		Tags:            item.Tags,
		PublishedAt:     item.PublishedAt,
		CreatedAt:       item.CreatedAt,
	}
}

func toFundingRound(round database.FundingRound) FundingRound {
	return FundingRound{
		ID:               round.ID,
		CompanyName:      round.CompanyName,
		FundingAmountM:   round.AmountM,
		FundingDisplay:   round.Display,
		RoundType:        round.RoundType,
		Investors:        round.Investors,
		Industry:         round.Industry,
		Location:         round.Location,
		AnnouncedDate:    round.AnnouncedDate.Format("2006-01-02"),
		SourceURL:        round.SourceURL,
		Description:      round.Description,
		ValuationDisplay: round.ValuationDisplay,
		IsSeedData:       round.IsSeedData,
	}
}
