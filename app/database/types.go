package database

import (
	"time"
)

// FeedItem is the store-input shape for an upsert. Conflicting IDs update
// the engagement counters and refresh the TTL; content fields keep their
// first-ingested values.
type FeedItem struct {
	ID              string
	Type            string
	Title           string
	Content         string
	Author          string
	Source          string
	URL             string
	ImageURL        string
	EngagementScore float64
	Likes           int
	Reposts         int
	Replies         int
	Views           int
	Category        string
	Sentiment       string
	Tags            []string
	PublishedAt     time.Time
}

type SourceCount struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// FeedStats aggregates the non-expired feed for the admin dashboard.
type FeedStats struct {
	CountsByType      map[string]int `json:"countsByType"`
	CountsByCategory  map[string]int `json:"countsByCategory"`
	CountsBySentiment map[string]int `json:"countsBySentiment"`
	TopSources        []SourceCount  `json:"topSources"`
}

// FundingFilter narrows and orders funding round queries. Zero values
// mean "no constraint".
type FundingFilter struct {
	Search   string
	Industry string
	Stage    string
	Location string
	Year     string
	Sort     string // date, amount, company
	Order    string // asc, desc
	Limit    int
	Offset   int
}

type FundingIndustryStat struct {
	Industry string  `json:"industry"`
	TotalM   float64 `json:"totalM"`
	Count    int     `json:"count"`
}

type FundingStageStat struct {
	RoundType string  `json:"roundType"`
	Count     int     `json:"count"`
	TotalM    float64 `json:"totalM"`
}

type FundingMonthStat struct {
	Month  string  `json:"month"`
	TotalM float64 `json:"totalM"`
	Count  int     `json:"count"`
}

type FundingStats struct {
	TotalRounds    int                   `json:"totalRounds"`
	TotalCompanies int                   `json:"totalCompanies"`
	TotalAmountM   float64               `json:"totalAmountM"`
	AvgAmountM     float64               `json:"avgAmountM"`
	MaxAmountM     float64               `json:"maxAmountM"`
	LargestCompany string                `json:"largestCompany"`
	LargestDisplay string                `json:"largestDisplay"`
	LatestCompany  string                `json:"latestCompany"`
	LatestDisplay  string                `json:"latestDisplay"`
	LatestDate     *time.Time            `json:"latestDate"`
	ByIndustry     []FundingIndustryStat `json:"byIndustry"`
	ByStage        []FundingStageStat    `json:"byStage"`
	ByMonth        []FundingMonthStat    `json:"byMonth"`
}

type ItemRepository interface {
	UpsertItem(item FeedItem) error
	GetItems(itemType string, limit, offset int) ([]Item, error)
	GetTopItem() (*Item, error)
	GetItemCount() (int, error)
	GetStats() (*FeedStats, error)
	GetKeywordCounts(limit int) ([]KeywordCount, error)
	DeleteExpired() (int64, error)
}

type CompanyRepository interface {
	UpsertCompany(name, sentiment string) error
	GetTrendingCompanies(limit int) ([]TrendingCompany, error)
	DeleteExpired() (int64, error)
}

type FetchLogRepository interface {
	Append(family, status string, count int, errMsg string, durationMs int) error
	GetRecent(limit int) ([]FetchLog, error)
	GetLastSuccess() (*time.Time, error)
}

type FundingRepository interface {
	UpsertRound(round FundingRound) error
	GetRounds(filter FundingFilter) ([]FundingRound, error)
	CountRounds(filter FundingFilter) (int, error)
	GetStats() (*FundingStats, error)
	IsSeeded() (bool, error)
}
