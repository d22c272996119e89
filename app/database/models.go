package database

import (
	"time"
)

// Item represents a feed item row.
type Item struct {
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
	CreatedAt       time.Time
	ExpiresAt       time.Time
}

// TrendingCompany is the per-company mention counter. Count only ever
// grows until the row expires.
type TrendingCompany struct {
	Name      string
	Count     int
	Sentiment string
	LastSeen  time.Time
	ExpiresAt time.Time
}

// FetchLog is the append-only audit record of one ingestion run per
// source family.
type FetchLog struct {
	ID         int
	Type       string
	Status     string
	Count      int
	Error      string
	DurationMs int
	CreatedAt  time.Time
}

// FundingRound is a financing event. Unlike feed items, rounds never
// expire.
type FundingRound struct {
	ID               string
	CompanyName      string
	AmountM          *float64 // normalized to millions USD, nil when undisclosed
	Display          string
	RoundType        string
	Investors        []string
	Industry         string
	Location         string
	AnnouncedDate    time.Time
	SourceURL        string
	Description      string
	ValuationDisplay string
	IsSeedData       bool
	CreatedAt        time.Time
}
