package cache

import "time"

// Cache keys used by the API layer. Feed keys share the "feed:" prefix
// so one ingestion run can invalidate all of them at once.
const (
	KeyFeedAll    = "feed:all"
	KeyFeedSocial = "feed:social"
	KeyFeedNews   = "feed:news"
	KeyTrending   = "trending"
	KeyTopItem    = "top:item"
	KeyKeywords   = "keywords"
	KeyAdminStats = "admin:stats"

	FeedKeyPrefix = "feed:"
)

const (
	FeedTTL     = 30 * time.Minute
	TrendingTTL = 15 * time.Minute
	TopItemTTL  = 20 * time.Minute
	KeywordsTTL = 20 * time.Minute
	StatsTTL    = 5 * time.Minute
)
